package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/de-tools/posture-report/pkg/models/api"
	"github.com/de-tools/posture-report/pkg/models/domain"
)

var accountListingPaths = map[domain.Platform]string{
	domain.PlatformAWS:        "/CloudAccounts",
	domain.PlatformAzure:      "/AzureCloudAccount",
	domain.PlatformGoogle:     "/GoogleCloudAccount",
	domain.PlatformKubernetes: "/kubernetes/account",
}

// AccountListingPath returns the listing endpoint of the platform.
func AccountListingPath(platform domain.Platform) (string, error) {
	path, ok := accountListingPaths[platform]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedPlatform, string(platform))
	}
	return path, nil
}

// ListCloudAccounts returns every account of the platform visible to the
// authenticated user.
func (c *Client) ListCloudAccounts(ctx context.Context, platform domain.Platform) ([]api.CloudAccount, error) {
	path, err := AccountListingPath(platform)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if !isSuccess(resp.status) {
		return nil, c.httpError(http.MethodGet, path, resp)
	}

	var accounts []api.CloudAccount
	if err := json.Unmarshal(resp.body, &accounts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s account listing: %w", platform, err)
	}
	return accounts, nil
}
