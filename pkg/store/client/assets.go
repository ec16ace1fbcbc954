package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/de-tools/posture-report/pkg/models/api"
)

const assetSearchPath = "/protected-asset/search"

func (c *Client) SearchAssets(ctx context.Context, req api.AssetSearchRequest) (*api.AssetSearchResponse, error) {
	resp, err := c.send(ctx, http.MethodPost, assetSearchPath, req)
	if err != nil {
		return nil, err
	}
	if !isSuccess(resp.status) {
		return nil, c.httpError(http.MethodPost, assetSearchPath, resp)
	}

	var result api.AssetSearchResponse
	if err := json.Unmarshal(resp.body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal asset search response: %w", err)
	}
	return &result, nil
}
