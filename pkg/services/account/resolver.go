package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/posture-report/pkg/adapters"
	"github.com/de-tools/posture-report/pkg/models/api"
	"github.com/de-tools/posture-report/pkg/models/domain"
	"github.com/rs/zerolog"
)

type Lister interface {
	ListCloudAccounts(ctx context.Context, platform domain.Platform) ([]api.CloudAccount, error)
}

// Resolver maps a human readable account name onto its CloudGuard id and
// organizational unit path.
type Resolver interface {
	Resolve(ctx context.Context, platform domain.Platform, accountName string) (domain.CloudAccountRef, error)
}

type accountResolver struct {
	lister Lister
}

func NewResolver(lister Lister) Resolver {
	return &accountResolver{lister: lister}
}

func (r *accountResolver) Resolve(
	ctx context.Context,
	platform domain.Platform,
	accountName string,
) (domain.CloudAccountRef, error) {
	logger := zerolog.Ctx(ctx)

	if _, err := platform.BundleID(); err != nil {
		return domain.CloudAccountRef{}, err
	}

	accounts, err := r.lister.ListCloudAccounts(ctx, platform)
	if err != nil {
		return domain.CloudAccountRef{}, fmt.Errorf("failed to list %s accounts: %w", platform, err)
	}

	match, err := FindAccount(accounts, accountName)
	if err != nil {
		return domain.CloudAccountRef{}, err
	}

	ref := adapters.MapApiCloudAccountToDomain(platform, accountName, match)
	logger.Debug().
		Str("account", accountName).
		Str("id", ref.ID).
		Str("org_unit_path", ref.OrgUnit()).
		Msg("resolved cloud account")
	return ref, nil
}

// FindAccount returns the first account whose name equals name, ignoring
// case.
func FindAccount(accounts []api.CloudAccount, name string) (api.CloudAccount, error) {
	for _, a := range accounts {
		if strings.EqualFold(a.Name, name) {
			return a, nil
		}
	}
	return api.CloudAccount{}, fmt.Errorf("%w: %q", domain.ErrAccountNotFound, name)
}
