package assets

import (
	"context"

	"github.com/de-tools/posture-report/pkg/models/api"
	"github.com/de-tools/posture-report/pkg/models/domain"
	"github.com/rs/zerolog"
)

type Searcher interface {
	SearchAssets(ctx context.Context, req api.AssetSearchRequest) (*api.AssetSearchResponse, error)
}

// Checker tells whether an entity is a protected asset of an account.
type Checker interface {
	Exists(ctx context.Context, accountID, name string) bool
}

type assetChecker struct {
	searcher Searcher
}

func NewChecker(searcher Searcher) Checker {
	return &assetChecker{searcher: searcher}
}

// Exists reports true only for a successful search with at least one
// asset. Failures are indistinguishable from absence.
func (c *assetChecker) Exists(ctx context.Context, accountID, name string) bool {
	logger := zerolog.Ctx(ctx).With().Str("entity", name).Logger()

	resp, err := c.searcher.SearchAssets(ctx, api.NewAssetSearchRequest(accountID, name))
	if err != nil {
		logger.Debug().Err(err).Msg("asset search failed, treating entity as missing")
		return false
	}
	if resp == nil || len(resp.Assets) == 0 {
		logger.Debug().Msg("no asset found")
		return false
	}
	return true
}

// CheckedFunc is invoked after each entity has been checked.
type CheckedFunc func(name string, exists bool)

// Classify checks every name in order, one at a time, and splits them into
// valid and invalid entities.
func Classify(
	ctx context.Context,
	checker Checker,
	accountID string,
	names []string,
	onChecked CheckedFunc,
) domain.EntityClassification {
	var result domain.EntityClassification
	for _, name := range names {
		exists := checker.Exists(ctx, accountID, name)
		if exists {
			result.Valid = append(result.Valid, name)
		} else {
			result.Invalid = append(result.Invalid, name)
		}
		if onChecked != nil {
			onChecked(name, exists)
		}
	}
	return result
}
