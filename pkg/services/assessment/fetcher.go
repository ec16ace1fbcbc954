package assessment

import (
	"context"
	"fmt"

	"github.com/de-tools/posture-report/pkg/models/api"
	"github.com/de-tools/posture-report/pkg/models/domain"
	"github.com/rs/zerolog"
)

type Source interface {
	LastAssessmentResults(ctx context.Context, req api.LastAssessmentResultsRequest) ([]api.AssessmentResult, error)
}

// Fetcher retrieves the latest assessment of the platform's rule bundle and
// reduces it to findings for the requested entities.
type Fetcher interface {
	Fetch(ctx context.Context, account domain.CloudAccountRef, entities []string) ([]domain.AssessmentFinding, error)
}

type assessmentFetcher struct {
	source Source
}

func NewFetcher(source Source) Fetcher {
	return &assessmentFetcher{source: source}
}

func (f *assessmentFetcher) Fetch(
	ctx context.Context,
	account domain.CloudAccountRef,
	entities []string,
) ([]domain.AssessmentFinding, error) {
	logger := zerolog.Ctx(ctx)

	bundleID, err := account.Platform.BundleID()
	if err != nil {
		return nil, err
	}

	req := api.NewLastAssessmentResultsRequest(bundleID, account.ID, account.Platform.String())
	results, err := f.source.LastAssessmentResults(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch last assessment results for %s: %w", account, err)
	}

	logger.Debug().
		Int64("bundle_id", bundleID).
		Int("runs", len(results)).
		Strs("entities", entities).
		Msg("flattening assessment results")

	return Flatten(account, results, entities), nil
}
