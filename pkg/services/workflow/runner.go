package workflow

import (
	"context"
	"fmt"

	"github.com/de-tools/posture-report/pkg/models/domain"
	"github.com/de-tools/posture-report/pkg/services/account"
	"github.com/de-tools/posture-report/pkg/services/assessment"
	"github.com/de-tools/posture-report/pkg/services/assets"
	"github.com/de-tools/posture-report/pkg/services/report"
	"github.com/de-tools/posture-report/pkg/store/xlsx"
	"github.com/rs/zerolog"
)

type Request struct {
	Platform    domain.Platform
	AccountName string
	Entities    []string
	ReportPath  string
}

// Hooks are optional callbacks used to surface progress to the user.
type Hooks struct {
	AccountResolved  func(account domain.CloudAccountRef)
	EntityChecked    func(name string, exists bool)
	EntitiesChecked  func(result domain.EntityClassification)
	AssessmentFetch  func(entities []string)
	AssessmentLoaded func(findings []domain.AssessmentFinding)
}

type Runner struct {
	resolver account.Resolver
	checker  assets.Checker
	fetcher  assessment.Fetcher
	store    xlsx.Store
	hooks    Hooks
}

func NewRunner(
	resolver account.Resolver,
	checker assets.Checker,
	fetcher assessment.Fetcher,
	store xlsx.Store,
	hooks Hooks,
) *Runner {
	return &Runner{
		resolver: resolver,
		checker:  checker,
		fetcher:  fetcher,
		store:    store,
		hooks:    hooks,
	}
}

// Run produces the report for one account. Every remote call happens
// before the report file is touched, so a failing run leaves the previous
// report in place.
func (r *Runner) Run(ctx context.Context, req Request) (*domain.RunSummary, error) {
	logger := zerolog.Ctx(ctx).With().
		Str("platform", req.Platform.String()).
		Str("account", req.AccountName).
		Logger()
	ctx = logger.WithContext(ctx)

	acc, err := r.resolver.Resolve(ctx, req.Platform, req.AccountName)
	if err != nil {
		return nil, err
	}
	if r.hooks.AccountResolved != nil {
		r.hooks.AccountResolved(acc)
	}

	entities := assets.Classify(ctx, r.checker, acc.ID, req.Entities, r.hooks.EntityChecked)
	// A cancelled context fails every search, which would misreport
	// existing entities as invalid.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("entity checks interrupted: %w", err)
	}
	if r.hooks.EntitiesChecked != nil {
		r.hooks.EntitiesChecked(entities)
	}
	logger.Info().
		Strs("valid", entities.Valid).
		Strs("invalid", entities.Invalid).
		Msg("entities classified")

	prior, err := r.store.Load(ctx, req.ReportPath, domain.SheetAssessmentResults, domain.SheetInvalidEntities)
	if err != nil {
		return nil, fmt.Errorf("failed to load previous report: %w", err)
	}

	var findings []domain.AssessmentFinding
	if len(entities.Valid) > 0 {
		if r.hooks.AssessmentFetch != nil {
			r.hooks.AssessmentFetch(entities.Valid)
		}
		findings, err = r.fetcher.Fetch(ctx, acc, entities.Valid)
		if err != nil {
			return nil, err
		}
		if r.hooks.AssessmentLoaded != nil {
			r.hooks.AssessmentLoaded(findings)
		}
	}

	invalid := domain.NewInvalidEntityRows(entities.Invalid)
	merged := report.Merge(prior, findings, invalid)

	size, err := r.store.Save(ctx, req.ReportPath, merged)
	if err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	logger.Info().Str("path", req.ReportPath).Int("findings", len(findings)).Msg("report written")

	return &domain.RunSummary{
		Account:            acc,
		Entities:           entities,
		Findings:           findings,
		ReportPath:         req.ReportPath,
		ReportSize:         size,
		AssessmentReplaced: len(findings) > 0,
		InvalidReplaced:    len(invalid) > 0,
	}, nil
}
