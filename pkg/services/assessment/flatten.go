package assessment

import (
	"slices"
	"strings"

	"github.com/de-tools/posture-report/pkg/adapters"
	"github.com/de-tools/posture-report/pkg/models/api"
	"github.com/de-tools/posture-report/pkg/models/domain"
)

// Flatten turns assessment runs into report rows for the given entities.
//
// Runs, tests and entity results are walked in document order. An entity
// result matches when a still unmatched entity name is a case-insensitive
// substring of its testObj id; when several names qualify the longest one
// wins, equal lengths resolve lexicographically. A matched name is not
// considered again, so every entity yields at most one finding. Names that
// never matched get a passed placeholder row stamped with the creation time
// of the last run.
func Flatten(
	account domain.CloudAccountRef,
	results []api.AssessmentResult,
	entities []string,
) []domain.AssessmentFinding {
	remaining := candidates(entities)
	findings := make([]domain.AssessmentFinding, 0, len(remaining))

	var lastCreated string
	for _, run := range results {
		lastCreated = run.CreatedTime
		for _, test := range run.Tests {
			for _, result := range test.EntityResults {
				if len(remaining) == 0 {
					break
				}
				idx := bestMatch(remaining, strings.ToLower(result.TestObj.ID))
				if idx < 0 {
					continue
				}
				findings = append(findings,
					adapters.MapApiEntityResultToDomainFinding(account, run, test, result, remaining[idx]))
				remaining = slices.Delete(remaining, idx, idx+1)
			}
		}
	}

	for _, name := range remaining {
		findings = append(findings, domain.NewUnmatchedFinding(account, name, lastCreated))
	}
	return findings
}

// candidates lower-cases, de-duplicates and sorts the entity names.
func candidates(entities []string) []string {
	names := make([]string, 0, len(entities))
	for _, e := range entities {
		name := strings.ToLower(strings.TrimSpace(e))
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// bestMatch returns the index of the longest candidate contained in id, or
// -1. candidates must be sorted so that ties keep the lexicographically
// smallest name.
func bestMatch(candidates []string, id string) int {
	if id == "" {
		return -1
	}
	best := -1
	for i, name := range candidates {
		if !strings.Contains(id, name) {
			continue
		}
		if best < 0 || len(name) > len(candidates[best]) {
			best = i
		}
	}
	return best
}
