package assessment

import (
	"context"
	"errors"
	"testing"

	"github.com/de-tools/posture-report/pkg/models/api"
	"github.com/de-tools/posture-report/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) LastAssessmentResults(
	ctx context.Context,
	req api.LastAssessmentResultsRequest,
) ([]api.AssessmentResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.AssessmentResult), args.Error(1)
}

func TestFetch_UsesPlatformBundle(t *testing.T) {
	tests := []struct {
		platform domain.Platform
		bundleID int64
	}{
		{domain.PlatformAWS, 902486},
		{domain.PlatformAzure, 902546},
		{domain.PlatformGoogle, -128},
		{domain.PlatformKubernetes, -72},
	}

	for _, tt := range tests {
		t.Run(tt.platform.String(), func(t *testing.T) {
			account := domain.CloudAccountRef{Platform: tt.platform, Name: "acc", ID: "id-1"}
			expected := api.LastAssessmentResultsRequest{
				CloudAccountBundleFilters: []api.CloudAccountBundleFilter{{
					BundleIDs:        []int64{tt.bundleID},
					CloudAccountIDs:  []string{"id-1"},
					CloudAccountType: tt.platform.String(),
				}},
			}

			source := new(mockSource)
			source.On("LastAssessmentResults", mock.Anything, expected).Return([]api.AssessmentResult{
				run("t1", ruleTest("r1", false, entityResult("prefix/vm-1", false))),
			}, nil)

			findings, err := NewFetcher(source).Fetch(context.Background(), account, []string{"vm-1"})

			require.NoError(t, err)
			require.Len(t, findings, 1)
			assert.Equal(t, "r1", findings[0].RuleName)
			source.AssertExpectations(t)
		})
	}
}

func TestFetch_SourceErrorIsReturned(t *testing.T) {
	boom := errors.New("500 internal server error")
	source := new(mockSource)
	source.On("LastAssessmentResults", mock.Anything, mock.Anything).Return(nil, boom)

	_, err := NewFetcher(source).Fetch(context.Background(), testAccount, []string{"vm-1"})

	assert.ErrorIs(t, err, boom)
}
