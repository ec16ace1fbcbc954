package account

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

type mockLister struct {
	mock.Mock
}

func (m *mockLister) ListCloudAccounts(ctx context.Context, platform domain.Platform) ([]api.CloudAccount, error) {
	args := m.Called(ctx, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.CloudAccount), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestResolve_CaseInsensitive(t *testing.T) {
	accounts := []api.CloudAccount{
		{ID: "id-dev", Name: "Dev-Account"},
		{ID: "id-prod", Name: "Prod-Account", OrganizationalUnitPath: strPtr("Root/Prod")},
	}

	for _, name := range []string{"prod-account", "PROD-ACCOUNT", "Prod-Account"} {
		t.Run(name, func(t *testing.T) {
			lister := new(mockLister)
			lister.On("ListCloudAccounts", mock.Anything, domain.PlatformAWS).Return(accounts, nil)

			ref, err := NewResolver(lister).Resolve(context.Background(), domain.PlatformAWS, name)

			require.NoError(t, err)
			assert.Equal(t, "id-prod", ref.ID)
			assert.Equal(t, "Root/Prod", ref.OrgUnit())
			assert.Equal(t, name, ref.Name)
			assert.Equal(t, domain.PlatformAWS, ref.Platform)
			lister.AssertExpectations(t)
		})
	}
}

func TestResolve_FirstMatchWins(t *testing.T) {
	lister := new(mockLister)
	lister.On("ListCloudAccounts", mock.Anything, domain.PlatformGoogle).Return([]api.CloudAccount{
		{ID: "first", Name: "project-x"},
		{ID: "second", Name: "PROJECT-X", OrganizationalUnitPath: strPtr("Root")},
	}, nil)

	ref, err := NewResolver(lister).Resolve(context.Background(), domain.PlatformGoogle, "Project-X")

	require.NoError(t, err)
	assert.Equal(t, "first", ref.ID)
	assert.Nil(t, ref.OrgUnitPath)
}

func TestResolve_AccountNotFound(t *testing.T) {
	lister := new(mockLister)
	lister.On("ListCloudAccounts", mock.Anything, domain.PlatformAzure).Return([]api.CloudAccount{
		{ID: "1", Name: "Subscription A"},
	}, nil)

	_, err := NewResolver(lister).Resolve(context.Background(), domain.PlatformAzure, "Subscription")

	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.Contains(t, err.Error(), "Subscription")
}

func TestResolve_UnsupportedPlatformSkipsNetwork(t *testing.T) {
	lister := new(mockLister)

	_, err := NewResolver(lister).Resolve(context.Background(), domain.Platform("oracle"), "acc")

	assert.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
	lister.AssertNotCalled(t, "ListCloudAccounts", mock.Anything, mock.Anything)
}

func TestResolve_ListingFailurePropagates(t *testing.T) {
	boom := errors.New("503 service unavailable")
	lister := new(mockLister)
	lister.On("ListCloudAccounts", mock.Anything, domain.PlatformKubernetes).Return(nil, boom)

	_, err := NewResolver(lister).Resolve(context.Background(), domain.PlatformKubernetes, "cluster")

	assert.ErrorIs(t, err, boom)
}
