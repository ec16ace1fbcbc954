package adapters

import (
	"github.com/de-tools/posture-report/pkg/models/api"
	"github.com/de-tools/posture-report/pkg/models/domain"
)

// MapApiCloudAccountToDomain keeps the account name as the caller spelled
// it, since that is the name printed in the report.
func MapApiCloudAccountToDomain(
	platform domain.Platform,
	requestedName string,
	a api.CloudAccount,
) domain.CloudAccountRef {
	return domain.CloudAccountRef{
		Platform:    platform,
		Name:        requestedName,
		ID:          a.ID,
		OrgUnitPath: a.OrganizationalUnitPath,
	}
}
