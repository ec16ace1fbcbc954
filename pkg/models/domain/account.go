package domain

import "fmt"

type Credentials struct {
	Username string
	Password string
}

// CloudAccountRef identifies a cloud account onboarded to the posture
// management service. OrgUnitPath is nil when the listing has none.
type CloudAccountRef struct {
	Platform    Platform
	Name        string
	ID          string
	OrgUnitPath *string
}

func (a CloudAccountRef) OrgUnit() string {
	if a.OrgUnitPath == nil {
		return ""
	}
	return *a.OrgUnitPath
}

func (a CloudAccountRef) String() string {
	return fmt.Sprintf("%s:%s", a.Platform, a.Name)
}
