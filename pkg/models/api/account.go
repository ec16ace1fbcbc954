package api

// CloudAccount is the subset of a cloud account listing entry shared by the
// AWS, Azure, Google and Kubernetes listing endpoints.
type CloudAccount struct {
	ID                     string  `json:"id"`
	Name                   string  `json:"name"`
	OrganizationalUnitID   *string `json:"organizationalUnitId,omitempty"`
	OrganizationalUnitPath *string `json:"organizationalUnitPath,omitempty"`
	OrganizationalUnitName *string `json:"organizationalUnitName,omitempty"`
}
