package domain

const (
	NotApplicable = "N/A"

	PassedDescription  = "This entity name already passed compliance"
	InvalidDescription = "This resource cannot be found in your cloud account or cluster. " +
		"Please check the name of the entity and verify if the asset is provisioned."
)

// AssessmentFinding is one row of the "Assessment Results" sheet: a single
// entity matched against a single rule test.
type AssessmentFinding struct {
	OrgUnitPath       *string
	CloudAccount      string
	RulesetName       string
	Category          string
	Severity          string
	ComplianceSection string
	EntityType        string
	EntityName        string
	EntityID          string
	RuleName          string
	RuleDescription   string
	Remediation       string
	TestResult        bool
	Excluded          bool
	CreatedTime       string
}

// NewUnmatchedFinding builds the placeholder row for an entity that no rule
// result referenced.
func NewUnmatchedFinding(account CloudAccountRef, entityName, createdTime string) AssessmentFinding {
	return AssessmentFinding{
		OrgUnitPath:       account.OrgUnitPath,
		CloudAccount:      account.Name,
		RulesetName:       NotApplicable,
		Category:          NotApplicable,
		Severity:          NotApplicable,
		ComplianceSection: NotApplicable,
		EntityType:        NotApplicable,
		EntityName:        entityName,
		EntityID:          NotApplicable,
		RuleName:          NotApplicable,
		RuleDescription:   PassedDescription,
		Remediation:       NotApplicable,
		TestResult:        true,
		Excluded:          false,
		CreatedTime:       createdTime,
	}
}

type InvalidEntityRow struct {
	EntityName  string
	Description string
}

func NewInvalidEntityRows(names []string) []InvalidEntityRow {
	rows := make([]InvalidEntityRow, 0, len(names))
	for _, name := range names {
		rows = append(rows, InvalidEntityRow{EntityName: name, Description: InvalidDescription})
	}
	return rows
}
