package api

type CloudAccountBundleFilter struct {
	BundleIDs        []int64  `json:"bundleIds"`
	CloudAccountIDs  []string `json:"cloudAccountIds"`
	CloudAccountType string   `json:"cloudAccountType"`
}

type LastAssessmentResultsRequest struct {
	CloudAccountBundleFilters []CloudAccountBundleFilter `json:"cloudAccountBundleFilters"`
}

func NewLastAssessmentResultsRequest(bundleID int64, cloudAccountID, platform string) LastAssessmentResultsRequest {
	return LastAssessmentResultsRequest{
		CloudAccountBundleFilters: []CloudAccountBundleFilter{
			{
				BundleIDs:        []int64{bundleID},
				CloudAccountIDs:  []string{cloudAccountID},
				CloudAccountType: platform,
			},
		},
	}
}

// AssessmentResult is one assessment run of a bundle against an account.
type AssessmentResult struct {
	ID          int64             `json:"id"`
	Request     AssessmentRequest `json:"request"`
	Tests       []RuleTest        `json:"tests"`
	CreatedTime string            `json:"createdTime"`
}

type AssessmentRequest struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	CloudAccountID string `json:"cloudAccountId"`
}

type RuleTest struct {
	Rule          Rule           `json:"rule"`
	TestPassed    bool           `json:"testPassed"`
	EntityResults []EntityResult `json:"entityResults"`
}

type Rule struct {
	Name          string `json:"name"`
	Severity      string `json:"severity"`
	Logic         string `json:"logic"`
	Description   string `json:"description"`
	Remediation   string `json:"remediation"`
	ComplianceTag string `json:"complianceTag"`
	Category      string `json:"category"`
	RuleID        string `json:"ruleId"`
}

type EntityResult struct {
	IsRelevant bool    `json:"isRelevant"`
	IsValid    bool    `json:"isValid"`
	IsExcluded bool    `json:"isExcluded"`
	TestObj    TestObj `json:"testObj"`
}

type TestObj struct {
	ID         string `json:"id"`
	Dome9ID    string `json:"dome9Id"`
	EntityType string `json:"entityType"`
	EntityName string `json:"entityName,omitempty"`
}
