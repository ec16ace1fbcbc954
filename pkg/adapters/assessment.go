package adapters

import (
	"github.com/de-tools/posture-report/pkg/models/api"
	"github.com/de-tools/posture-report/pkg/models/domain"
)

// MapApiEntityResultToDomainFinding flattens one entity result of a rule
// test into a report row attributed to entityName.
func MapApiEntityResultToDomainFinding(
	account domain.CloudAccountRef,
	run api.AssessmentResult,
	test api.RuleTest,
	result api.EntityResult,
	entityName string,
) domain.AssessmentFinding {
	return domain.AssessmentFinding{
		OrgUnitPath:       account.OrgUnitPath,
		CloudAccount:      account.Name,
		RulesetName:       run.Request.Name,
		Category:          test.Rule.Category,
		Severity:          test.Rule.Severity,
		ComplianceSection: test.Rule.ComplianceTag,
		EntityType:        result.TestObj.EntityType,
		EntityName:        entityName,
		EntityID:          result.TestObj.ID,
		RuleName:          test.Rule.Name,
		RuleDescription:   test.Rule.Description,
		Remediation:       test.Rule.Remediation,
		TestResult:        test.TestPassed,
		Excluded:          result.IsExcluded,
		CreatedTime:       run.CreatedTime,
	}
}
