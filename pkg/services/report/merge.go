package report

import "github.com/de-tools/posture-report/pkg/models/domain"

// Merge computes the workbook to write from the previously stored one and
// the rows of this run. A sheet is replaced wholesale when this run
// produced rows for it and kept as loaded otherwise. The result holds
// exactly the two report sheets; any other prior sheet is dropped.
func Merge(
	prior domain.Workbook,
	findings []domain.AssessmentFinding,
	invalid []domain.InvalidEntityRow,
) domain.Workbook {
	results, _ := prior.Sheet(domain.SheetAssessmentResults)
	if len(findings) > 0 {
		results = domain.FindingsSheet(findings)
	}

	invalidSheet, _ := prior.Sheet(domain.SheetInvalidEntities)
	if len(invalid) > 0 {
		invalidSheet = domain.InvalidEntitiesSheet(invalid)
	}

	return domain.Workbook{Sheets: []domain.Sheet{results, invalidSheet}}
}
