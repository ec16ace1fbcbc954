package domain

const (
	SheetAssessmentResults = "Assessment Results"
	SheetInvalidEntities   = "Invalid Entities"
)

var (
	AssessmentResultsHeader = []string{
		"Organization Unit Path",
		"Cloud Account",
		"Ruleset Name",
		"Category",
		"Severity",
		"Compliance Section",
		"Entity Type",
		"Entity Name",
		"Entity ID",
		"Rule Name",
		"Rule Description",
		"Remediation",
		"Test Result",
		"Exclude",
		"Create Time",
	}

	InvalidEntitiesHeader = []string{"Entity Name", "Description"}
)

// Sheet is a single worksheet: a header row followed by data rows. Cell
// values are string, bool, int64, float64 or nil.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

func (s Sheet) Empty() bool {
	return len(s.Header) == 0 && len(s.Rows) == 0
}

// Workbook is an ordered set of sheets keyed by name.
type Workbook struct {
	Sheets []Sheet
}

func (w Workbook) Sheet(name string) (Sheet, bool) {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return Sheet{Name: name}, false
}

// Put replaces the sheet with the same name or appends it.
func (w *Workbook) Put(sheet Sheet) {
	for i, s := range w.Sheets {
		if s.Name == sheet.Name {
			w.Sheets[i] = sheet
			return
		}
	}
	w.Sheets = append(w.Sheets, sheet)
}

func FindingsSheet(findings []AssessmentFinding) Sheet {
	rows := make([][]any, 0, len(findings))
	for _, f := range findings {
		var orgUnit any
		if f.OrgUnitPath != nil {
			orgUnit = *f.OrgUnitPath
		}
		rows = append(rows, []any{
			orgUnit,
			f.CloudAccount,
			f.RulesetName,
			f.Category,
			f.Severity,
			f.ComplianceSection,
			f.EntityType,
			f.EntityName,
			f.EntityID,
			f.RuleName,
			f.RuleDescription,
			f.Remediation,
			f.TestResult,
			f.Excluded,
			f.CreatedTime,
		})
	}
	return Sheet{Name: SheetAssessmentResults, Header: AssessmentResultsHeader, Rows: rows}
}

func InvalidEntitiesSheet(invalid []InvalidEntityRow) Sheet {
	rows := make([][]any, 0, len(invalid))
	for _, r := range invalid {
		rows = append(rows, []any{r.EntityName, r.Description})
	}
	return Sheet{Name: SheetInvalidEntities, Header: InvalidEntitiesHeader, Rows: rows}
}

// RunSummary describes the outcome of one report run for console output.
type RunSummary struct {
	Account            CloudAccountRef
	Entities           EntityClassification
	Findings           []AssessmentFinding
	ReportPath         string
	ReportSize         int64
	AssessmentReplaced bool
	InvalidReplaced    bool
}
