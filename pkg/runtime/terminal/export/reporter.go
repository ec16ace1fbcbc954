package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/de-tools/posture-report/pkg/models/domain"
	"github.com/dustin/go-humanize"
)

type TableConfig struct {
	EntityWidth   int
	RuleWidth     int
	SeverityWidth int
	ResultWidth   int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		EntityWidth:   30,
		RuleWidth:     60,
		SeverityWidth: 8,
		ResultWidth:   8,
	}
}

// Reporter prints the outcome of a report run as a console table.
type Reporter struct {
	writer io.Writer
	config TableConfig
	now    func() time.Time
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
		now:    time.Now,
	}
}

type summaryView struct {
	*domain.RunSummary
	Failed  int
	Passed  int
	Size    string
	Age     string
	Results string
	Invalid string
}

func (c *Reporter) Handle(summary *domain.RunSummary) error {
	funcMap := template.FuncMap{
		"formatRow": func(entity, rule, severity, result string) string {
			return fmt.Sprintf("| %-*s | %-*s | %-*s | %-*s |",
				c.config.EntityWidth, truncate(entity, c.config.EntityWidth),
				c.config.RuleWidth, truncate(rule, c.config.RuleWidth),
				c.config.SeverityWidth, truncate(severity, c.config.SeverityWidth),
				c.config.ResultWidth, result)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.EntityWidth+2),
				strings.Repeat("-", c.config.RuleWidth+2),
				strings.Repeat("-", c.config.SeverityWidth+2),
				strings.Repeat("-", c.config.ResultWidth+2))
		},
		"result": func(passed bool) string {
			if passed {
				return "PASSED"
			}
			return "FAILED"
		},
	}

	tmpl := `
Cloud Account: {{.Account.Name}} ({{.Account.ID}})
Organization Unit Path: {{if .Account.OrgUnitPath}}{{.Account.OrgUnit}}{{else}}-{{end}}
Valid Entities: {{len .Entities.Valid}}, Invalid Entities: {{len .Entities.Invalid}}
{{if .Findings}}
Findings: {{len .Findings}} ({{.Failed}} failed, {{.Passed}} passed), assessed {{.Age}}

{{separator}}
{{formatRow "Entity" "Rule" "Severity" "Result"}}
{{separator}}
{{range .Findings}}{{formatRow .EntityName .RuleName .Severity (result .TestResult)}}
{{end}}{{separator}}
{{end}}{{range .Entities.Invalid}}
Not found: {{.}}{{end}}

Report: {{.ReportPath}} ({{.Size}})
  Assessment Results: {{.Results}}
  Invalid Entities: {{.Invalid}}
`

	t, err := template.New("summary").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, c.view(summary))
}

func (c *Reporter) view(summary *domain.RunSummary) summaryView {
	v := summaryView{
		RunSummary: summary,
		Size:       humanize.Bytes(uint64(summary.ReportSize)),
		Age:        "at an unknown time",
		Results:    "kept from previous report",
		Invalid:    "kept from previous report",
	}
	if summary.AssessmentReplaced {
		v.Results = "replaced"
	}
	if summary.InvalidReplaced {
		v.Invalid = "replaced"
	}

	var created string
	for _, f := range summary.Findings {
		if f.TestResult {
			v.Passed++
		} else {
			v.Failed++
		}
		if f.CreatedTime != "" {
			created = f.CreatedTime
		}
	}
	if ts, err := time.Parse(time.RFC3339, created); err == nil {
		v.Age = humanize.RelTime(ts, c.now(), "ago", "from now")
	}
	return v
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
