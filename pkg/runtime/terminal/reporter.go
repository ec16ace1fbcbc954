package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/posture-report/pkg/runtime/terminal/commands"
)

// Reporter echoes the run parameters to the console.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(req commands.RequestEcho) error {
	tmpl := `Username: {{.Username}}
Platform: {{.Platform}}
Cloud Account Name: {{.AccountName}}
Entity Names: {{range $i, $e := .Entities}}{{if $i}}, {{end}}{{$e}}{{end}}
API: {{.Host}}
Report: {{.ReportPath}}
`
	t, err := template.New("request").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, req)
}
