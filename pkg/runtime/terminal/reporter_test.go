package terminal

import (
	"bytes"
	"testing"

	"github.com/de-tools/posture-report/pkg/runtime/terminal/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_Handle(t *testing.T) {
	var buf bytes.Buffer

	err := NewReporter(&buf).Handle(commands.RequestEcho{
		Username:    "key",
		Platform:    "azure",
		AccountName: "Subscription A",
		Entities:    []string{"vm-1", "vm-2"},
		Host:        "https://api.dome9.com/v2",
		ReportPath:  "compliance_report.xlsx",
	})
	require.NoError(t, err)

	assert.Equal(t, `Username: key
Platform: azure
Cloud Account Name: Subscription A
Entity Names: vm-1, vm-2
API: https://api.dome9.com/v2
Report: compliance_report.xlsx
`, buf.String())
}
