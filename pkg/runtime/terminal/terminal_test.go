package terminal

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/posture-report/pkg/models/api"
	"github.com/de-tools/posture-report/pkg/models/domain"
	"github.com/de-tools/posture-report/pkg/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

type cliEnv struct {
	host   string
	dir    string
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()

	fixtures := &server.Fixtures{
		Username: "key",
		Password: "secret",
		Accounts: map[string][]api.CloudAccount{
			"aws": {{ID: "acc-prod", Name: "Prod Account", OrganizationalUnitPath: strPtr("Root/Prod")}},
		},
		Assets: []api.ProtectedAsset{{ID: "1", Name: "foo", CloudAccountID: "acc-prod"}},
		Assessments: map[string][]api.AssessmentResult{
			"acc-prod": {{
				Request:     api.AssessmentRequest{Name: "Bank Baseline"},
				CreatedTime: "2024-10-09T10:00:00Z",
				Tests: []api.RuleTest{{
					Rule:          api.Rule{Name: "Bucket is encrypted", Severity: "Medium"},
					TestPassed:    true,
					EntityResults: []api.EntityResult{{TestObj: api.TestObj{ID: "bucket/foo"}}},
				}},
			}},
		},
	}
	srv := httptest.NewServer(server.ConfigureRouter(server.Config{
		Fixtures: fixtures,
		Logger:   zerolog.New(zerolog.NewTestWriter(t)),
	}))
	t.Cleanup(srv.Close)

	return &cliEnv{
		host:   srv.URL + "/v2",
		dir:    t.TempDir(),
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}
}

func (e *cliEnv) run(args ...string) error {
	return e.runWith(nil, args...)
}

func (e *cliEnv) runWith(transport http.RoundTripper, args ...string) error {
	cli := NewCLI(Options{Output: e.out, ErrOutput: e.errOut, Transport: transport, Version: "1.2.3"})
	cli.SetArgs(args)
	return cli.ExecuteContext(context.Background())
}

func (e *cliEnv) reportArgs(extra ...string) []string {
	args := []string{
		"--username", "key",
		"--password", "secret",
		"--platform", "AWS",
		"--account_name", "prod account",
		"--entityname", "foo, bar,",
		"--config", filepath.Join(e.dir, "missing.cfg"),
	}
	return append(args, extra...)
}

func TestCLI_Report(t *testing.T) {
	env := newCLIEnv(t)
	report := filepath.Join(env.dir, "out.xlsx")

	err := env.run(env.reportArgs("--host", env.host, "--output", report)...)
	require.NoError(t, err)

	out := env.out.String()
	assert.Contains(t, out, "Username: key")
	assert.Contains(t, out, "Platform: aws")
	assert.Contains(t, out, "Cloud Account Name: prod account")
	assert.Contains(t, out, "Entity Names: foo, bar")
	assert.Contains(t, out, "Organization Unit Path: Root/Prod")
	assert.Contains(t, out, "Bucket is encrypted")
	assert.Contains(t, out, "Not found: bar")
	assert.NotContains(t, out, "secret")

	_, err = os.Stat(report)
	assert.NoError(t, err)
}

type slowTransport struct {
	delay time.Duration
}

func (s slowTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	time.Sleep(s.delay)
	return http.DefaultTransport.RoundTrip(req)
}

func TestCLI_TimeoutAppliesPerRequest(t *testing.T) {
	env := newCLIEnv(t)
	report := filepath.Join(env.dir, "slow.xlsx")

	// Five requests at 300ms each outlast the one second timeout in total.
	err := env.runWith(slowTransport{delay: 300 * time.Millisecond}, env.reportArgs(
		"--host", env.host,
		"--output", report,
		"--timeout", "1s",
		"--entityname", "ghost1,ghost2,foo",
	)...)
	require.NoError(t, err)

	out := env.out.String()
	assert.Contains(t, out, "Not found: ghost1")
	assert.Contains(t, out, "Not found: ghost2")
	assert.NotContains(t, out, "Not found: foo")
	assert.Contains(t, out, "Valid Entities: 1, Invalid Entities: 2")
}

func TestCLI_ProfileSuppliesHostAndOutput(t *testing.T) {
	env := newCLIEnv(t)
	report := filepath.Join(env.dir, "from-profile.xlsx")
	cfg := filepath.Join(env.dir, "cspmcfg")
	require.NoError(t, os.WriteFile(cfg, []byte(
		"[staging]\nhost = "+env.host+"\noutput = "+report+"\n"), 0o600))

	args := env.reportArgs("--profile", "staging")
	args = append(args, "--config", cfg)
	require.NoError(t, env.run(args...))

	_, err := os.Stat(report)
	assert.NoError(t, err)
}

func TestCLI_FlagOverridesProfile(t *testing.T) {
	env := newCLIEnv(t)
	fromFlag := filepath.Join(env.dir, "flag.xlsx")
	fromProfile := filepath.Join(env.dir, "profile.xlsx")
	cfg := filepath.Join(env.dir, "cspmcfg")
	require.NoError(t, os.WriteFile(cfg, []byte(
		"host = "+env.host+"\noutput = "+fromProfile+"\n"), 0o600))

	args := env.reportArgs("--output", fromFlag)
	args = append(args, "--config", cfg)
	require.NoError(t, env.run(args...))

	_, err := os.Stat(fromFlag)
	assert.NoError(t, err)
	_, err = os.Stat(fromProfile)
	assert.True(t, os.IsNotExist(err))
}

func TestCLI_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     func(env *cliEnv) []string
		contains string
		is       error
	}{
		{
			name:     "missing required flags",
			args:     func(env *cliEnv) []string { return []string{"--username", "key"} },
			contains: "required flag(s)",
		},
		{
			name: "unsupported platform",
			args: func(env *cliEnv) []string {
				return []string{"--username", "key", "--password", "secret", "--platform", "oracle",
					"--account_name", "x", "--entityname", "foo", "--host", env.host}
			},
			is: domain.ErrUnsupportedPlatform,
		},
		{
			name: "empty entity list",
			args: func(env *cliEnv) []string {
				return env.reportArgs("--entityname", " , ", "--host", env.host)
			},
			contains: "--entityname",
		},
		{
			name: "unknown account",
			args: func(env *cliEnv) []string {
				return env.reportArgs("--account_name", "staging", "--host", env.host,
					"--output", filepath.Join(env.dir, "r.xlsx"))
			},
			is: domain.ErrAccountNotFound,
		},
		{
			name: "unknown profile",
			args: func(env *cliEnv) []string {
				return env.reportArgs("--profile", "nope", "--host", env.host)
			},
			contains: "profile nope not found",
		},
		{
			name: "bad log level",
			args: func(env *cliEnv) []string {
				return env.reportArgs("--log-level", "loud", "--host", env.host)
			},
			contains: "--log-level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t)
			err := env.run(tt.args(env)...)
			require.Error(t, err)
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestCLI_Platforms(t *testing.T) {
	env := newCLIEnv(t)

	require.NoError(t, env.run("platforms"))

	out := env.out.String()
	assert.Regexp(t, `aws\s+/CloudAccounts\s+902486`, out)
	assert.Regexp(t, `azure\s+/AzureCloudAccount\s+902546`, out)
	assert.Regexp(t, `google\s+/GoogleCloudAccount\s+-128`, out)
	assert.Regexp(t, `kubernetes\s+/kubernetes/account\s+-72`, out)
}

func TestCLI_Profiles(t *testing.T) {
	env := newCLIEnv(t)
	cfg := filepath.Join(env.dir, "cspmcfg")
	require.NoError(t, os.WriteFile(cfg, []byte(
		"[eu]\nhost = https://api.eu1.dome9.com/v2\n\n[us]\noutput = us.xlsx\n"), 0o600))

	require.NoError(t, env.run("profiles", "--config", cfg))

	out := env.out.String()
	assert.Contains(t, out, "[eu]")
	assert.Contains(t, out, "host   = https://api.eu1.dome9.com/v2")
	assert.Contains(t, out, "[us]")
	assert.Contains(t, out, "output = us.xlsx")
}

func TestCLI_ProfilesEmpty(t *testing.T) {
	env := newCLIEnv(t)
	cfg := filepath.Join(env.dir, "missing.cfg")

	require.NoError(t, env.run("profiles", "--config", cfg))
	assert.Contains(t, env.out.String(), "No profiles found")
}

func TestCLI_Version(t *testing.T) {
	env := newCLIEnv(t)

	require.NoError(t, env.run("--version"))
	assert.Contains(t, env.out.String(), "1.2.3")
}
