package commands

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/de-tools/posture-report/pkg/models/domain"
	"github.com/de-tools/posture-report/pkg/services/account"
	"github.com/de-tools/posture-report/pkg/services/assessment"
	"github.com/de-tools/posture-report/pkg/services/assets"
	"github.com/de-tools/posture-report/pkg/services/config"
	"github.com/de-tools/posture-report/pkg/services/workflow"
	"github.com/de-tools/posture-report/pkg/store/client"
	"github.com/de-tools/posture-report/pkg/store/xlsx"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const DefaultReportPath = "compliance_report.xlsx"

// Console is the set of outputs a command writes to.
type Console struct {
	// Out receives the human readable report.
	Out io.Writer
	// Err receives logs and the progress spinner.
	Err io.Writer
	// Progress reports long running steps; nil disables it.
	Progress Progress
	// Echo prints the run parameters.
	Echo func(RequestEcho) error
	// Summary prints the run outcome.
	Summary func(*domain.RunSummary) error
}

type Progress interface {
	Start(format string, args ...any)
	Update(format string, args ...any)
	Stop(final string)
}

type RequestEcho struct {
	Username    string
	Platform    string
	AccountName string
	Entities    []string
	Host        string
	ReportPath  string
}

type ReportCmd struct {
	username    string
	password    string
	platform    string
	accountName string
	entityNames string
	host        string
	output      string
	profile     string
	timeout     time.Duration

	console   Console
	transport http.RoundTripper
}

type settings struct {
	Host     string
	Output   string
	Timeout  time.Duration
	LogLevel zerolog.Level
}

// NewReportCmd builds the command that produces the compliance report. It
// expects the persistent --config and --log-level flags on a parent.
func NewReportCmd(console Console, transport http.RoundTripper) *cobra.Command {
	rc := &ReportCmd{console: console, transport: transport}
	cmd := &cobra.Command{
		Use:   "posture-report",
		Short: "Export CloudGuard compliance findings for selected entities to a spreadsheet",
		Long: `posture-report resolves a cloud account by name, checks that the requested
entities exist in it, and writes the latest assessment findings for those
entities to a two-sheet spreadsheet, merging with a previous report.`,
		Example: `  posture-report --username KEY --password SECRET --platform aws \
    --account_name "Prod Account" --entityname "vm-123, bucket-logs"`,
		SilenceUsage: true,
		RunE:         rc.run,
	}

	cmd.Flags().StringVar(&rc.username, "username", "", "API key id used as the Basic auth username")
	cmd.Flags().StringVar(&rc.password, "password", "", "API key secret used as the Basic auth password")
	cmd.Flags().StringVar(&rc.platform, "platform", "", "Cloud platform: aws, azure, google or kubernetes")
	cmd.Flags().StringVar(&rc.accountName, "account_name", "",
		"Cloud account name, Azure subscription, Google project or cluster name (quote names with spaces)")
	cmd.Flags().StringVar(&rc.entityNames, "entityname", "", "Comma separated list of entity names")

	cmd.Flags().StringVar(&rc.host, "host", client.DefaultHost, "API base URL (overrides the profile)")
	cmd.Flags().StringVarP(&rc.output, "output", "o", DefaultReportPath, "Report file (overrides the profile)")
	cmd.Flags().StringVar(&rc.profile, "profile", config.DefaultProfile, "Profile to read from the config file")
	cmd.Flags().DurationVar(&rc.timeout, "timeout", client.DefaultTimeout, "Timeout of each API request")

	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("platform")
	_ = cmd.MarkFlagRequired("account_name")
	_ = cmd.MarkFlagRequired("entityname")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	platform, err := domain.ParsePlatform(rc.platform)
	if err != nil {
		return err
	}
	entities := domain.ParseEntityNames(rc.entityNames)
	if len(entities) == 0 {
		return fmt.Errorf("--entityname must name at least one entity")
	}

	s, err := rc.settings(cmd)
	if err != nil {
		return err
	}

	logger := NewLogger(rc.console.Err, s.LogLevel)
	ctx := logger.WithContext(cmd.Context())

	if rc.console.Echo != nil {
		err := rc.console.Echo(RequestEcho{
			Username:    rc.username,
			Platform:    platform.String(),
			AccountName: rc.accountName,
			Entities:    entities,
			Host:        s.Host,
			ReportPath:  s.Output,
		})
		if err != nil {
			return err
		}
	}

	c, err := client.NewClient(client.Config{
		Host:        s.Host,
		Credentials: domain.Credentials{Username: rc.username, Password: rc.password},
		Timeout:     s.Timeout,
		Transport:   rc.transport,
	})
	if err != nil {
		return err
	}

	p := rc.console.Progress
	if p == nil {
		p = noProgress{}
	}
	defer p.Stop("")

	checked := 0
	runner := workflow.NewRunner(
		account.NewResolver(c),
		assets.NewChecker(c),
		assessment.NewFetcher(c),
		xlsx.NewStore(),
		workflow.Hooks{
			AccountResolved: func(acc domain.CloudAccountRef) {
				fmt.Fprintf(rc.console.Out, "Organization Unit Path: %s\n", orDash(acc.OrgUnit()))
				p.Start("Checking %d entities ...", len(entities))
			},
			EntityChecked: func(name string, _ bool) {
				checked++
				p.Update("Checked %d/%d entities (%s) ...", checked, len(entities), name)
			},
			EntitiesChecked: func(result domain.EntityClassification) {
				p.Stop(fmt.Sprintf("Checked %d entities: %d found, %d not found",
					len(entities), len(result.Valid), len(result.Invalid)))
			},
			AssessmentFetch: func(valid []string) {
				p.Start("Fetching latest assessment results for %d entities ...", len(valid))
			},
			AssessmentLoaded: func(findings []domain.AssessmentFinding) {
				p.Stop(fmt.Sprintf("Assessment results flattened into %d rows", len(findings)))
			},
		},
	)

	summary, err := runner.Run(ctx, workflow.Request{
		Platform:    platform,
		AccountName: rc.accountName,
		Entities:    entities,
		ReportPath:  s.Output,
	})
	if err != nil {
		return err
	}

	if rc.console.Summary != nil {
		return rc.console.Summary(summary)
	}
	return nil
}

// settings resolves options as flag, then profile, then built-in default.
func (rc *ReportCmd) settings(cmd *cobra.Command) (*settings, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	registry, err := config.NewRegistry(configPath)
	if err != nil {
		return nil, err
	}
	profile, err := registry.GetProfile(cmd.Context(), rc.profile)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("host", client.DefaultHost)
	v.SetDefault("output", DefaultReportPath)
	v.SetDefault("timeout", client.DefaultTimeout)
	v.SetDefault("log-level", zerolog.InfoLevel.String())

	fromProfile := map[string]any{}
	if profile.Host != "" {
		fromProfile["host"] = profile.Host
	}
	if profile.Output != "" {
		fromProfile["output"] = profile.Output
	}
	if err := v.MergeConfigMap(fromProfile); err != nil {
		return nil, fmt.Errorf("failed to apply profile %s: %w", profile.Name, err)
	}

	for _, name := range []string{"host", "output", "timeout", "log-level"} {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return nil, fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}

	level, err := zerolog.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	return &settings{
		Host:     v.GetString("host"),
		Output:   v.GetString("output"),
		Timeout:  v.GetDuration("timeout"),
		LogLevel: level,
	}, nil
}

// NewLogger writes human readable logs to w.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	_, isFile := w.(*os.File)
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: !isFile, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

type noProgress struct{}

func (noProgress) Start(string, ...any) {}

func (noProgress) Update(string, ...any) {}

func (noProgress) Stop(string) {}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
