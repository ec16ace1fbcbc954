package terminal

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/de-tools/posture-report/pkg/models/domain"
	"github.com/de-tools/posture-report/pkg/runtime/terminal/commands"
	"github.com/de-tools/posture-report/pkg/runtime/terminal/export"
	"github.com/de-tools/posture-report/pkg/services/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	echo     *Reporter
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output    io.Writer
	ErrOutput io.Writer
	// Transport replaces the default HTTP transport of the API client.
	Transport http.RoundTripper
	Version   string
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	cli := &CLI{
		echo:     NewReporter(opts.Output),
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd(opts)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, mostly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd(opts Options) *cobra.Command {
	cmd := commands.NewReportCmd(commands.Console{
		Out:      opts.Output,
		Err:      opts.ErrOutput,
		Progress: newProgress(opts.ErrOutput),
		Echo:     cli.echo.Handle,
		Summary: func(summary *domain.RunSummary) error {
			return cli.reporter.Handle(summary)
		},
	}, opts.Transport)

	cmd.Version = opts.Version
	cmd.SilenceErrors = true
	cmd.SetOut(opts.Output)
	cmd.SetErr(opts.ErrOutput)

	cmd.PersistentFlags().String("config", config.DefaultPath(), "Path to the ini file with endpoint profiles")
	cmd.PersistentFlags().String("log-level", zerolog.InfoLevel.String(), "Log level: debug, info, warn or error")

	cmd.AddCommand(commands.NewPlatformsCmd())
	cmd.AddCommand(commands.NewProfilesCmd())

	return cmd
}
