package main

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"

	"github.com/de-tools/posture-report/pkg/server"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	fixturesPath string
	addr         string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "fakeapi",
		Short: "Serve a fixture-backed stand-in for the CloudGuard API",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&fixturesPath, "fixtures", "f", "fixtures.json", "Path to the JSON fixtures file")
	rootCmd.Flags().StringVar(&addr, "addr", "",
		"Listen address (default is SERVER_HOST:SERVER_PORT from the environment or .env)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Err(err).Msg("failed to load .env file")
	}

	fixtures, err := server.LoadFixtures(fixturesPath)
	if err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}
	logger.Info().
		Str("path", fixturesPath).
		Int("assets", len(fixtures.Assets)).
		Int("accounts", countAccounts(fixtures)).
		Msg("fixtures loaded")

	if addr == "" {
		host := os.Getenv("SERVER_HOST")
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			return fmt.Errorf("no listen address: pass --addr or set SERVER_PORT")
		}
		addr = net.JoinHostPort(host, port)
	}

	api := server.NewFakeAPI(server.Config{
		Addr:     addr,
		Fixtures: fixtures,
		Logger:   logger,
	})
	return api.Start()
}

func countAccounts(f *server.Fixtures) int {
	n := 0
	for _, accounts := range f.Accounts {
		n += len(accounts)
	}
	return n
}
