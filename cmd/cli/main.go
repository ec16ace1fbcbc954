package main

import (
	"fmt"
	"os"

	"github.com/de-tools/posture-report/pkg/runtime/terminal"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Output:    os.Stdout,
		ErrOutput: os.Stderr,
		Version:   version,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
