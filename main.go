package main

import (
	"fmt"
	"os"

	"github.com/xolan/clientclock/cmd"
	"github.com/xolan/clientclock/internal/config"
)

// Version information injected by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitFunc is swapped in tests.
var exitFunc = os.Exit

func main() {
	exitFunc(run())
}

// run checks the config file before executing the CLI and returns the exit code.
func run() int {
	cmd.SetVersionInfo(version, commit, date)

	path, err := config.GetConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to locate config directory\nDetails: %v\n", err)
		return 1
	}
	if _, err := config.LoadOrDefault(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\nHint: Fix the file or remove it to use defaults\n", err)
		return 1
	}

	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}
