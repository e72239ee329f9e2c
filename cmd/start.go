package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/xolan/clientclock/internal/cli"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start <name>",
	Short: "Start the client's timer",
	Long: `Start a timer for a client. Each client has at most one timer.

Examples:
  clientclock start Acme`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeClientNames,
	Run: func(cmd *cobra.Command, args []string) {
		startTimer(args[0])
	},
}

// pauseCmd represents the pause command
var pauseCmd = &cobra.Command{
	Use:   "pause <name>",
	Short: "Pause the client's timer",
	Long: `Pause a running timer. Paused time is not counted as worked.

With the default pause_accounting = "polling", paused time is only measured
while the TUI is open. Set pause_accounting = "persistent" in config.toml to
measure pauses between separate commands.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeClientNames,
	Run: func(cmd *cobra.Command, args []string) {
		pauseTimer(args[0])
	},
}

// resumeCmd represents the resume command
var resumeCmd = &cobra.Command{
	Use:               "resume <name>",
	Aliases:           []string{"restart"},
	Short:             "Resume the client's paused timer",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeClientNames,
	Run: func(cmd *cobra.Command, args []string) {
		resumeTimer(args[0])
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
}

func startTimer(name string) {
	svcs, ok := loadServices()
	if !ok {
		return
	}

	status, err := svcs.Timer.Start(name)
	if err != nil {
		failWith(err, name)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Timer started: %s (%s)\n", name, cli.FormatTimerStartTime(status.StartedAt, time.Now()))
}

func pauseTimer(name string) {
	svcs, ok := loadServices()
	if !ok {
		return
	}

	status, err := svcs.Timer.Pause(name)
	if err != nil {
		failWith(err, name)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Timer paused: %s (%s worked)\n", name, cli.FormatElapsedTime(status.Elapsed))
}

func resumeTimer(name string) {
	svcs, ok := loadServices()
	if !ok {
		return
	}

	status, err := svcs.Timer.Resume(name)
	if err != nil {
		failWith(err, name)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Timer resumed: %s (%s worked)\n", name, cli.FormatElapsedTime(status.Elapsed))
}
