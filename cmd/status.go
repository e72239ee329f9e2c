package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/xolan/clientclock/internal/cli"
	"github.com/xolan/clientclock/internal/service"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status [name]",
	Short: "Show timer status",
	Long: `Show the timer of one client, or every running and paused timer.

Examples:
  clientclock status
  clientclock status Acme`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeClientNames,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 1 {
			showClientStatus(args[0])
			return
		}
		showStatus()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// showStatus lists every active timer
func showStatus() {
	svcs, ok := loadServices()
	if !ok {
		return
	}

	statuses, err := svcs.Timer.Active()
	if err != nil {
		failWith(err, "")
		return
	}
	if len(statuses) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No timers running")
		_, _ = fmt.Fprintln(deps.Stdout, "Start a timer with: clientclock start <name>")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Active %s:\n", cli.Pluralize("timer", len(statuses)))
	for _, s := range statuses {
		printStatusLine(s)
	}
}

func showClientStatus(name string) {
	svcs, ok := loadServices()
	if !ok {
		return
	}

	s, err := svcs.Timer.Status(name)
	if err != nil {
		failWith(err, name)
		return
	}
	if !s.Active() {
		_, _ = fmt.Fprintf(deps.Stdout, "No timer running for %s\n", name)
		return
	}
	printStatusLine(*s)
}

func printStatusLine(s service.TimerStatus) {
	_, _ = fmt.Fprintf(deps.Stdout, "  %s: %s, started %s\n",
		s.Client, cli.FormatTimerState(s), cli.FormatTimerStartTime(s.StartedAt, time.Now()))
}
