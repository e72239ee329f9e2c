package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/clientclock/internal/cli"
)

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop <name>",
	Short: "Stop the client's timer and record a pending entry",
	Long: `Stop a running or paused timer. The worked whole minutes are recorded as
a pending entry; confirm it to add it to the client's total.

Examples:
  clientclock stop Acme
  clientclock confirm Acme 1`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeClientNames,
	Run: func(cmd *cobra.Command, args []string) {
		stopTimer(args[0])
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func stopTimer(name string) {
	svcs, ok := loadServices()
	if !ok {
		return
	}

	minutes, err := svcs.Timer.Stop(name)
	if err != nil {
		failWith(err, name)
		return
	}

	c, err := svcs.Clients.Get(name)
	if err != nil {
		failWith(err, name)
		return
	}
	n := len(c.PotentialTimes)

	_, _ = fmt.Fprintf(deps.Stdout, "Timer stopped: %s\n", name)
	_, _ = fmt.Fprintf(deps.Stdout, "Recorded %d %s (%s) as pending entry #%d\n",
		minutes, cli.Pluralize("minute", minutes), cli.FormatDuration(minutes), n)
	_, _ = fmt.Fprintf(deps.Stdout, "Confirm with: clientclock confirm %s %d\n", name, n)
}
