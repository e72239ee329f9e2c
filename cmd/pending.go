package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xolan/clientclock/internal/cli"
	"github.com/xolan/clientclock/internal/client"
)

// pendingCmd lists a client's pending entries
var pendingCmd = &cobra.Command{
	Use:   "pending <name>",
	Short: "List the client's pending entries",
	Long: `List completed timer runs that have not been confirmed or discarded.
The numbers shown are used by 'confirm' and 'discard'.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeClientNames,
	Run: func(cmd *cobra.Command, args []string) {
		listPending(args[0])
	},
}

// confirmCmd folds a pending entry into the total
var confirmCmd = &cobra.Command{
	Use:   "confirm <name> <n>",
	Short: "Add pending entry n to the client's total",
	Long: `Add the minutes of pending entry n (as shown by 'pending') to the
client's worked time and remove the entry.

Examples:
  clientclock confirm Acme 1`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeClientNames,
	Run: func(cmd *cobra.Command, args []string) {
		confirmPending(args[0], args[1])
	},
}

// discardCmd drops a pending entry
var discardCmd = &cobra.Command{
	Use:               "discard <name> <n>",
	Short:             "Remove pending entry n without adding it",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeClientNames,
	Run: func(cmd *cobra.Command, args []string) {
		discardPending(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(pendingCmd)
	rootCmd.AddCommand(confirmCmd)
	rootCmd.AddCommand(discardCmd)
}

func listPending(name string) {
	svcs, ok := loadServices()
	if !ok {
		return
	}

	c, err := svcs.Clients.Get(name)
	if err != nil {
		failWith(err, name)
		return
	}
	if len(c.PotentialTimes) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No pending entries for %s\n", name)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Pending entries for %s:\n", name)
	for i, p := range c.PotentialTimes {
		_, _ = fmt.Fprintf(deps.Stdout, "  %d. %s %s\n", i+1, client.FormatNumber(p.Minutes), cli.Pluralize("minute", int(p.Minutes)))
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Total pending: %s\n", client.FormatMinutes(c.PendingTotal()))
}

// parsePendingIndex converts a 1-based user index to 0-based
func parsePendingIndex(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		fail(fmt.Sprintf("Invalid index '%s'. Index must be a number", s), nil, "")
		return 0, false
	}
	if n < 1 {
		fail(fmt.Sprintf("Index must be 1 or greater (got %d)", n), nil, "")
		return 0, false
	}
	return n - 1, true
}

func confirmPending(name, indexStr string) {
	index, ok := parsePendingIndex(indexStr)
	if !ok {
		return
	}
	svcs, ok := loadServices()
	if !ok {
		return
	}

	c, added, err := svcs.Clients.ConfirmPending(name, index)
	if err != nil {
		failWith(err, name)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Confirmed %s %s for %s (total %s)\n",
		client.FormatNumber(added), cli.Pluralize("minute", int(added)), name, cli.FormatWorked(c.TimeWorked))
}

func discardPending(name, indexStr string) {
	index, ok := parsePendingIndex(indexStr)
	if !ok {
		return
	}
	svcs, ok := loadServices()
	if !ok {
		return
	}

	_, removed, err := svcs.Clients.DiscardPending(name, index)
	if err != nil {
		failWith(err, name)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Discarded %s %s from %s\n",
		client.FormatNumber(removed.Minutes), cli.Pluralize("minute", int(removed.Minutes)), name)
}
