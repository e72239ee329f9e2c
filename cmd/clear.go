package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/clientclock/internal/service"
)

var clearYesFlag bool

// clearCmd resets every worked total
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset every client's worked time to zero",
	Long: `Reset the worked time of every client to zero. Pending entries are kept.
A confirmation prompt will be shown unless --yes is specified.
A backup is taken first; undo with 'clientclock restore'.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		clearTimings(clearYesFlag)
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVarP(&clearYesFlag, "yes", "y", false, "skip confirmation prompt")
}

func clearTimings(yes bool) {
	svcs, ok := loadServices()
	if !ok {
		return
	}

	err := svcs.Clients.ClearAll(confirmer(yes))
	if errors.Is(err, service.ErrCancelled) {
		_, _ = fmt.Fprintln(deps.Stdout, "Clear cancelled")
		return
	}
	if err != nil {
		failWith(err, "")
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, "Cleared all timings")
}
