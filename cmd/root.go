package cmd

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xolan/clientclock/internal/cli"
	"github.com/xolan/clientclock/internal/kv"
	"github.com/xolan/clientclock/internal/service"
)

var rootCmd = &cobra.Command{
	Use:   "clientclock",
	Short: "Track time worked per client",
	Long: `clientclock tracks time worked for named clients.

Start a timer per client, pause and resume it, and stop it to record the
worked minutes as a pending entry. Confirm pending entries to add them to the
client's total, or discard them.

Usage:
  clientclock                                List clients and their totals
  clientclock client add <name>              Add a client
  clientclock start <name>                   Start the client's timer
  clientclock pause <name>                   Pause it
  clientclock resume <name>                  Resume it
  clientclock stop <name>                    Stop it and record a pending entry
  clientclock pending <name>                 List pending entries
  clientclock confirm <name> <n>             Add pending entry n to the total
  clientclock add <name> <hours> [minutes]   Add time manually
  clientclock summary                        One line per client
  clientclock tui                            Interactive terminal UI`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		listClients()
	},
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check stored data health",
	Long:  `Validate the stored clients and timers and report any values that fail to decode or timers without a client.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		validateStore()
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&ephemeralFlag, "ephemeral", false, "use an in-memory store that is discarded on exit")
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"clientclock version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// listClients prints every client with its total, timer and pending count.
func listClients() {
	svcs, ok := loadServices()
	if !ok {
		return
	}

	clients, err := svcs.Clients.List()
	if err != nil {
		failWith(err, "")
		return
	}
	if len(clients) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No clients yet")
		_, _ = fmt.Fprintln(deps.Stdout, "Add one with: clientclock client add <name>")
		return
	}

	statuses, err := svcs.Timer.Active()
	if err != nil {
		failWith(err, "")
		return
	}
	byClient := make(map[string]service.TimerStatus, len(statuses))
	for _, s := range statuses {
		byClient[s.Client] = s
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CLIENT\tWORKED\tTIMER\tPENDING")
	for _, c := range clients {
		state := "idle"
		if s, ok := byClient[c.Name]; ok {
			state = cli.FormatTimerState(s)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", c.Name, cli.FormatWorked(c.TimeWorked), state, len(c.PotentialTimes))
	}
	_ = w.Flush()
}

// validateStore reports the health of the store
func validateStore() {
	// A file that is not a JSON object cannot be opened, so check it first
	if path, err := deps.StorePath(); err == nil {
		if _, err := kv.NewFileStore(path).Keys(); errors.Is(err, kv.ErrCorrupt) {
			reportCorruptStore(path, err)
			return
		}
	}

	svcs, ok := loadServices()
	if !ok {
		return
	}

	health, err := svcs.Storage.Validate()
	if err != nil {
		fail("Failed to validate storage", err, "")
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Storage health")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 40))
	_, _ = fmt.Fprintf(deps.Stdout, "Keys:           %d\n", health.TotalKeys)
	_, _ = fmt.Fprintf(deps.Stdout, "Clients:        %d\n", health.Clients)
	_, _ = fmt.Fprintf(deps.Stdout, "Timers:         %d\n", health.Timers)

	if health.Healthy() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:         OK")
		return
	}

	if len(health.Problems) > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "\nMalformed %s (%d):\n", cli.Pluralize("value", len(health.Problems)), len(health.Problems))
		for _, p := range health.Problems {
			_, _ = fmt.Fprintln(deps.Stdout, cli.FormatProblem(p))
		}
	}
	if len(health.OrphanTimers) > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "\nTimers without a client (%d):\n", len(health.OrphanTimers))
		for _, name := range health.OrphanTimers {
			_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", name)
		}
	}
	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintln(deps.Stdout, "Hint: Run 'clientclock restore' to recover from a backup")
	deps.Exit(1)
}

func reportCorruptStore(path string, err error) {
	_, _ = fmt.Fprintln(deps.Stdout, "Storage health")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 40))
	_, _ = fmt.Fprintf(deps.Stdout, "File:           %s\n", path)
	_, _ = fmt.Fprintln(deps.Stdout, "Status:         CORRUPT")
	_, _ = fmt.Fprintf(deps.Stdout, "Details:        %v\n", err)
	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintln(deps.Stdout, "Hint: Run 'clientclock restore' to recover from a backup")
	deps.Exit(1)
}
