package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/clientclock/internal/cli"
	"github.com/xolan/clientclock/internal/client"
)

var durationFlag string

// addCmd represents the manual time entry command
var addCmd = &cobra.Command{
	Use:   "add <name> [hours] [minutes]",
	Short: "Add time to a client manually",
	Long: `Add worked time to a client without running a timer.

Examples:
  clientclock add Acme 2             Add two hours
  clientclock add Acme 1 30          Add one hour and thirty minutes
  clientclock add Acme 0 45          Add forty-five minutes
  clientclock add Acme 1.5           Fractional hours are allowed
  clientclock add Acme --duration 1h30m`,
	Args:              cobra.RangeArgs(1, 3),
	ValidArgsFunction: completeClientNames,
	Run: func(cmd *cobra.Command, args []string) {
		addTime(args, durationFlag)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&durationFlag, "duration", "d", "", "duration to add (e.g., 2h, 30m, 1h30m)")
}

// addTime parses hours/minutes or a duration and adds it to the client
func addTime(args []string, duration string) {
	name := args[0]

	var hours, minutes float64
	switch {
	case duration != "" && len(args) > 1:
		fail("Use either <hours> [minutes] or --duration, not both", nil, "")
		return
	case duration != "":
		h, m, err := client.ParseDuration(duration)
		if err != nil {
			fail(fmt.Sprintf("Invalid duration '%s'", duration), err,
				"Use format like '2h' (hours), '30m' (minutes) or '1h30m'")
			return
		}
		hours, minutes = float64(h), float64(m)
	case len(args) == 1:
		fail("Missing time to add", nil, "Usage: clientclock add <name> <hours> [minutes]")
		return
	default:
		var err error
		if hours, err = client.ParseAmount(args[1]); err != nil {
			fail("Invalid hours", err, "Hours must be a non-negative number")
			return
		}
		if len(args) == 3 {
			if minutes, err = client.ParseAmount(args[2]); err != nil {
				fail("Invalid minutes", err, "Minutes must be a non-negative number")
				return
			}
		}
	}

	svcs, ok := loadServices()
	if !ok {
		return
	}

	c, err := svcs.Clients.AddTime(name, hours, minutes)
	if err != nil {
		failWith(err, name)
		return
	}

	added := hours*60 + minutes
	_, _ = fmt.Fprintf(deps.Stdout, "Added %s to %s (total %s)\n",
		client.FormatMinutes(added), name, cli.FormatWorked(c.TimeWorked))
}
