package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/clientclock/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	Long: `Launch the interactive Terminal User Interface for clientclock.

The TUI shows every client with a live timer display. While it is open it
measures paused time once per second.

Views available:
  - Clients: Add clients, run timers, add time, confirm pending entries
  - Summary: Worked minutes and hours per client
  - Config: View configuration and pick a theme

Keyboard shortcuts:
  - Tab/Shift+Tab: Navigate between views
  - 1-3: Jump to specific view
  - j/k or arrows: Navigate within lists
  - ?: Show help
  - q: Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runTUI initializes and runs the TUI application
func runTUI() {
	quietLogs = true
	defer func() { quietLogs = false }()

	svcs, ok := loadServices()
	if !ok {
		return
	}

	if err := tui.Run(svcs); err != nil {
		fail("Failed to run TUI", err, "")
	}
}
