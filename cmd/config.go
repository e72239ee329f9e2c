package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for clientclock.

Shows the configuration file location, whether it exists, and all current settings.
Configuration values are merged from the config file with defaults.

clientclock works without any configuration file. All settings have defaults:
  - pause_accounting: polling
  - theme: (TUI default)
  - log_level: warn
  - summary_format: text

Configuration file location:
  ~/.config/clientclock/config.toml          Linux
  %APPDATA%\clientclock\config.toml          Windows
  $CLIENTCLOCK_HOME/config.toml              when CLIENTCLOCK_HOME is set

Run 'clientclock config init' to write a commented sample file.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showConfig()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample config file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		initConfig()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}

// showConfig displays the current effective configuration
func showConfig() {
	svcs, ok := loadServices()
	if !ok {
		return
	}
	cfgSvc := svcs.Config
	cfg := cfgSvc.Get()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration for clientclock")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(deps.Stdout)

	path := cfgSvc.GetPath()
	if path == "" {
		path = "(none, ephemeral session)"
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Config file:       %s\n", path)
	if cfgSvc.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:            File exists (using custom configuration)")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:            No config file (using defaults)")
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, "Current Settings:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Pause accounting:  %s\n", cfg.PauseAccounting)
	if cfg.Theme == "" {
		_, _ = fmt.Fprintln(deps.Stdout, "Theme:             (default)")
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Theme:             %s\n", cfg.Theme)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Log level:         %s\n", cfg.LogLevel)
	_, _ = fmt.Fprintf(deps.Stdout, "Summary format:    %s\n", cfg.SummaryFormat)
	_, _ = fmt.Fprintln(deps.Stdout)

	if !cfgSvc.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Tip: Run 'clientclock config init' to create a config.toml with all options.")
		_, _ = fmt.Fprintln(deps.Stdout)
	}
}

func initConfig() {
	svcs, ok := loadServices()
	if !ok {
		return
	}
	if svcs.Config.GetPath() == "" {
		fail("No config file in an ephemeral session", nil, "Run without --ephemeral")
		return
	}
	if err := svcs.Config.Init(); err != nil {
		fail("Failed to create config file", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Created %s\n", svcs.Config.GetPath())
}
