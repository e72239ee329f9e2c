package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/xolan/clientclock/internal/app"
	"github.com/xolan/clientclock/internal/timer"
)

// ConfigFile is the name of the TOML configuration file
const ConfigFile = "config.toml"

const (
	AccountingPolling    = "polling"
	AccountingPersistent = "persistent"
)

// SummaryFormats lists the accepted summary_format values.
var SummaryFormats = []string{"text", "json", "yaml", "csv"}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Config represents the application configuration
type Config struct {
	// PauseAccounting selects how paused time accrues: "polling" only counts
	// pauses while the TUI is watching, "persistent" counts them across runs.
	PauseAccounting string `toml:"pause_accounting"`
	// Theme is the bubbletint theme ID used by the TUI
	Theme string `toml:"theme"`
	// LogLevel is one of debug, info, warn or error
	LogLevel string `toml:"log_level"`
	// SummaryFormat is the default output format of the summary command
	SummaryFormat string `toml:"summary_format"`
}

// DefaultConfig returns a Config with the default settings.
// - pause_accounting: "polling"
// - theme: "" (TUI default theme)
// - log_level: "warn"
// - summary_format: "text"
func DefaultConfig() Config {
	return Config{
		PauseAccounting: AccountingPolling,
		Theme:           "",
		LogLevel:        "warn",
		SummaryFormat:   "text",
	}
}

// GetConfigPath returns the path to the config file, creating the data
// directory if it doesn't exist.
func GetConfigPath() (string, error) {
	return app.Path(ConfigFile)
}

// Load reads and validates the config file at path. Missing keys keep their
// defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path, or returns DefaultConfig if the file does not
// exist. Any other error is returned.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), err
	}
	return Load(path)
}

// Normalize lowercases and trims the enumerated fields. Empty values fall
// back to their defaults.
func (c *Config) Normalize() {
	def := DefaultConfig()
	c.PauseAccounting = normalizeField(c.PauseAccounting, def.PauseAccounting)
	c.LogLevel = normalizeField(c.LogLevel, def.LogLevel)
	c.SummaryFormat = normalizeField(c.SummaryFormat, def.SummaryFormat)
	c.Theme = strings.TrimSpace(c.Theme)
}

func normalizeField(v, def string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return def
	}
	return v
}

// Validate checks the enumerated fields.
func (c Config) Validate() error {
	switch c.PauseAccounting {
	case AccountingPolling, AccountingPersistent:
	default:
		return fmt.Errorf("invalid pause_accounting %q: must be %q or %q",
			c.PauseAccounting, AccountingPolling, AccountingPersistent)
	}

	if _, ok := logLevels[c.LogLevel]; !ok {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}

	if !validSummaryFormat(c.SummaryFormat) {
		return fmt.Errorf("invalid summary_format %q: must be one of %s",
			c.SummaryFormat, strings.Join(SummaryFormats, ", "))
	}
	return nil
}

func validSummaryFormat(f string) bool {
	for _, s := range SummaryFormats {
		if s == f {
			return true
		}
	}
	return false
}

// Accounting maps pause_accounting onto the timer mode.
func (c Config) Accounting() timer.Accounting {
	if c.PauseAccounting == AccountingPersistent {
		return timer.Persistent
	}
	return timer.Polling
}

// SlogLevel maps log_level onto a slog level. Unknown values yield warn.
func (c Config) SlogLevel() slog.Level {
	if lvl, ok := logLevels[c.LogLevel]; ok {
		return lvl
	}
	return slog.LevelWarn
}

// Save writes cfg as TOML to path.
func Save(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// GenerateSampleConfig returns a commented sample config file.
func GenerateSampleConfig() string {
	return `# clientclock configuration file
#
# Every setting is optional; the commented values are the defaults.

# How paused time is counted.
#   "polling"    - pauses only accrue while the TUI is open and watching
#   "persistent" - pauses accrue across separate CLI invocations
# pause_accounting = "polling"

# TUI colour theme (bubbletint ID), e.g. "dracula", "nord", "gruvbox_dark".
# theme = "dracula"

# Log verbosity: "debug", "info", "warn" or "error".
# log_level = "warn"

# Default output of the summary command: "text", "json", "yaml" or "csv".
# summary_format = "text"
`
}
