package cmd

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/xolan/clientclock/internal/config"
	"github.com/xolan/clientclock/internal/kv"
	"github.com/xolan/clientclock/internal/service"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Stdin    io.Reader
	Exit     func(code int)
	Services func() (*service.Services, error)
	// StorePath locates the store file without opening it, so recovery
	// commands work on a corrupt store.
	StorePath func() (string, error)
}

// errNoStoreFile is returned by StorePath in an ephemeral session.
var errNoStoreFile = errors.New("no store file in an ephemeral session")

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	d := &Deps{
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Stdin:     os.Stdin,
		Exit:      os.Exit,
		StorePath: defaultStorePath,
	}
	// Logs follow d.Stderr, even if it is swapped later
	d.Services = func() (*service.Services, error) {
		return openServices(d.Stderr)
	}
	return d
}

// deps is the global dependencies instance used by commands.
// In production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}

var (
	verboseFlag   bool
	ephemeralFlag bool
	// quietLogs discards log output while the TUI owns the terminal.
	quietLogs bool
)

// openServices opens the file store, or a throwaway memory store with
// --ephemeral. Logs go to stderr.
func openServices(stderr io.Writer) (*service.Services, error) {
	if ephemeralFlag {
		cfg := config.DefaultConfig()
		return service.NewServicesWithStore(kv.NewMemoryStore(), "", cfg, newLogger(stderr, cfg))
	}
	return service.NewServices(func(cfg config.Config) *slog.Logger {
		return newLogger(stderr, cfg)
	})
}

func defaultStorePath() (string, error) {
	if ephemeralFlag {
		return "", errNoStoreFile
	}
	return kv.GetStorePath()
}

// newLogger writes text logs to w at the configured level.
func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	if quietLogs {
		return slog.New(slog.DiscardHandler)
	}
	level := cfg.SlogLevel()
	if verboseFlag {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
