package cmd

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/clientclock/internal/kv"
	"github.com/xolan/clientclock/internal/service"
	"github.com/xolan/clientclock/internal/storage"
	"github.com/xolan/clientclock/internal/timer"
)

// fail prints an Error/Details/Hint block to stderr and exits 1.
func fail(msg string, err error, hint string) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: %s\n", msg)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	}
	if hint != "" {
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
	}
	deps.Exit(1)
}

// failWith reports err with a message and hint chosen by its kind.
func failWith(err error, name string) {
	switch {
	case errors.Is(err, service.ErrClientNotFound):
		fail(fmt.Sprintf("Client '%s' not found", name), nil,
			"Run 'clientclock client list' to see clients, or add it with 'clientclock client add'")
	case errors.Is(err, service.ErrEmptyName):
		fail("Client name cannot be empty", nil, "")
	case errors.Is(err, service.ErrNegativeTime):
		fail("Negative values are not allowed", err, "Time can only be added")
	case errors.Is(err, service.ErrIndexOutOfRange):
		fail("Pending entry index out of range", err,
			fmt.Sprintf("Run 'clientclock pending %s' to see pending entries", name))
	case errors.Is(err, timer.ErrAlreadyRunning):
		fail(fmt.Sprintf("A timer is already running for '%s'", name), nil,
			fmt.Sprintf("Stop it first with 'clientclock stop %s'", name))
	case errors.Is(err, timer.ErrNotRunning):
		fail(fmt.Sprintf("No timer is running for '%s'", name), nil,
			fmt.Sprintf("Start one with 'clientclock start %s'", name))
	case errors.Is(err, timer.ErrAlreadyPaused):
		fail(fmt.Sprintf("The timer for '%s' is already paused", name), nil,
			fmt.Sprintf("Resume it with 'clientclock resume %s'", name))
	case errors.Is(err, timer.ErrNotPaused):
		fail(fmt.Sprintf("The timer for '%s' is not paused", name), nil, "")
	case errors.Is(err, storage.ErrMalformed), errors.Is(err, kv.ErrCorrupt):
		fail("Stored data is malformed", err,
			"Run 'clientclock validate' for details, or 'clientclock restore' to recover from a backup")
	default:
		fail("Operation failed", err, "")
	}
}

// loadServices returns the services or reports why they could not be built.
func loadServices() (*service.Services, bool) {
	svcs, err := deps.Services()
	if err != nil {
		if errors.Is(err, storage.ErrMalformed) || errors.Is(err, kv.ErrCorrupt) {
			failWith(err, "")
			return nil, false
		}
		fail("Failed to open storage", err, "Check that your config directory is accessible and writable")
		return nil, false
	}
	return svcs, true
}

// confirmer returns nil (always agree) when yes is set, otherwise a prompt
// reading from stdin.
func confirmer(yes bool) service.Confirmer {
	if yes {
		return nil
	}
	return promptConfirmation
}

// promptConfirmation asks the question on stdout.
// Returns true if user confirms with 'y' or 'Y', false otherwise
func promptConfirmation(prompt string) bool {
	_, _ = fmt.Fprintf(deps.Stdout, "%s [y/N]: ", prompt)

	scanner := bufio.NewScanner(deps.Stdin)
	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(scanner.Text())
	return response == "y" || response == "Y"
}

func writeCSVRow(writer *csv.Writer, row []string) error {
	if err := writer.Write(row); err != nil {
		fail("Failed to write CSV row", err, "")
		return err
	}
	return nil
}
