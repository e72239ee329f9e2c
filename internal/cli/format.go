// Package cli provides the presentation helpers shared by the command line
// and the terminal UI.
package cli

import (
	"fmt"
	"time"

	"github.com/xolan/clientclock/internal/client"
	"github.com/xolan/clientclock/internal/service"
	"github.com/xolan/clientclock/internal/storage"
	"github.com/xolan/clientclock/internal/timer"
)

// FormatDuration formats whole minutes as a human-readable string
// Examples: "30m", "2h", "1h 30m"
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// FormatElapsedTime formats a duration as human-readable elapsed time
// Examples: "5m", "1h 23m", "2h"
func FormatElapsedTime(d time.Duration) string {
	return FormatDuration(int(d.Minutes()))
}

// FormatClock formats a duration as H:MM:SS for the live TUI display.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// FormatWorked formats a client's worked total, e.g. "1h 30m (1.50h)"
func FormatWorked(minutes float64) string {
	return fmt.Sprintf("%s (%sh)", client.FormatMinutes(minutes), client.FormatHours(minutes))
}

// FormatSummaryLine renders one report line: "<name>, <minutes> minutes, <hours>h"
func FormatSummaryLine(s client.Summary) string {
	return fmt.Sprintf("%s, %s minutes, %sh", s.Name, client.FormatNumber(s.Minutes), s.Hours)
}

// FormatTimerState describes a timer for status output.
// Examples: "idle", "running 12m", "paused 12m (paused 3m)"
func FormatTimerState(s service.TimerStatus) string {
	switch s.Phase {
	case timer.PhaseRunning:
		return fmt.Sprintf("running %s", FormatElapsedTime(s.Elapsed))
	case timer.PhasePaused:
		if s.PausedTime > 0 {
			return fmt.Sprintf("paused %s (paused %s)", FormatElapsedTime(s.Elapsed), FormatElapsedTime(s.PausedTime))
		}
		return fmt.Sprintf("paused %s", FormatElapsedTime(s.Elapsed))
	}
	return "idle"
}

// FormatProblem formats a storage Problem into a human-readable string
func FormatProblem(p storage.Problem) string {
	msg := p.Error
	if len(msg) > 60 {
		msg = msg[:57] + "..."
	}
	return fmt.Sprintf("  %s: %s", p.Key, msg)
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}

// FormatTimerStartTime formats the timer start time relative to now
func FormatTimerStartTime(startedAt, now time.Time) string {
	startTime := startedAt.Format("3:04 PM")

	isToday := startedAt.Year() == now.Year() &&
		startedAt.Month() == now.Month() &&
		startedAt.Day() == now.Day()

	if isToday {
		return fmt.Sprintf("today at %s", startTime)
	}
	return fmt.Sprintf("%s at %s", startedAt.Format("Mon Jan 2"), startTime)
}
