// Package views holds the tab models of the TUI.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/clientclock/internal/cli"
	"github.com/xolan/clientclock/internal/client"
	"github.com/xolan/clientclock/internal/service"
	"github.com/xolan/clientclock/internal/timer"
	"github.com/xolan/clientclock/internal/tui/ui"
)

// renderField renders one "label: value" line.
func renderField(styles ui.Styles, label, value string) string {
	return styles.Label.Render(label+":") + " " + styles.Value.Render(value) + "\n"
}

// renderRule renders a horizontal rule at most 50 cells wide.
func renderRule(width int) string {
	if width <= 0 {
		width = 50
	}
	return strings.Repeat("─", min(50, width)) + "\n"
}

// renderTimerCell renders a live timer as H:MM:SS with a state marker.
func renderTimerCell(styles ui.Styles, s service.TimerStatus) string {
	switch s.Phase {
	case timer.PhaseRunning:
		return styles.TimerRunning.Render("● " + cli.FormatClock(s.Elapsed))
	case timer.PhasePaused:
		return styles.TimerPaused.Render("‖ " + cli.FormatClock(s.Elapsed))
	}
	return styles.TimerIdle.Render("-")
}

// padCell left-aligns rendered text to width cells.
func padCell(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// truncate shortens s to n runes with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "…"
}

func minutesLabel(minutes float64) string {
	return fmt.Sprintf("%s %s", client.FormatNumber(minutes), cli.Pluralize("minute", int(minutes)))
}

// clamp keeps a cursor inside [0, n).
func clamp(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	return max(0, cursor)
}
