package ui

import (
	"time"

	"github.com/xolan/clientclock/internal/service"
)

// ThemeChangeRequestMsg is sent when a theme change is requested.
type ThemeChangeRequestMsg struct {
	ThemeName string
}

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// TickMsg fires once per second while the TUI runs.
type TickMsg time.Time

// TimersObservedMsg carries the timer states after a tick was observed.
type TimersObservedMsg struct {
	Statuses []service.TimerStatus
	Err      error
}
