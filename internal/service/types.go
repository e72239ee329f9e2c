// Package service provides the business logic layer for clientclock.
// It wraps the storage, timer and config packages, providing one API for
// both the CLI and TUI frontends.
package service

import (
	"time"

	"github.com/xolan/clientclock/internal/client"
	"github.com/xolan/clientclock/internal/timer"
)

// TimerStatus is a snapshot of one client's timer
type TimerStatus struct {
	Client     string
	Phase      timer.Phase
	StartedAt  time.Time     // Zero when idle
	Elapsed    time.Duration // Worked time so far, excluding pauses
	PausedTime time.Duration
}

// Active reports whether the timer is running or paused.
func (s TimerStatus) Active() bool {
	return s.Phase != timer.PhaseIdle
}

// SummaryResult contains the per-client summary and totals
type SummaryResult struct {
	Lines        []client.Summary `json:"clients" yaml:"clients"`
	TotalMinutes float64          `json:"totalMinutes" yaml:"totalMinutes"`
	TotalHours   string           `json:"totalHours" yaml:"totalHours"`
}
