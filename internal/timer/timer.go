// Package timer implements the per-client start/pause/resume/stop state machine.
//
// Timestamps are Unix milliseconds, matching the persisted shape
// {"startTime": ms|null, "paused": bool, "pausedTime": ms}.
package timer

import (
	"errors"
	"fmt"
	"time"
)

// Transition errors. A Timer never changes state when it returns one.
var (
	ErrAlreadyRunning = errors.New("timer is already running")
	ErrNotRunning     = errors.New("no timer is running")
	ErrAlreadyPaused  = errors.New("timer is already paused")
	ErrNotPaused      = errors.New("timer is not paused")
)

// Phase is the state machine position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Accounting selects how paused time accrues.
type Accounting int

const (
	// Polling accrues pause time only between observations made by the same
	// process. A paused timer that nobody observes does not accrue, and a
	// reloaded timer forgets when it was last observed.
	Polling Accounting = iota
	// Persistent stores the last observation with the state and observes on
	// resume and stop, so pauses accrue across processes.
	Persistent
)

// State is the persisted timer record.
type State struct {
	StartTime  *int64 `json:"startTime"`
	Paused     bool   `json:"paused"`
	PausedTime int64  `json:"pausedTime"`
	// LastTick is only written under Persistent accounting.
	LastTick *int64 `json:"lastTick,omitempty"`
}

// Phase derives the machine position from the record.
func (s State) Phase() Phase {
	switch {
	case s.StartTime == nil:
		return PhaseIdle
	case s.Paused:
		return PhasePaused
	default:
		return PhaseRunning
	}
}

// StartedAt returns the start time, or the zero time when idle.
func (s State) StartedAt() time.Time {
	if s.StartTime == nil {
		return time.Time{}
	}
	return time.UnixMilli(*s.StartTime)
}

// Timer is one client's timer. It is not safe for concurrent use.
type Timer struct {
	state      State
	oldNow     *int64
	accounting Accounting
}

// New returns an idle Timer.
func New(accounting Accounting) *Timer {
	return &Timer{accounting: accounting}
}

// FromState rebuilds a Timer from a persisted record. A record without a
// start time is treated as clean idle regardless of its other fields.
func FromState(s State, accounting Accounting) *Timer {
	t := &Timer{accounting: accounting}
	if s.StartTime == nil {
		return t
	}

	start := *s.StartTime
	t.state = State{StartTime: &start, Paused: s.Paused, PausedTime: s.PausedTime}
	if accounting == Persistent && s.LastTick != nil {
		last := *s.LastTick
		t.oldNow = &last
	}
	return t
}

// State returns a copy of the record to persist.
func (t *Timer) State() State {
	s := State{Paused: t.state.Paused, PausedTime: t.state.PausedTime}
	if t.state.StartTime != nil {
		start := *t.state.StartTime
		s.StartTime = &start
	}
	if t.accounting == Persistent && t.oldNow != nil && s.StartTime != nil {
		last := *t.oldNow
		s.LastTick = &last
	}
	return s
}

// Phase reports the current machine position.
func (t *Timer) Phase() Phase {
	return t.state.Phase()
}

// PausedTime returns the accumulated pause.
func (t *Timer) PausedTime() time.Duration {
	return time.Duration(t.state.PausedTime) * time.Millisecond
}

// Start moves Idle -> Running.
func (t *Timer) Start(now time.Time) error {
	if t.Phase() != PhaseIdle {
		return ErrAlreadyRunning
	}
	ms := now.UnixMilli()
	t.state = State{StartTime: &ms}
	t.oldNow = &ms
	return nil
}

// Pause moves Running -> Paused and marks now as the last observation.
func (t *Timer) Pause(now time.Time) error {
	switch t.Phase() {
	case PhaseIdle:
		return ErrNotRunning
	case PhasePaused:
		return ErrAlreadyPaused
	}
	ms := now.UnixMilli()
	t.state.Paused = true
	t.oldNow = &ms
	return nil
}

// Resume moves Paused -> Running. Under Polling accounting the time since
// the last observation is not added to the pause.
func (t *Timer) Resume(now time.Time) error {
	switch t.Phase() {
	case PhaseIdle:
		return ErrNotRunning
	case PhaseRunning:
		return ErrNotPaused
	}
	if t.accounting == Persistent {
		t.Observe(now)
	}
	t.state.Paused = false
	return nil
}

// Stop moves Running or Paused -> Idle and returns the worked whole minutes.
func (t *Timer) Stop(now time.Time) (int, error) {
	if t.Phase() == PhaseIdle {
		return 0, ErrNotRunning
	}
	if t.accounting == Persistent {
		t.Observe(now)
	}
	minutes := ElapsedMinutes(t.elapsedMillis(now))
	t.state = State{}
	return minutes, nil
}

// Observe is the periodic recompute. While paused it adds the time since the
// previous observation to the pause; it always records now as the latest
// observation. It returns true when the pause total changed.
func (t *Timer) Observe(now time.Time) bool {
	ms := now.UnixMilli()
	changed := false
	if t.state.Paused && t.oldNow != nil {
		if delta := ms - *t.oldNow; delta > 0 {
			t.state.PausedTime += delta
			changed = true
		}
	}
	t.oldNow = &ms
	return changed
}

// Elapsed returns the worked time so far, zero when idle.
func (t *Timer) Elapsed(now time.Time) time.Duration {
	if t.Phase() == PhaseIdle {
		return 0
	}
	ms := t.elapsedMillis(now)
	if ms < 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

func (t *Timer) elapsedMillis(now time.Time) int64 {
	return (now.UnixMilli() - *t.state.StartTime) - t.state.PausedTime
}

// ElapsedMinutes truncates milliseconds to whole seconds, then to whole
// minutes. Negative input yields 0.
func ElapsedMinutes(ms int64) int {
	if ms <= 0 {
		return 0
	}
	seconds := ms / 1000
	return int(seconds / 60)
}
