package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/xolan/clientclock/internal/storage"
	"github.com/xolan/clientclock/internal/timer"
)

// TimerService runs the per-client timers. Timers loaded by this process are
// kept so that repeated ticks can measure paused time between observations.
type TimerService struct {
	mu         sync.Mutex
	storage    *storage.Storage
	clients    *ClientService
	accounting timer.Accounting
	logger     *slog.Logger
	now        func() time.Time
	live       map[string]*timer.Timer
}

// NewTimerService creates a new TimerService
func NewTimerService(st *storage.Storage, clients *ClientService, accounting timer.Accounting, logger *slog.Logger) *TimerService {
	s := &TimerService{
		storage:    st,
		clients:    clients,
		accounting: accounting,
		logger:     logger,
		now:        time.Now,
		live:       map[string]*timer.Timer{},
	}
	clients.clearTimer = s.clearDeleted
	return s
}

// SetClock replaces the time source.
func (s *TimerService) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Accounting returns the pause accounting mode in use.
func (s *TimerService) Accounting() timer.Accounting {
	return s.accounting
}

// clearDeleted drops a deleted client's timer. It runs under s.mu so a
// concurrent Tick cannot write the record back.
func (s *TimerService) clearDeleted(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.live, name)
	return s.storage.ClearTimer(name)
}

// load returns the timer for name. A cached timer is reused unless the
// stored record has changed underneath it.
func (s *TimerService) load(name string) (*timer.Timer, error) {
	state, err := s.storage.LoadTimer(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timer: %w", err)
	}

	if cached, ok := s.live[name]; ok && sameRecord(cached.State(), state) {
		return cached, nil
	}

	var t *timer.Timer
	if state == nil {
		t = timer.New(s.accounting)
	} else {
		t = timer.FromState(*state, s.accounting)
	}
	s.live[name] = t
	return t, nil
}

func sameRecord(a timer.State, b *timer.State) bool {
	if b == nil || b.StartTime == nil {
		return a.StartTime == nil
	}
	if a.StartTime == nil {
		return false
	}
	return *a.StartTime == *b.StartTime && a.Paused == b.Paused && a.PausedTime == b.PausedTime
}

func (s *TimerService) save(name string, t *timer.Timer) error {
	if err := s.storage.SaveTimer(name, t.State()); err != nil {
		return fmt.Errorf("failed to save timer: %w", err)
	}
	return nil
}

// requireClient is called with s.mu held. Lock order is s.mu, then the
// registry lock.
func (s *TimerService) requireClient(name string) error {
	_, err := s.clients.Get(name)
	return err
}

func (s *TimerService) transition(name, op string, fn func(t *timer.Timer, now time.Time) error) (*TimerStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireClient(name); err != nil {
		return nil, err
	}

	t, err := s.load(name)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := fn(t, now); err != nil {
		return nil, err
	}
	if err := s.save(name, t); err != nil {
		return nil, err
	}
	s.logger.Debug("timer "+op, "client", name, "phase", t.Phase())
	status := statusOf(name, t, now)
	return &status, nil
}

// Start starts the client's timer.
func (s *TimerService) Start(name string) (*TimerStatus, error) {
	return s.transition(name, "started", (*timer.Timer).Start)
}

// Pause pauses the client's running timer.
func (s *TimerService) Pause(name string) (*TimerStatus, error) {
	return s.transition(name, "paused", (*timer.Timer).Pause)
}

// Resume resumes the client's paused timer.
func (s *TimerService) Resume(name string) (*TimerStatus, error) {
	return s.transition(name, "resumed", (*timer.Timer).Resume)
}

// Stop ends the client's timer and records the worked whole minutes as a
// pending entry.
func (s *TimerService) Stop(name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireClient(name); err != nil {
		return 0, err
	}

	t, err := s.load(name)
	if err != nil {
		return 0, err
	}
	if t.Phase() == timer.PhaseIdle {
		return 0, timer.ErrNotRunning
	}

	// Stop a copy so a failed registry write leaves the timer intact.
	stopped := timer.FromState(t.State(), s.accounting)
	minutes, err := stopped.Stop(s.now())
	if err != nil {
		return 0, err
	}
	if err := s.clients.addPending(name, float64(minutes)); err != nil {
		return 0, fmt.Errorf("failed to record pending time: %w", err)
	}
	if err := s.storage.ClearTimer(name); err != nil {
		return 0, fmt.Errorf("failed to clear timer: %w", err)
	}
	delete(s.live, name)
	s.logger.Debug("timer stopped", "client", name, "minutes", minutes)
	return minutes, nil
}

// Status returns the client's timer state.
func (s *TimerService) Status(name string) (*TimerStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireClient(name); err != nil {
		return nil, err
	}

	t, err := s.load(name)
	if err != nil {
		return nil, err
	}
	status := statusOf(name, t, s.now())
	return &status, nil
}

// Active returns the status of every running or paused timer, sorted by
// client name.
func (s *TimerService) Active() ([]TimerStatus, error) {
	return s.observe(false)
}

// Tick is the periodic recompute: it observes every running or paused timer,
// persists the ones whose paused time changed and returns their statuses.
func (s *TimerService) Tick() ([]TimerStatus, error) {
	return s.observe(true)
}

func (s *TimerService) observe(tick bool) ([]TimerStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.clients.List()
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(clients))
	for _, c := range clients {
		known[c.Name] = true
	}

	names, err := s.storage.TimerNames()
	if err != nil {
		return nil, err
	}

	now := s.now()
	statuses := []TimerStatus{}
	for _, name := range names {
		if !known[name] {
			s.logger.Warn("timer without client", "client", name)
			continue
		}
		t, err := s.load(name)
		if err != nil {
			if errors.Is(err, storage.ErrMalformed) {
				s.logger.Warn("skipping malformed timer", "client", name, "err", err)
				continue
			}
			return nil, err
		}
		if t.Phase() == timer.PhaseIdle {
			continue
		}
		if tick {
			changed := t.Observe(now)
			if changed || s.accounting == timer.Persistent {
				if err := s.save(name, t); err != nil {
					return nil, err
				}
			}
		}
		statuses = append(statuses, statusOf(name, t, now))
	}
	return statuses, nil
}

func statusOf(name string, t *timer.Timer, now time.Time) TimerStatus {
	state := t.State()
	return TimerStatus{
		Client:     name,
		Phase:      t.Phase(),
		StartedAt:  state.StartedAt(),
		Elapsed:    t.Elapsed(now),
		PausedTime: t.PausedTime(),
	}
}
