package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/xolan/clientclock/internal/client"
	"github.com/xolan/clientclock/internal/storage"
)

// Registry errors
var (
	ErrEmptyName       = errors.New("client name cannot be empty")
	ErrClientExists    = errors.New("client already exists")
	ErrClientNotFound  = errors.New("client not found")
	ErrNegativeTime    = errors.New("time can only be added")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrCancelled       = errors.New("cancelled")
)

// Confirmation prompts shown before destructive operations.
const (
	DeletePrompt = "Are you sure you want to delete this client?"
	ClearPrompt  = "Are you sure you want to clear all timings?"
)

// Confirmer asks the user a yes/no question. A nil Confirmer always agrees.
type Confirmer func(prompt string) bool

func (c Confirmer) ask(prompt string) bool {
	if c == nil {
		return true
	}
	return c(prompt)
}

// ClientService manages the client registry. Every mutation is written
// through to storage before it returns.
type ClientService struct {
	mu      sync.Mutex
	storage *storage.Storage
	logger  *slog.Logger
	// clearTimer removes a deleted client's timer; the timer service
	// replaces it to serialise with its own writes.
	clearTimer func(name string) error
}

// NewClientService creates a new ClientService
func NewClientService(st *storage.Storage, logger *slog.Logger) *ClientService {
	s := &ClientService{storage: st, logger: logger}
	s.clearTimer = st.ClearTimer
	return s
}

func (s *ClientService) load() (map[string]client.Client, error) {
	clients, err := s.storage.LoadClients()
	if err != nil {
		return nil, fmt.Errorf("failed to load clients: %w", err)
	}
	return clients, nil
}

func (s *ClientService) save(clients map[string]client.Client) error {
	if err := s.storage.SaveClients(clients); err != nil {
		return fmt.Errorf("failed to save clients: %w", err)
	}
	return nil
}

// Add creates a client with no worked time. Adding an existing name fails
// with ErrClientExists and changes nothing.
func (s *ClientService) Add(name string) (client.Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return client.Client{}, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.load()
	if err != nil {
		return client.Client{}, err
	}
	if existing, ok := clients[name]; ok {
		return existing, ErrClientExists
	}

	c := client.New(name)
	clients[name] = c
	if err := s.save(clients); err != nil {
		return client.Client{}, err
	}
	s.logger.Debug("client added", "client", name)
	return c, nil
}

// Get returns one client.
func (s *ClientService) Get(name string) (client.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(name)
}

func (s *ClientService) get(name string) (client.Client, error) {
	clients, err := s.load()
	if err != nil {
		return client.Client{}, err
	}
	c, ok := clients[name]
	if !ok {
		return client.Client{}, fmt.Errorf("%w: %s", ErrClientNotFound, name)
	}
	return c, nil
}

// List returns all clients sorted by name.
func (s *ClientService) List() ([]client.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.load()
	if err != nil {
		return nil, err
	}
	list := make([]client.Client, 0, len(clients))
	for _, name := range client.SortedNames(clients) {
		list = append(list, clients[name])
	}
	return list, nil
}

// Delete removes a client and its timer after confirmation.
func (s *ClientService) Delete(name string, confirm Confirmer) error {
	if err := s.delete(name, confirm); err != nil {
		return err
	}
	// Outside s.mu: clearTimer may take the timer lock
	if err := s.clearTimer(name); err != nil {
		return fmt.Errorf("failed to clear timer: %w", err)
	}
	s.logger.Debug("client deleted", "client", name)
	return nil
}

func (s *ClientService) delete(name string, confirm Confirmer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := clients[name]; !ok {
		return fmt.Errorf("%w: %s", ErrClientNotFound, name)
	}
	if !confirm.ask(DeletePrompt) {
		return ErrCancelled
	}

	s.backup("delete")
	delete(clients, name)
	return s.save(clients)
}

// AddTime adds hours*60+minutes to the client's worked time.
func (s *ClientService) AddTime(name string, hours, minutes float64) (client.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addTime(name, hours, minutes)
}

func (s *ClientService) addTime(name string, hours, minutes float64) (client.Client, error) {
	if hours < 0 || minutes < 0 {
		return client.Client{}, ErrNegativeTime
	}

	clients, err := s.load()
	if err != nil {
		return client.Client{}, err
	}
	c, ok := clients[name]
	if !ok {
		return client.Client{}, fmt.Errorf("%w: %s", ErrClientNotFound, name)
	}

	c.TimeWorked += hours*60 + minutes
	clients[name] = c
	if err := s.save(clients); err != nil {
		return client.Client{}, err
	}
	s.logger.Debug("time added", "client", name, "hours", hours, "minutes", minutes)
	return c, nil
}

// ConfirmPending folds pending entry index (0-based) into the worked time
// and removes it. It returns the updated client and the minutes added.
func (s *ClientService) ConfirmPending(name string, index int) (client.Client, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.get(name)
	if err != nil {
		return client.Client{}, 0, err
	}
	if index < 0 || index >= len(c.PotentialTimes) {
		return client.Client{}, 0, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index+1)
	}

	m := c.PotentialTimes[index].Minutes
	hours, rem := client.SplitMinutes(m)
	if _, err := s.addTime(name, hours, rem); err != nil {
		return client.Client{}, 0, err
	}
	c, _, err = s.discard(name, index)
	if err != nil {
		return client.Client{}, 0, err
	}
	return c, m, nil
}

// DiscardPending removes pending entry index (0-based) without adding it.
func (s *ClientService) DiscardPending(name string, index int) (client.Client, client.PendingTime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discard(name, index)
}

func (s *ClientService) discard(name string, index int) (client.Client, client.PendingTime, error) {
	clients, err := s.load()
	if err != nil {
		return client.Client{}, client.PendingTime{}, err
	}
	c, ok := clients[name]
	if !ok {
		return client.Client{}, client.PendingTime{}, fmt.Errorf("%w: %s", ErrClientNotFound, name)
	}
	if index < 0 || index >= len(c.PotentialTimes) {
		return client.Client{}, client.PendingTime{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index+1)
	}

	removed := c.PotentialTimes[index]
	pending := make([]client.PendingTime, 0, len(c.PotentialTimes)-1)
	pending = append(pending, c.PotentialTimes[:index]...)
	pending = append(pending, c.PotentialTimes[index+1:]...)
	c.PotentialTimes = pending
	clients[name] = c

	if err := s.save(clients); err != nil {
		return client.Client{}, client.PendingTime{}, err
	}
	return c, removed, nil
}

// ClearAll resets every client's worked time to zero after confirmation.
// Pending entries are kept.
func (s *ClientService) ClearAll(confirm Confirmer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !confirm.ask(ClearPrompt) {
		return ErrCancelled
	}

	clients, err := s.load()
	if err != nil {
		return err
	}
	s.backup("clear")
	for name, c := range clients {
		c.TimeWorked = 0
		clients[name] = c
	}
	if err := s.save(clients); err != nil {
		return err
	}
	s.logger.Debug("all timings cleared", "clients", len(clients))
	return nil
}

// Summary returns one report line per client, sorted by name.
func (s *ClientService) Summary() (*SummaryResult, error) {
	list, err := s.List()
	if err != nil {
		return nil, err
	}

	result := &SummaryResult{Lines: make([]client.Summary, 0, len(list))}
	for _, c := range list {
		result.Lines = append(result.Lines, client.Summarize(c))
		result.TotalMinutes += c.TimeWorked
	}
	result.TotalHours = client.FormatHours(result.TotalMinutes)
	return result, nil
}

// addPending appends a completed timer run to the client's pending list.
func (s *ClientService) addPending(name string, minutes float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.load()
	if err != nil {
		return err
	}
	c, ok := clients[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrClientNotFound, name)
	}
	c.PotentialTimes = append(c.PotentialTimes, client.PendingTime{Minutes: minutes})
	clients[name] = c
	return s.save(clients)
}

func (s *ClientService) backup(op string) {
	took, err := s.storage.Backup()
	if err != nil {
		s.logger.Warn("backup failed", "op", op, "err", err)
		return
	}
	if took {
		s.logger.Debug("backup created", "op", op)
	}
}
