// Package storage maps the client registry and per-client timers onto a
// string key-value store.
//
// Layout:
//
//	"stored-clients"  -> {"clients": {"<name>": Client}}
//	"<name>-timer"    -> {"startTime": ms|null, "paused": bool, "pausedTime": ms}
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xolan/clientclock/internal/client"
	"github.com/xolan/clientclock/internal/kv"
	"github.com/xolan/clientclock/internal/timer"
)

const (
	// ClientsKey holds the whole registry.
	ClientsKey = "stored-clients"
	// TimerSuffix is appended to a client name to form its timer key.
	TimerSuffix = "-timer"
)

// ErrMalformed is returned when a stored value does not decode. The stored
// value is left untouched.
var ErrMalformed = errors.New("malformed stored data")

// TimerKey returns the key of a client's timer record.
func TimerKey(name string) string {
	return name + TimerSuffix
}

type registry struct {
	Clients map[string]client.Client `json:"clients"`
}

// Storage reads and writes domain records through a kv.Store.
type Storage struct {
	store kv.Store
}

// New wraps store.
func New(store kv.Store) *Storage {
	return &Storage{store: store}
}

// Store returns the underlying key-value store.
func (s *Storage) Store() kv.Store {
	return s.store
}

// InitialiseClients writes an empty registry if none exists yet.
func (s *Storage) InitialiseClients() error {
	_, ok, err := s.store.Get(ClientsKey)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return s.SaveClients(map[string]client.Client{})
}

// LoadClients returns the registry. A missing key reads as empty.
func (s *Storage) LoadClients() (map[string]client.Client, error) {
	raw, ok, err := s.store.Get(ClientsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]client.Client{}, nil
	}
	return decodeClients(raw)
}

func decodeClients(raw string) (map[string]client.Client, error) {
	var reg registry
	if err := json.Unmarshal([]byte(raw), &reg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, ClientsKey, err)
	}
	if reg.Clients == nil {
		return map[string]client.Client{}, nil
	}
	for name, c := range reg.Clients {
		if c.PotentialTimes == nil {
			c.PotentialTimes = []client.PendingTime{}
		}
		if c.Name == "" {
			c.Name = name
		}
		reg.Clients[name] = c
	}
	return reg.Clients, nil
}

// SaveClients replaces the stored registry.
func (s *Storage) SaveClients(clients map[string]client.Client) error {
	if clients == nil {
		clients = map[string]client.Client{}
	}
	data, err := json.Marshal(registry{Clients: clients})
	if err != nil {
		return err
	}
	return s.store.Set(ClientsKey, string(data))
}

// SaveTimer writes a client's timer record.
func (s *Storage) SaveTimer(name string, state timer.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.store.Set(TimerKey(name), string(data))
}

// LoadTimer returns a client's timer record, or nil when there is none.
func (s *Storage) LoadTimer(name string) (*timer.State, error) {
	raw, ok, err := s.store.Get(TimerKey(name))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var state timer.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, TimerKey(name), err)
	}
	return &state, nil
}

// ClearTimer removes a client's timer record. Clearing a missing record is
// not an error.
func (s *Storage) ClearTimer(name string) error {
	return s.store.Delete(TimerKey(name))
}

// TimerNames returns the client names that have a stored timer record,
// sorted.
func (s *Storage) TimerNames() ([]string, error) {
	keys, err := s.store.Keys()
	if err != nil {
		return nil, err
	}
	var names []string
	for _, k := range keys {
		if name, ok := strings.CutSuffix(k, TimerSuffix); ok && name != "" {
			names = append(names, name)
		}
	}
	// Key order differs from name order when one name prefixes another
	sort.Strings(names)
	return names, nil
}

// Backup snapshots the store if it supports backups. It reports whether a
// backup was taken.
func (s *Storage) Backup() (bool, error) {
	b, ok := s.store.(kv.Backuper)
	if !ok {
		return false, nil
	}
	if err := b.Backup(); err != nil {
		return false, err
	}
	return true, nil
}
