package storage

import (
	"encoding/json"
	"strings"

	"github.com/xolan/clientclock/internal/timer"
)

// Problem describes a stored value that failed to decode.
type Problem struct {
	Key   string // Store key
	Error string // Decode error
}

// Health summarises the state of the store.
type Health struct {
	TotalKeys    int       // Number of keys in the store
	Clients      int       // Clients in the registry
	Timers       int       // Timer records that decode
	OrphanTimers []string  // Timer records with no matching client
	Problems     []Problem // Values that do not decode
}

// Healthy reports whether no problems or orphans were found.
func (h Health) Healthy() bool {
	return len(h.Problems) == 0 && len(h.OrphanTimers) == 0
}

// Validate inspects every key and reports what it finds. It never modifies
// the store.
func (s *Storage) Validate() (Health, error) {
	health := Health{
		OrphanTimers: []string{},
		Problems:     []Problem{},
	}

	keys, err := s.store.Keys()
	if err != nil {
		return health, err
	}
	health.TotalKeys = len(keys)

	known := map[string]bool{}
	registryOK := false
	if raw, ok, err := s.store.Get(ClientsKey); err != nil {
		return health, err
	} else if ok {
		clients, err := decodeClients(raw)
		if err != nil {
			health.Problems = append(health.Problems, Problem{Key: ClientsKey, Error: err.Error()})
		} else {
			registryOK = true
			health.Clients = len(clients)
			for name := range clients {
				known[name] = true
			}
		}
	} else {
		registryOK = true
	}

	for _, k := range keys {
		name, ok := strings.CutSuffix(k, TimerSuffix)
		if !ok || name == "" {
			continue
		}
		raw, _, err := s.store.Get(k)
		if err != nil {
			return health, err
		}
		var state timer.State
		if err := json.Unmarshal([]byte(raw), &state); err != nil {
			health.Problems = append(health.Problems, Problem{Key: k, Error: err.Error()})
			continue
		}
		health.Timers++
		if registryOK && !known[name] {
			health.OrphanTimers = append(health.OrphanTimers, name)
		}
	}

	return health, nil
}
