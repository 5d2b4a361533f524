package state

import (
	"fmt"
	"sync"
)

type Phase int

const (
	BOOTING Phase = iota
	READY
	STOPPING
)

func (p Phase) String() string {
	switch p {
	case BOOTING:
		return "booting"
	case READY:
		return "ready"
	case STOPPING:
		return "stopping"
	}
	return "unknown"
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Phase) UnmarshalText(text []byte) error {
	for _, candidate := range []Phase{BOOTING, READY, STOPPING} {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

type NetworkInfo struct {
	IP  string `json:"ip"`
	URL string `json:"url"`
	// Advertised is set while the mDNS responder is running.
	Advertised bool `json:"advertised"`
}

type State struct {
	Phase   Phase       `json:"phase"`
	Network NetworkInfo `json:"network"`
	Clients int         `json:"clients"`
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Phase: BOOTING}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	store.state.Phase = phase
	store.mu.Unlock()
}

func (store *Store) UpdateNetwork(network NetworkInfo) {
	store.mu.Lock()
	store.state.Network = network
	store.mu.Unlock()
}

// AddClient adjusts the live event client count by delta and returns the new count.
func (store *Store) AddClient(delta int) int {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.state.Clients += delta
	if store.state.Clients < 0 {
		store.state.Clients = 0
	}
	return store.state.Clients
}
