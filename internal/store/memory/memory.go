// Package memory keeps the snapshot in process memory. Used by tests
// and as a throwaway backend when no durable path is configured.
package memory

import (
	"context"
	"sync"

	"mawazna/internal/core"
)

type Store struct {
	mu     sync.Mutex
	state  core.AppState
	seeded bool
}

func New() *Store {
	return &Store{}
}

// Seed primes the store with an initial snapshot, as if it had been
// persisted by a previous session.
func Seed(s core.AppState) *Store {
	return &Store{state: s.Clone(), seeded: true}
}

func (m *Store) Load(_ context.Context) (core.AppState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.seeded {
		return core.DefaultState(), nil
	}
	return m.state.Clone(), nil
}

func (m *Store) Save(_ context.Context, s core.AppState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s.Clone()
	m.seeded = true
	return nil
}
