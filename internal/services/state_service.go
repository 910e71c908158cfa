// Package services wires the pure state reducers to the persistence
// adapter: every mutation applies a reducer to the current snapshot and
// writes the result before control returns to the caller.
package services

import (
	"context"
	"fmt"
	"sync"

	"mawazna/internal/core"
	applog "mawazna/internal/log"
	"mawazna/internal/state"
	"mawazna/internal/store"
)

// StateService owns the authoritative in-memory snapshot. Mutations are
// serialized by a single mutex; mutation + persist is one unit of work.
type StateService struct {
	mu      sync.Mutex
	current core.AppState
	store   store.Store
	logger  *applog.Logger
}

func NewStateService(st store.Store, logger *applog.Logger) *StateService {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &StateService{
		current: core.DefaultState(),
		store:   st,
		logger:  logger.WithComponent("state"),
	}
}

// Load primes the snapshot from storage. Storage failures are not
// fatal: the service falls back to the default state and logs the
// reason, so a corrupted store degrades instead of crashing.
func (s *StateService) Load(ctx context.Context) {
	st, err := s.store.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "State load failed, starting from defaults", "error", err)
		st = core.DefaultState()
	}
	s.mu.Lock()
	s.current = st
	s.mu.Unlock()
}

// Snapshot returns a deep copy of the current state. Callers may read
// and discard it freely; it shares nothing with the live snapshot.
func (s *StateService) Snapshot() core.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// apply swaps in the new snapshot and persists it. The in-memory
// snapshot stays authoritative even if the write fails; the error is
// reported so callers can surface a diagnostic.
func (s *StateService) apply(ctx context.Context, next core.AppState) error {
	s.current = next
	if err := s.store.Save(ctx, next); err != nil {
		s.logger.ErrorContext(ctx, "State save failed", "error", err)
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

func (s *StateService) Login(ctx context.Context, email, mobile string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(ctx, state.Login(s.current, email, mobile))
}

func (s *StateService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(ctx, state.Logout(s.current))
}

func (s *StateService) AddDailyRecord(ctx context.Context, r core.DailyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(ctx, state.AddDailyRecord(s.current, r))
}

func (s *StateService) DeleteDailyRecord(ctx context.Context, id string) (state.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, outcome := state.DeleteDailyRecord(s.current, id)
	if outcome == state.NotFound {
		s.logger.WarnContext(ctx, "Delete targeted unknown daily record", "id", id)
		return outcome, nil
	}
	return outcome, s.apply(ctx, next)
}

func (s *StateService) AddClient(ctx context.Context, c core.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(ctx, state.AddClient(s.current, c))
}

func (s *StateService) DeleteClient(ctx context.Context, id string) (state.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, outcome := state.DeleteClient(s.current, id)
	if outcome == state.NotFound {
		s.logger.WarnContext(ctx, "Delete targeted unknown client", "id", id)
		return outcome, nil
	}
	return outcome, s.apply(ctx, next)
}

func (s *StateService) AddDebtTransaction(ctx context.Context, clientID string, tx core.DebtTransaction) (state.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, outcome := state.AddDebtTransaction(s.current, clientID, tx)
	if outcome == state.NotFound {
		s.logger.WarnContext(ctx, "Transaction targeted unknown client",
			"client_id", clientID, "tx_id", tx.ID)
		return outcome, nil
	}
	return outcome, s.apply(ctx, next)
}

func (s *StateService) UpdateProfile(ctx context.Context, p core.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(ctx, state.UpdateProfile(s.current, p))
}

func (s *StateService) UpdateTemplates(ctx context.Context, t core.MessageTemplates) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(ctx, state.UpdateTemplates(s.current, t))
}
