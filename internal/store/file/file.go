// Package file persists the state snapshot as a JSON document on disk.
// This is the default backend: a single local file is the natural
// durable store for a single-device application.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"mawazna/internal/core"
)

type Store struct {
	path string
}

func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}
	return &Store{path: path}, nil
}

// Load reads and parses the snapshot file. A missing file is the
// first-run case and returns the default state without error; a
// corrupted payload also degrades to defaults, with a diagnostic log
// instead of a failure.
func (s *Store) Load(ctx context.Context) (core.AppState, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return core.DefaultState(), nil
		}
		return core.DefaultState(), fmt.Errorf("read state file: %w", err)
	}
	var st core.AppState
	if err := json.Unmarshal(raw, &st); err != nil {
		slog.WarnContext(ctx, "State file corrupted, falling back to defaults",
			"path", s.path, "error", err)
		return core.DefaultState(), nil
	}
	normalize(&st)
	return st, nil
}

// Save serializes the whole snapshot and replaces the file atomically
// (temp file + rename) so a crash mid-write never leaves a torn state.
func (s *Store) Save(ctx context.Context, st core.AppState) error {
	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// normalize keeps nil collections out of loaded snapshots so that
// handlers and templates can range without nil checks.
func normalize(st *core.AppState) {
	if st.DailyRecords == nil {
		st.DailyRecords = []core.DailyRecord{}
	}
	if st.Clients == nil {
		st.Clients = []core.Client{}
	}
	for i := range st.Clients {
		if st.Clients[i].Transactions == nil {
			st.Clients[i].Transactions = []core.DebtTransaction{}
		}
	}
}
