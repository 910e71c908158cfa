// Package sqlite persists the snapshot in a single-row SQLite table.
// The snapshot stays one indivisible unit: save upserts the serialized
// state, load reads it back, and schema changes go through migrations.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"mawazna/internal/core"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads the stored snapshot. No row means first run; a payload
// that fails to parse degrades to the default state with a warning.
func (s *Store) Load(ctx context.Context) (core.AppState, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM app_state WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return core.DefaultState(), nil
	}
	if err != nil {
		return core.DefaultState(), fmt.Errorf("read snapshot row: %w", err)
	}

	var st core.AppState
	if err := json.Unmarshal([]byte(payload), &st); err != nil {
		slog.WarnContext(ctx, "Stored snapshot corrupted, falling back to defaults", "error", err)
		return core.DefaultState(), nil
	}
	if st.DailyRecords == nil {
		st.DailyRecords = []core.DailyRecord{}
	}
	if st.Clients == nil {
		st.Clients = []core.Client{}
	}
	return st, nil
}

// Save upserts the serialized snapshot into the single state row.
func (s *Store) Save(ctx context.Context, st core.AppState) error {
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO app_state (id, payload, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write snapshot row: %w", err)
	}
	return nil
}
