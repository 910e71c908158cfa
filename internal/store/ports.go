// Package store defines the persistence ports for AppState snapshots.
package store

import (
	"context"

	"mawazna/internal/core"
)

type (
	// Loader reads the previously persisted snapshot. A Load error is
	// advisory: callers fall back to core.DefaultState and keep going,
	// never crash (corrupted storage degrades to defaults).
	Loader interface {
		Load(ctx context.Context) (core.AppState, error)
	}

	// Saver writes the entire snapshot, overwriting any prior value.
	// Called after every state transition; there is no partial persistence.
	Saver interface {
		Save(ctx context.Context, s core.AppState) error
	}

	// Store is the full persistence adapter contract.
	Store interface {
		Loader
		Saver
	}
)
