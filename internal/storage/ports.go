package storage

import (
	"context"

	"setlog/internal/core"
)

// Ports consumed by the HTTP layer. Both the sqlite repository and the
// file store satisfy them.
type (
	// WorkoutWriter appends a new entry and returns its assigned ID.
	WorkoutWriter interface {
		Append(ctx context.Context, w core.Workout) (int64, error)
	}

	// WorkoutRemover deletes an entry by ID. Removing an unknown ID is a
	// no-op; removed reports whether anything was deleted.
	WorkoutRemover interface {
		Remove(ctx context.Context, id int64) (removed bool, err error)
	}

	// WorkoutLister returns all live entries in insertion order.
	WorkoutLister interface {
		ListAll(ctx context.Context) ([]core.Workout, error)
	}
)
