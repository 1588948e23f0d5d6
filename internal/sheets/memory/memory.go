// Package memory is an in-memory sheets target used by tests and local
// runs without Google credentials.
package memory

import (
	"context"
	"fmt"
	"sync"

	"setlog/internal/core"
)

type Target struct {
	mu   sync.Mutex
	rows []core.Workout
}

func New() *Target {
	return &Target{}
}

// Append implements sheets.RowAppender.
func (t *Target) Append(_ context.Context, w core.Workout) (string, error) {
	if err := w.Validate(); err != nil {
		return "", err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, w)
	return fmt.Sprintf("mem:%d", len(t.rows)), nil
}

// DeleteByData implements sheets.RowDeleter. Missing rows are a no-op.
func (t *Target) DeleteByData(_ context.Context, w core.Workout) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, row := range t.rows {
		if row.Exercise == w.Exercise &&
			row.Sets == w.Sets && row.Reps == w.Reps &&
			row.WeightKg == w.WeightKg &&
			row.CreatedAt.Equal(w.CreatedAt) {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

// Rows returns a copy of the current rows.
func (t *Target) Rows() []core.Workout {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]core.Workout, len(t.rows))
	copy(out, t.rows)
	return out
}
