// Package services orchestrates workout operations across the local store
// and the optional AMQP sync pipeline.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"setlog/internal/amqp"
	"setlog/internal/core"
	"setlog/internal/storage"
)

// Store is the local persistence a WorkoutService drives. Both the sqlite
// repository and the file store satisfy it.
type Store interface {
	storage.WorkoutWriter
	storage.WorkoutRemover
	storage.WorkoutLister
}

// Getter is optionally implemented by stores that can fetch one entry
// directly (the sqlite repository does).
type Getter interface {
	GetWorkout(ctx context.Context, id int64) (core.Workout, error)
}

// Publisher emits sync and delete messages for the worker. *amqp.Client
// implements it; it is nil when sync is not configured.
type Publisher interface {
	PublishWorkoutSync(ctx context.Context, id, version int64) error
	PublishWorkoutDelete(ctx context.Context, msg *amqp.WorkoutDeleteMessage) error
}

type WorkoutService struct {
	store     Store
	publisher Publisher
}

func NewWorkoutService(store Store, publisher Publisher) *WorkoutService {
	return &WorkoutService{store: store, publisher: publisher}
}

// LogWorkout saves an entry locally first, then publishes a sync message
// best-effort. A dead queue never fails the request; the entry is safe on
// disk and the worker's backfill pass catches up later.
func (s *WorkoutService) LogWorkout(ctx context.Context, w core.Workout) (int64, error) {
	id, err := s.store.Append(ctx, w)
	if err != nil {
		return 0, fmt.Errorf("save workout: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishWorkoutSync(ctx, id, 1); err != nil {
			slog.ErrorContext(ctx, "Failed to publish sync message",
				"id", id, "error", err)
		}
	}

	return id, nil
}

// DeleteWorkout removes an entry locally and propagates the deletion to the
// sync target. Unknown IDs are a no-op and report removed=false.
func (s *WorkoutService) DeleteWorkout(ctx context.Context, id int64) (bool, error) {
	// Capture the entry data before it goes; the sheets target locates
	// rows by content.
	var entry core.Workout
	var haveEntry bool
	if s.publisher != nil {
		entry, haveEntry = s.lookup(ctx, id)
	}

	removed, err := s.store.Remove(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete workout: %w", err)
	}
	if !removed {
		return false, nil
	}

	if s.publisher != nil && haveEntry {
		msg := &amqp.WorkoutDeleteMessage{
			ID:        entry.ID,
			Exercise:  entry.Exercise,
			Sets:      entry.Sets,
			Reps:      entry.Reps,
			WeightKg:  entry.WeightKg,
			CreatedAt: entry.CreatedAt,
		}
		if err := s.publisher.PublishWorkoutDelete(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "Failed to publish delete message",
				"id", id, "error", err)
		}
	}

	return true, nil
}

func (s *WorkoutService) lookup(ctx context.Context, id int64) (core.Workout, bool) {
	if g, ok := s.store.(Getter); ok {
		w, err := g.GetWorkout(ctx, id)
		if err != nil {
			return core.Workout{}, false
		}
		return w, true
	}
	all, err := s.store.ListAll(ctx)
	if err != nil {
		return core.Workout{}, false
	}
	for _, w := range all {
		if w.ID == id {
			return w, true
		}
	}
	return core.Workout{}, false
}

// Close releases the store and the publisher, whichever are closable.
func (s *WorkoutService) Close() error {
	var errs []error

	if c, ok := s.store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if c, ok := s.publisher.(io.Closer); ok && c != nil {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close workout service: %v", errs)
	}
	return nil
}
