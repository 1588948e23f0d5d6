// Package worker synchronizes locally stored workouts to the configured
// sheets target, driven by AMQP messages with a periodic backfill pass for
// anything the queue missed.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"setlog/internal/amqp"
	"setlog/internal/core"
	"setlog/internal/sheets"
	"setlog/internal/storage"
)

type SyncWorker struct {
	storage   *storage.SQLiteRepository
	appender  sheets.RowAppender
	deleter   sheets.RowDeleter
	batchSize int
}

func NewSyncWorker(storage *storage.SQLiteRepository, appender sheets.RowAppender, deleter sheets.RowDeleter, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		appender:  appender,
		deleter:   deleter,
		batchSize: batchSize,
	}
}

// HandleEnvelope dispatches a queue message to the matching handler.
func (w *SyncWorker) HandleEnvelope(ctx context.Context, env *amqp.Envelope) error {
	switch env.Kind {
	case amqp.KindSync:
		if env.Sync == nil {
			return fmt.Errorf("sync envelope without payload")
		}
		return w.HandleSyncMessage(ctx, env.Sync)
	case amqp.KindDelete:
		if env.Delete == nil {
			return fmt.Errorf("delete envelope without payload")
		}
		return w.HandleDeleteMessage(ctx, env.Delete)
	default:
		return fmt.Errorf("unknown message kind: %q", env.Kind)
	}
}

// HandleSyncMessage processes a single workout sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.WorkoutSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"id", msg.ID,
		"version", msg.Version)

	workout, err := w.storage.GetWorkout(ctx, msg.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Deleted locally before the sync ran; nothing to push.
			slog.WarnContext(ctx, "Workout gone before sync, dropping message", "id", msg.ID)
			return nil
		}
		return fmt.Errorf("get workout from storage: %w", err)
	}

	if err := w.syncWorkoutToSheets(ctx, msg.ID, workout); err != nil {
		return fmt.Errorf("sync workout to sheets: %w", err)
	}

	return nil
}

// HandleDeleteMessage processes a single workout delete message from AMQP.
// The message carries the full entry data because the sheets target locates
// rows by content, not by ID.
func (w *SyncWorker) HandleDeleteMessage(ctx context.Context, msg *amqp.WorkoutDeleteMessage) error {
	slog.InfoContext(ctx, "Processing delete message", "id", msg.ID)

	if w.deleter == nil {
		slog.WarnContext(ctx, "No row deleter configured, skipping remote deletion",
			"id", msg.ID)
		return nil
	}

	workout := core.Workout{
		ID:        msg.ID,
		Exercise:  msg.Exercise,
		Sets:      msg.Sets,
		Reps:      msg.Reps,
		WeightKg:  msg.WeightKg,
		CreatedAt: msg.CreatedAt,
	}

	if err := w.deleter.DeleteByData(ctx, workout); err != nil {
		slog.ErrorContext(ctx, "Failed to delete workout row",
			"id", msg.ID,
			"error", err,
			"timestamp", msg.Timestamp)
		return fmt.Errorf("delete workout row: %w", err)
	}

	slog.InfoContext(ctx, "Deleted workout row", "id", msg.ID)
	return nil
}

// ProcessPendingWorkouts syncs any workouts that haven't been synced yet.
// This is a backup mechanism in case AMQP messages are lost.
func (w *SyncWorker) ProcessPendingWorkouts(ctx context.Context) error {
	pending, err := w.storage.PendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending workouts: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending workouts", "count", len(pending))

	for _, p := range pending {
		workout, err := w.storage.GetWorkout(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get workout", "id", p.ID, "error", err)
			if err := w.storage.MarkSyncError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", err)
			}
			continue
		}

		if err := w.syncWorkoutToSheets(ctx, p.ID, workout); err != nil {
			slog.ErrorContext(ctx, "Failed to sync workout", "id", p.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupSyncCheck verifies and syncs any pending workouts at worker startup.
// This recovers from missed AMQP messages or worker downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.PendingSync(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending workouts for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending workouts found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending workouts on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0

	for _, p := range pending {
		workout, err := w.storage.GetWorkout(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get workout for startup sync",
				"id", p.ID, "error", err)
			if err := w.storage.MarkSyncError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", err)
			}
			errorCount++
			continue
		}

		if err := w.syncWorkoutToSheets(ctx, p.ID, workout); err != nil {
			slog.ErrorContext(ctx, "Failed to sync workout during startup",
				"id", p.ID, "error", err)
			errorCount++
			continue
		}

		successCount++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", successCount,
		"errors", errorCount)

	return nil
}

// syncWorkoutToSheets appends the workout to the sheets target and records
// the outcome on the local row.
func (w *SyncWorker) syncWorkoutToSheets(ctx context.Context, id int64, workout core.Workout) error {
	ref, err := w.appender.Append(ctx, workout)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", id, "error", markErr)
		}
		return fmt.Errorf("append workout row: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, id); err != nil {
		return fmt.Errorf("mark workout synced: %w", err)
	}

	slog.InfoContext(ctx, "Workout synced", "id", id, "row_ref", ref)
	return nil
}
