package worker

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"setlog/internal/amqp"
	"setlog/internal/core"
	"setlog/internal/sheets/memory"
	"setlog/internal/storage"
)

func newTestRepo(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestHandleSyncMessage(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	target := memory.New()
	w := NewSyncWorker(repo, target, target, 10)

	id, err := repo.Append(ctx, core.Workout{Exercise: "Bench Press", Sets: 3, Reps: 8, WeightKg: 60})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	env := &amqp.Envelope{Kind: amqp.KindSync, Sync: &amqp.WorkoutSyncMessage{ID: id, Version: 1}}
	if err := w.HandleEnvelope(ctx, env); err != nil {
		t.Fatalf("handle sync: %v", err)
	}

	if rows := target.Rows(); len(rows) != 1 || rows[0].Exercise != "Bench Press" {
		t.Fatalf("expected one synced row, got %+v", rows)
	}

	pending, err := repo.PendingSync(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending rows after sync, got %d", len(pending))
	}
}

func TestHandleSyncMessageMissingWorkoutIsDropped(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	target := memory.New()
	w := NewSyncWorker(repo, target, target, 10)

	msg := &amqp.WorkoutSyncMessage{ID: 999, Version: 1}
	if err := w.HandleSyncMessage(ctx, msg); err != nil {
		t.Fatalf("missing workout should not requeue, got %v", err)
	}
	if len(target.Rows()) != 0 {
		t.Fatalf("nothing should be synced for a missing workout")
	}
}

func TestHandleDeleteMessage(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	target := memory.New()
	w := NewSyncWorker(repo, target, target, 10)

	created := time.Date(2026, time.March, 9, 18, 30, 0, 0, time.UTC)
	entry := core.Workout{Exercise: "Squat", Sets: 5, Reps: 5, WeightKg: 100, CreatedAt: created}
	if _, err := target.Append(ctx, entry); err != nil {
		t.Fatalf("seed target: %v", err)
	}

	msg := &amqp.WorkoutDeleteMessage{
		ID: 1, Exercise: "Squat", Sets: 5, Reps: 5, WeightKg: 100, CreatedAt: created,
	}
	if err := w.HandleDeleteMessage(ctx, msg); err != nil {
		t.Fatalf("handle delete: %v", err)
	}
	if len(target.Rows()) != 0 {
		t.Fatalf("row not deleted from target")
	}

	// Repeat delete is an idempotent no-op
	if err := w.HandleDeleteMessage(ctx, msg); err != nil {
		t.Fatalf("repeat delete: %v", err)
	}
}

func TestHandleDeleteMessageWithoutDeleter(t *testing.T) {
	repo := newTestRepo(t)
	target := memory.New()
	w := NewSyncWorker(repo, target, nil, 10)

	msg := &amqp.WorkoutDeleteMessage{ID: 1, Exercise: "Row"}
	if err := w.HandleDeleteMessage(context.Background(), msg); err != nil {
		t.Fatalf("missing deleter should be skipped, got %v", err)
	}
}

func TestProcessPendingWorkouts(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	target := memory.New()
	w := NewSyncWorker(repo, target, target, 10)

	for _, name := range []string{"Deadlift", "Press", "Pull Up"} {
		if _, err := repo.Append(ctx, core.Workout{Exercise: name, Sets: 3, Reps: 5, WeightKg: 50}); err != nil {
			t.Fatalf("append %s: %v", name, err)
		}
	}

	if err := w.ProcessPendingWorkouts(ctx); err != nil {
		t.Fatalf("process pending: %v", err)
	}

	if len(target.Rows()) != 3 {
		t.Fatalf("expected 3 synced rows, got %d", len(target.Rows()))
	}

	pending, err := repo.PendingSync(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending rows, got %d", len(pending))
	}
}

func TestStartupSyncCheckEmpty(t *testing.T) {
	repo := newTestRepo(t)
	target := memory.New()
	w := NewSyncWorker(repo, target, target, 10)

	if err := w.StartupSyncCheck(context.Background()); err != nil {
		t.Fatalf("startup check on empty store: %v", err)
	}
}

func TestHandleEnvelopeUnknownKind(t *testing.T) {
	repo := newTestRepo(t)
	target := memory.New()
	w := NewSyncWorker(repo, target, target, 10)

	env := &amqp.Envelope{Kind: "bogus"}
	if err := w.HandleEnvelope(context.Background(), env); err == nil {
		t.Fatalf("expected error for unknown message kind")
	}
}
