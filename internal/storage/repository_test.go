package storage

import (
	"context"
	"path/filepath"
	"testing"

	"setlog/internal/core"
)

func openTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "setlog.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestAppendAndList(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	id1, err := repo.Append(ctx, core.Workout{Exercise: "Squat", Sets: 5, Reps: 5, WeightKg: 100})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	id2, err := repo.Append(ctx, core.Workout{Exercise: "Bench Press", Sets: 3, Reps: 8, WeightKg: 60})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if id1 == id2 {
		t.Fatalf("ids not unique: %d", id1)
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != id1 || all[1].ID != id2 {
		t.Fatalf("unexpected list order: %+v", all)
	}
	if all[0].Exercise != "Squat" || all[0].WeightKg != 100 {
		t.Fatalf("unexpected first entry: %+v", all[0])
	}
	if all[0].CreatedAt.IsZero() {
		t.Fatalf("createdAt not stamped")
	}
}

func TestAppendValidation(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	if _, err := repo.Append(ctx, core.Workout{Exercise: "  "}); err != core.ErrEmptyExercise {
		t.Fatalf("expected ErrEmptyExercise, got %v", err)
	}
	all, _ := repo.ListAll(ctx)
	if len(all) != 0 {
		t.Fatalf("rejected append changed collection")
	}
}

func TestRemoveSoftDelete(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	id, _ := repo.Append(ctx, core.Workout{Exercise: "Row"})

	removed, err := repo.Remove(ctx, id)
	if err != nil || !removed {
		t.Fatalf("remove = %v, %v; want true, nil", removed, err)
	}
	removed, err = repo.Remove(ctx, id)
	if err != nil || removed {
		t.Fatalf("second remove = %v, %v; want false, nil", removed, err)
	}
	removed, err = repo.Remove(ctx, 9999)
	if err != nil || removed {
		t.Fatalf("unknown id remove = %v, %v; want false, nil", removed, err)
	}

	all, _ := repo.ListAll(ctx)
	if len(all) != 0 {
		t.Fatalf("deleted entry still listed: %+v", all)
	}
	if _, err := repo.GetWorkout(ctx, id); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for deleted entry, got %v", err)
	}
}

func TestPendingSyncLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	id1, _ := repo.Append(ctx, core.Workout{Exercise: "Squat"})
	id2, _ := repo.Append(ctx, core.Workout{Exercise: "Press"})

	pending, err := repo.PendingSync(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 2 || pending[0].ID != id1 || pending[1].ID != id2 {
		t.Fatalf("unexpected pending set: %+v", pending)
	}

	if err := repo.MarkSynced(ctx, id1); err != nil {
		t.Fatalf("mark synced: %v", err)
	}
	if err := repo.MarkSyncError(ctx, id2); err != nil {
		t.Fatalf("mark sync error: %v", err)
	}

	pending, _ = repo.PendingSync(ctx, 10)
	if len(pending) != 0 {
		t.Fatalf("expected no pending entries, got %+v", pending)
	}
}
