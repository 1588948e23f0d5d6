package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"setlog/internal/core"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "workouts.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestAppendAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	id1, err := s.Append(ctx, core.Workout{Exercise: "Squat", Sets: 3, Reps: 5, WeightKg: 80})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	id2, err := s.Append(ctx, core.Workout{Exercise: "Squat", Sets: 3, Reps: 5, WeightKg: 80})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(all))
	}
	if all[0].CreatedAt.IsZero() || all[1].CreatedAt.IsZero() {
		t.Fatalf("expected createdAt to be stamped")
	}
}

func TestAppendRejectsBlankExercise(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	for _, name := range []string{"", "   ", "\t"} {
		if _, err := s.Append(ctx, core.Workout{Exercise: name}); err == nil {
			t.Fatalf("expected validation error for %q", name)
		}
	}

	all, _ := s.ListAll(ctx)
	if len(all) != 0 {
		t.Fatalf("collection changed by rejected append: %d entries", len(all))
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	id, _ := s.Append(ctx, core.Workout{Exercise: "Bench Press"})
	keep, _ := s.Append(ctx, core.Workout{Exercise: "Row"})

	removed, err := s.Remove(ctx, id)
	if err != nil || !removed {
		t.Fatalf("remove = %v, %v; want true, nil", removed, err)
	}

	all, _ := s.ListAll(ctx)
	if len(all) != 1 || all[0].ID != keep {
		t.Fatalf("unexpected entries after remove: %+v", all)
	}

	// Removing again is an idempotent no-op.
	removed, err = s.Remove(ctx, id)
	if err != nil || removed {
		t.Fatalf("second remove = %v, %v; want false, nil", removed, err)
	}
	all, _ = s.ListAll(ctx)
	if len(all) != 1 {
		t.Fatalf("collection changed by no-op remove")
	}
}

func TestRoundTripPreservesIDs(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "workouts.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// Same label and values, added at different times: IDs must stay distinct.
	id1, _ := s.Append(ctx, core.Workout{Exercise: "Deadlift", Sets: 1, Reps: 5, WeightKg: 120, CreatedAt: time.Now().Add(-time.Hour)})
	id2, _ := s.Append(ctx, core.Workout{Exercise: "Deadlift", Sets: 1, Reps: 5, WeightKg: 120})

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	all, _ := reopened.ListAll(ctx)
	if len(all) != 2 || all[0].ID != id1 || all[1].ID != id2 {
		t.Fatalf("round trip lost ids: %+v", all)
	}

	// The counter must not reuse IDs after a reload.
	id3, _ := reopened.Append(ctx, core.Workout{Exercise: "Deadlift"})
	if id3 == id1 || id3 == id2 {
		t.Fatalf("id reused after reload: %d", id3)
	}
}

func TestOpenCorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workouts.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	all, _ := s.ListAll(context.Background())
	if len(all) != 0 {
		t.Fatalf("expected empty store, got %d entries", len(all))
	}
	if _, err := os.Stat(path + ".corrupt"); err != nil {
		t.Fatalf("expected corrupt backup file: %v", err)
	}
}
