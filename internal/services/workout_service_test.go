package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"setlog/internal/amqp"
	"setlog/internal/core"
)

type fakeStore struct {
	workouts []core.Workout
	nextID   int64
	failNext bool
}

func (f *fakeStore) Append(_ context.Context, w core.Workout) (int64, error) {
	if err := w.Validate(); err != nil {
		return 0, err
	}
	if f.failNext {
		return 0, errors.New("disk full")
	}
	f.nextID++
	w.ID = f.nextID
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now()
	}
	f.workouts = append(f.workouts, w)
	return w.ID, nil
}

func (f *fakeStore) Remove(_ context.Context, id int64) (bool, error) {
	for i, w := range f.workouts {
		if w.ID == id {
			f.workouts = append(f.workouts[:i], f.workouts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ListAll(_ context.Context) ([]core.Workout, error) {
	out := make([]core.Workout, len(f.workouts))
	copy(out, f.workouts)
	return out, nil
}

type fakePublisher struct {
	syncs   []int64
	deletes []*amqp.WorkoutDeleteMessage
	err     error
}

func (f *fakePublisher) PublishWorkoutSync(_ context.Context, id, _ int64) error {
	if f.err != nil {
		return f.err
	}
	f.syncs = append(f.syncs, id)
	return nil
}

func (f *fakePublisher) PublishWorkoutDelete(_ context.Context, msg *amqp.WorkoutDeleteMessage) error {
	if f.err != nil {
		return f.err
	}
	f.deletes = append(f.deletes, msg)
	return nil
}

func TestLogWorkoutPublishesSync(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	pub := &fakePublisher{}
	svc := NewWorkoutService(store, pub)

	id, err := svc.LogWorkout(ctx, core.Workout{Exercise: "Squat"})
	if err != nil {
		t.Fatalf("log workout: %v", err)
	}
	if len(pub.syncs) != 1 || pub.syncs[0] != id {
		t.Fatalf("expected sync publish for id %d, got %v", id, pub.syncs)
	}
}

func TestLogWorkoutSurvivesDeadQueue(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewWorkoutService(store, pub)

	if _, err := svc.LogWorkout(ctx, core.Workout{Exercise: "Squat"}); err != nil {
		t.Fatalf("local save should not fail on publish error: %v", err)
	}
	if len(store.workouts) != 1 {
		t.Fatalf("entry not saved locally")
	}
}

func TestLogWorkoutRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	svc := NewWorkoutService(store, nil)

	if _, err := svc.LogWorkout(ctx, core.Workout{Exercise: "  "}); err == nil {
		t.Fatalf("expected validation error")
	}
	if len(store.workouts) != 0 {
		t.Fatalf("collection changed by rejected add")
	}
}

func TestDeleteWorkoutPublishesEntryData(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	pub := &fakePublisher{}
	svc := NewWorkoutService(store, pub)

	id, _ := svc.LogWorkout(ctx, core.Workout{Exercise: "Bench Press", Sets: 3, Reps: 8, WeightKg: 60})

	removed, err := svc.DeleteWorkout(ctx, id)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !removed {
		t.Fatalf("expected removed=true")
	}
	if len(store.workouts) != 0 {
		t.Fatalf("entry not removed")
	}
	if len(pub.deletes) != 1 {
		t.Fatalf("expected delete publish, got %d", len(pub.deletes))
	}
	msg := pub.deletes[0]
	if msg.Exercise != "Bench Press" || msg.Sets != 3 || msg.Reps != 8 || msg.WeightKg != 60 {
		t.Fatalf("delete message missing entry data: %+v", msg)
	}
}

func TestDeleteWorkoutUnknownIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	pub := &fakePublisher{}
	svc := NewWorkoutService(store, pub)

	removed, err := svc.DeleteWorkout(ctx, 42)
	if err != nil {
		t.Fatalf("unknown id should be a no-op, got %v", err)
	}
	if removed {
		t.Fatalf("expected removed=false for unknown id")
	}
	if len(pub.deletes) != 0 {
		t.Fatalf("no delete message expected for unknown id")
	}
}

func TestCloseWithNilComponents(t *testing.T) {
	svc := NewWorkoutService(&fakeStore{}, nil)
	if err := svc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
