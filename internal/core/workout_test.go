package core

import (
	"strings"
	"testing"
	"time"
)

func TestWorkoutValidate(t *testing.T) {
	good := Workout{
		Exercise:  "Bench Press",
		Sets:      3,
		Reps:      8,
		WeightKg:  60,
		CreatedAt: time.Now(),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Zero measurements are allowed; the form leaves them at 0.
	bare := Workout{Exercise: "Plank", CreatedAt: time.Now()}
	if err := bare.Validate(); err != nil {
		t.Fatalf("expected ok for zero counts, got %v", err)
	}

	bads := []Workout{
		{Exercise: ""},
		{Exercise: "   "},
		{Exercise: "\t\n"},
		{Exercise: strings.Repeat("x", 101)},
		{Exercise: "Squat", Sets: -1},
		{Exercise: "Squat", Reps: -1},
		{Exercise: "Squat", WeightKg: -0.5},
	}
	for i, w := range bads {
		if err := w.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestWorkoutValidateBlankExercise(t *testing.T) {
	w := Workout{Exercise: "  "}
	if err := w.Validate(); err != ErrEmptyExercise {
		t.Fatalf("expected ErrEmptyExercise, got %v", err)
	}
}
