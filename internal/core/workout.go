package core

import (
	"errors"
	"strings"
	"time"
)

// Workout is a single logged entry: one exercise with its measurements.
// Entries are immutable after creation; the only lifecycle transition is
// deletion. The ID is assigned by the store, never by the caller.
type Workout struct {
	ID        int64     `json:"id"`
	Exercise  string    `json:"exercise"`
	Sets      int       `json:"sets"`
	Reps      int       `json:"reps"`
	WeightKg  float64   `json:"weight"`
	CreatedAt time.Time `json:"createdAt"`
}

var (
	ErrEmptyExercise   = errors.New("empty exercise name")
	ErrNegativeCount   = errors.New("negative count")
	ErrNegativeWeight  = errors.New("negative weight")
	ErrInvalidCount    = errors.New("invalid count")
	ErrInvalidWeight   = errors.New("invalid weight")
	ErrExerciseTooLong = errors.New("exercise name too long (max 100 characters)")
)

func (w Workout) Validate() error {
	if len(strings.TrimSpace(w.Exercise)) == 0 {
		return ErrEmptyExercise
	}
	if len(w.Exercise) > 100 {
		return ErrExerciseTooLong
	}
	if w.Sets < 0 || w.Reps < 0 {
		return ErrNegativeCount
	}
	if w.WeightKg < 0 {
		return ErrNegativeWeight
	}
	return nil
}
