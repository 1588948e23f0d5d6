package http

import (
	"net/url"
	"testing"
)

func TestParseWorkoutForm(t *testing.T) {
	form := url.Values{
		"exercise": {"  Bench Press "},
		"sets":     {"3"},
		"reps":     {"8"},
		"weight":   {"62,5"},
	}
	w, err := ParseWorkoutForm(form)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if w.Exercise != "Bench Press" {
		t.Errorf("exercise = %q, want trimmed name", w.Exercise)
	}
	if w.Sets != 3 || w.Reps != 8 {
		t.Errorf("sets/reps = %d/%d", w.Sets, w.Reps)
	}
	if w.WeightKg != 62.5 {
		t.Errorf("weight = %v, want 62.5", w.WeightKg)
	}
}

func TestParseWorkoutFormEmptyNumbers(t *testing.T) {
	w, err := ParseWorkoutForm(url.Values{"exercise": {"Plank"}})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if w.Sets != 0 || w.Reps != 0 || w.WeightKg != 0 {
		t.Errorf("empty numeric fields should default to zero: %+v", w)
	}
}

func TestParseWorkoutFormRejectsGarbage(t *testing.T) {
	cases := []url.Values{
		{"exercise": {"x"}, "sets": {"three"}},
		{"exercise": {"x"}, "reps": {"-2"}},
		{"exercise": {"x"}, "weight": {"1.2.3"}},
		{"exercise": {"x"}, "weight": {"+5"}},
	}
	for i, form := range cases {
		if _, err := ParseWorkoutForm(form); err == nil {
			t.Errorf("case %d: expected parse error for %v", i, form)
		}
	}
}

func TestParseIDFromPath(t *testing.T) {
	tests := []struct {
		path   string
		wantID int64
		wantOK bool
	}{
		{"/workouts/42/delete", 42, true},
		{"/workouts/1/delete", 1, true},
		{"/workouts//delete", 0, false},
		{"/workouts/abc/delete", 0, false},
		{"/workouts/-1/delete", 0, false},
		{"/workouts/0/delete", 0, false},
		{"/workouts/1/2/delete", 0, false},
		{"/other/1/delete", 0, false},
	}
	for _, tt := range tests {
		id, ok := ParseIDFromPath(tt.path, "/workouts/", "/delete")
		if id != tt.wantID || ok != tt.wantOK {
			t.Errorf("ParseIDFromPath(%q) = (%d, %v), want (%d, %v)",
				tt.path, id, ok, tt.wantID, tt.wantOK)
		}
	}
}
