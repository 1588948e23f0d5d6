// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request
// data: method guards, form parsing, and conversion of form values into a
// workout entry.

package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"setlog/internal/core"
)

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// ParseFormOrFail parses the request form and returns an error response on failure.
// Returns nil on success.
func ParseFormOrFail(r *http.Request) *HTMXResponseBuilder {
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Invalid request format")
	}
	return nil
}

// ParseWorkoutForm converts entry form values into a workout. Count and
// weight fields tolerate empty values; the exercise name is sanitized but
// not validated here, Validate handles that.
func ParseWorkoutForm(form url.Values) (core.Workout, error) {
	sets, err := core.ParseCount(form.Get("sets"))
	if err != nil {
		return core.Workout{}, err
	}
	reps, err := core.ParseCount(form.Get("reps"))
	if err != nil {
		return core.Workout{}, err
	}
	weight, err := core.ParseWeight(form.Get("weight"))
	if err != nil {
		return core.Workout{}, err
	}

	return core.Workout{
		Exercise: sanitizeInput(form.Get("exercise")),
		Sets:     sets,
		Reps:     reps,
		WeightKg: weight,
	}, nil
}

// ParseIDFromPath extracts the numeric entry ID from a path like
// /workouts/{id}/delete. Returns 0 and false when the path doesn't match.
func ParseIDFromPath(path, prefix, suffix string) (int64, bool) {
	if !strings.HasPrefix(path, prefix) {
		return 0, false
	}
	rest := strings.TrimPrefix(path, prefix)
	if suffix != "" {
		if !strings.HasSuffix(rest, suffix) {
			return 0, false
		}
		rest = strings.TrimSuffix(rest, suffix)
	}
	rest = strings.Trim(rest, "/")
	if rest == "" || strings.Contains(rest, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
