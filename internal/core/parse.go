// Package core holds the workout domain model, input parsing and the
// day-grouping logic that orders the log for display.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseCount parses a non-negative integer form field. An empty string is
// treated as zero, matching the form's optional numeric inputs.
func ParseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidCount
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrInvalidCount
	}
	return n, nil
}

// ParseWeight parses a non-negative decimal weight in kilograms.
//
// It accepts both dot (72.5) and comma (72,5) decimal separators. An empty
// string is treated as zero. Signs are rejected; weights are never negative.
func ParseWeight(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidWeight
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidWeight
	}
	for _, part := range parts {
		for _, r := range part {
			if !unicode.IsDigit(r) {
				return 0, ErrInvalidWeight
			}
		}
	}
	if parts[0] == "" && (len(parts) == 1 || parts[1] == "") {
		return 0, ErrInvalidWeight
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidWeight
	}
	return v, nil
}
