package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// formatWeight formats a weight in kilograms, trimming trailing zeros
// (e.g. "60 kg", "62.5 kg").
func formatWeight(kg float64) string {
	s := strconv.FormatFloat(kg, 'f', -1, 64)
	return s + " kg"
}

// formatSetsReps renders the sets-by-reps summary (e.g. "3×8").
func formatSetsReps(sets, reps int) string {
	return strconv.Itoa(sets) + "×" + strconv.Itoa(reps)
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
