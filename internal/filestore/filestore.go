// Package filestore persists the workout log as a single JSON file holding
// the full entry array. Every mutation rewrites the whole file; there are no
// partial updates and no stored schema version.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"setlog/internal/core"
)

type Store struct {
	path string

	mu       sync.Mutex
	workouts []core.Workout
	nextID   int64
}

// Open loads the store from path, creating parent directories as needed.
// A missing file yields an empty store. A corrupt file is backed up next to
// the original and the store starts empty rather than failing hard.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &Store{path: path, nextID: 1}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read workout log %s: %w", path, err)
	}

	var workouts []core.Workout
	if err := json.Unmarshal(data, &workouts); err != nil {
		backup := path + ".corrupt"
		_ = os.Rename(path, backup)
		slog.Warn("Corrupt workout log, starting empty",
			"path", path, "backup", backup, "error", err)
		return s, nil
	}

	s.workouts = workouts
	for _, w := range workouts {
		if w.ID >= s.nextID {
			s.nextID = w.ID + 1
		}
	}
	return s, nil
}

// Append implements storage.WorkoutWriter. IDs come from a monotonic counter
// seeded from the highest stored ID, so they stay unique across restarts.
func (s *Store) Append(_ context.Context, w core.Workout) (int64, error) {
	if err := w.Validate(); err != nil {
		return 0, err
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w.ID = s.nextID
	s.nextID++
	s.workouts = append(s.workouts, w)

	if err := s.persistLocked(); err != nil {
		// Roll back the in-memory append so memory and disk agree.
		s.workouts = s.workouts[:len(s.workouts)-1]
		s.nextID--
		return 0, err
	}
	return w.ID, nil
}

// Remove implements storage.WorkoutRemover. Unknown IDs are a no-op.
func (s *Store) Remove(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, w := range s.workouts {
		if w.ID != id {
			continue
		}
		removed := s.workouts[i]
		s.workouts = append(s.workouts[:i], s.workouts[i+1:]...)
		if err := s.persistLocked(); err != nil {
			s.workouts = append(s.workouts[:i], append([]core.Workout{removed}, s.workouts[i:]...)...)
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// ListAll implements storage.WorkoutLister.
func (s *Store) ListAll(_ context.Context) ([]core.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Workout, len(s.workouts))
	copy(out, s.workouts)
	return out, nil
}

// persistLocked writes the full collection atomically: temp file then rename.
// Callers must hold s.mu.
func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.workouts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal workout log: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write temp workout log: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename workout log: %w", err)
	}
	return nil
}
