// Package storage implements the sqlite-backed workout repository and the
// ports through which the rest of the service reaches persistence.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"setlog/internal/core"

	_ "modernc.org/sqlite"
)

// Sync states for the sheets pipeline.
const (
	SyncPending = "pending"
	SyncDone    = "synced"
	SyncError   = "error"
)

// ErrNotFound is returned when a workout ID does not exist or is deleted.
var ErrNotFound = errors.New("workout not found")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements storage.WorkoutWriter.
func (r *SQLiteRepository) Append(ctx context.Context, w core.Workout) (int64, error) {
	if err := w.Validate(); err != nil {
		return 0, err
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now()
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO workouts (exercise, sets, reps, weight_kg, created_at, sync_status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		w.Exercise, w.Sets, w.Reps, w.WeightKg,
		w.CreatedAt.UTC().Format(time.RFC3339Nano), SyncPending)
	if err != nil {
		return 0, fmt.Errorf("insert workout: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Workout saved to SQLite",
		"id", id,
		"exercise", w.Exercise,
		"sets", w.Sets,
		"reps", w.Reps,
		"weight_kg", w.WeightKg)

	return id, nil
}

// Remove implements storage.WorkoutRemover with a soft delete so the sync
// worker can still propagate the deletion.
func (r *SQLiteRepository) Remove(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE workouts
		 SET deleted_at = ?, version = version + 1
		 WHERE id = ? AND deleted_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return false, fmt.Errorf("delete workout: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	slog.InfoContext(ctx, "Workout deleted", "id", id)
	return true, nil
}

// ListAll implements storage.WorkoutLister. Entries come back in insertion
// order; display order is the grouper's concern.
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]core.Workout, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, exercise, sets, reps, weight_kg, created_at
		 FROM workouts
		 WHERE deleted_at IS NULL
		 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var out []core.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workouts: %w", err)
	}
	return out, nil
}

// GetWorkout retrieves a single live workout by ID.
func (r *SQLiteRepository) GetWorkout(ctx context.Context, id int64) (core.Workout, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, exercise, sets, reps, weight_kg, created_at
		 FROM workouts
		 WHERE id = ? AND deleted_at IS NULL`, id)

	w, err := scanWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Workout{}, ErrNotFound
	}
	if err != nil {
		return core.Workout{}, err
	}
	return w, nil
}

// PendingSyncWorkout carries the minimal data needed for sync queue messages.
type PendingSyncWorkout struct {
	ID        int64
	Version   int64
	CreatedAt time.Time
}

// PendingSync returns live workouts not yet synced to the sheets target.
func (r *SQLiteRepository) PendingSync(ctx context.Context, limit int) ([]PendingSyncWorkout, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, version, created_at
		 FROM workouts
		 WHERE deleted_at IS NULL AND sync_status = ?
		 ORDER BY id
		 LIMIT ?`, SyncPending, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync workouts: %w", err)
	}
	defer rows.Close()

	var out []PendingSyncWorkout
	for rows.Next() {
		var p PendingSyncWorkout
		var created string
		if err := rows.Scan(&p.ID, &p.Version, &created); err != nil {
			return nil, fmt.Errorf("scan pending workout: %w", err)
		}
		if p.CreatedAt, err = parseStoredTime(created); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending workouts: %w", err)
	}
	return out, nil
}

// MarkSynced marks a workout as successfully synced.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE workouts SET sync_status = ? WHERE id = ?`, SyncDone, id); err != nil {
		return fmt.Errorf("mark workout synced: %w", err)
	}
	slog.InfoContext(ctx, "Workout marked as synced", "id", id)
	return nil
}

// MarkSyncError marks a workout as having failed to sync.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE workouts SET sync_status = ? WHERE id = ?`, SyncError, id); err != nil {
		return fmt.Errorf("mark workout sync error: %w", err)
	}
	slog.WarnContext(ctx, "Workout marked with sync error", "id", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkout(row rowScanner) (core.Workout, error) {
	var w core.Workout
	var created string
	if err := row.Scan(&w.ID, &w.Exercise, &w.Sets, &w.Reps, &w.WeightKg, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Workout{}, err
		}
		return core.Workout{}, fmt.Errorf("scan workout: %w", err)
	}
	t, err := parseStoredTime(created)
	if err != nil {
		return core.Workout{}, err
	}
	w.CreatedAt = t
	return w, nil
}

func parseStoredTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored timestamp %q: %w", s, err)
	}
	return t, nil
}
