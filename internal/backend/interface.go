// Package backend selects and assembles the storage backend the server
// runs on.
package backend

import (
	"context"

	"setlog/internal/storage"
)

// Backend is the full set of storage ports the HTTP layer needs.
type Backend interface {
	storage.WorkoutWriter
	storage.WorkoutRemover
	storage.WorkoutLister
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result contains the backend instance and an optional cleanup function.
type Result struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Type identifies a storage backend.
type Type string

const (
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Config holds what backend creation needs.
type Config struct {
	Type Type

	// File backend
	DataFilePath string

	// SQLite backend
	SQLiteDBPath string

	// Optional sync pipeline
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}
