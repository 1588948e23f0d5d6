package backend

import (
	"context"
	"fmt"
	"log/slog"

	"setlog/internal/amqp"
	"setlog/internal/core"
	"setlog/internal/filestore"
	"setlog/internal/services"
	"setlog/internal/storage"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend builds the configured store, wires the optional AMQP
// publisher, and wraps both in a WorkoutService.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var store services.Store
	switch config.Type {
	case FileBackend:
		fs, err := filestore.Open(config.DataFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open workout file store: %w", err)
		}
		store = fs
		f.logger.Info("Initialized file backend", "path", config.DataFilePath)
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		store = repo
		f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}

	var publisher services.Publisher
	if config.AMQPURL != "" {
		client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without sync", "error", err)
		} else {
			publisher = client
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	service := services.NewWorkoutService(store, publisher)

	return &Result{
		Backend: &serviceBackend{service: service, lister: store},
		Cleanup: service.Close,
	}, nil
}

// serviceBackend adapts a WorkoutService plus its store to the Backend
// interface so HTTP handlers stay agnostic of the sync pipeline.
type serviceBackend struct {
	service *services.WorkoutService
	lister  services.Store
}

func (b *serviceBackend) Append(ctx context.Context, w core.Workout) (int64, error) {
	return b.service.LogWorkout(ctx, w)
}

func (b *serviceBackend) Remove(ctx context.Context, id int64) (bool, error) {
	return b.service.DeleteWorkout(ctx, id)
}

func (b *serviceBackend) ListAll(ctx context.Context) ([]core.Workout, error) {
	return b.lister.ListAll(ctx)
}
