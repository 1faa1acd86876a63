package backend

import (
	"context"
	"fmt"
	"log/slog"

	"kassenbuch/internal/adapters"
	"kassenbuch/internal/amqp"
	"kassenbuch/internal/cache"
	"kassenbuch/internal/core"
	"kassenbuch/internal/services"
	"kassenbuch/internal/sheets"
	"kassenbuch/internal/sheets/memory"
	"kassenbuch/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		store sheets.EntryStore
		ping  func(context.Context) error
	)
	switch config.Type {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		store, ping = repo, repo.Ping
		f.logger.InfoContext(ctx, "Initialized SQLite backend", "db_path", config.SQLiteDBPath)
	case MemoryBackend:
		dataDir := config.DataDirectory
		if dataDir == "" {
			dataDir = "data"
		}
		store = memory.NewFromFiles(dataDir)
		f.logger.InfoContext(ctx, "Initialized memory backend", "data_directory", dataDir)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}

	// AMQP is optional; the ledger works without the mirror.
	var (
		publisher services.Publisher
		healthy   func() bool
	)
	if config.AMQPURL != "" {
		client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			publisher, healthy = client, client.Healthy
			f.logger.InfoContext(ctx, "Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	var snapshots cache.Cache[string, []core.Entry]
	if config.CacheTTL > 0 {
		snapshots = cache.NewLRUCache[string, []core.Entry](1, config.CacheTTL)
	}

	service := services.NewEntryService(store, publisher)
	return &BackendResult{
		Backend:       adapters.NewLedgerAdapter(store, service, snapshots),
		Ping:          ping,
		EventsHealthy: healthy,
		Cleanup:       service.Close,
	}, nil
}
