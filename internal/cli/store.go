package cli

import (
	"context"
	"fmt"

	"freight-exchange/internal/config"
	"freight-exchange/internal/db"
	"freight-exchange/internal/events"
	"freight-exchange/internal/repository"
	"freight-exchange/utils"
)

type migrator interface {
	Migrate(ctx context.Context) error
}

// openStore opens the configured backend. The returned close func is never nil.
func openStore(ctx context.Context, cfg config.StoreConfig) (repository.ExchangeDB, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory:
		utils.Warn("Using in-memory store, data is lost on restart", nil)
		return repository.NewMemoryRepo(), func() {}, nil

	case config.DriverSQLite:
		repo, err := repository.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite: %w", err)
		}
		utils.Info("SQLite store opened", map[string]any{"path": cfg.SQLitePath})
		return repo, func() {
			if err := repo.Close(); err != nil {
				utils.Warn("Failed to close SQLite store", map[string]any{"error": err.Error()})
			}
		}, nil

	case config.DriverPostgres:
		pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		utils.Info("PostgreSQL connected", nil)
		return repository.NewPostgresRepo(pool), pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

// migrate applies the schema when the store has one
func migrate(ctx context.Context, store repository.ExchangeDB) error {
	m, ok := store.(migrator)
	if !ok {
		return nil
	}
	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// openJournal connects the Redis event journal, or returns a no-op recorder
// when none is configured.
func openJournal(ctx context.Context, cfg config.JournalConfig) (events.Recorder, func(), error) {
	if cfg.RedisURL == "" {
		utils.Info("Event journal disabled", nil)
		return events.NopRecorder{}, func() {}, nil
	}

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("redis: %w", err)
	}
	utils.Info("Event journal connected", map[string]any{"stream": cfg.Stream})
	return events.NewRedisRecorder(rdb, cfg.Stream, cfg.MaxLen), func() {
		if err := rdb.Close(); err != nil {
			utils.Warn("Failed to close Redis client", map[string]any{"error": err.Error()})
		}
	}, nil
}
