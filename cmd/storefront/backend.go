package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/storefront-state/internal/config"
	"github.com/tair/storefront-state/pkg/database"
	"github.com/tair/storefront-state/pkg/logger"
	"github.com/tair/storefront-state/pkg/persist"
)

// backend is an opened persistence layer.
type backend struct {
	repo  persist.Repository
	ping  func(context.Context) error
	close func() error
}

// openBackend connects the repository selected by STATE_BACKEND and wraps it
// with tracing.
func openBackend(ctx context.Context, cfg config.Config) (*backend, error) {
	b := &backend{close: func() error { return nil }}

	switch cfg.Backend {
	case config.BackendMemory:
		b.repo = persist.NewMemoryRepository()

	case config.BackendFile:
		repo, err := persist.NewFileRepository(cfg.StateDir)
		if err != nil {
			return nil, err
		}
		b.repo = repo

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		b.repo = persist.NewRedisRepository(client, cfg.RedisPrefix)
		b.ping = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		b.close = client.Close

	case config.BackendPostgres:
		db, err := database.NewGormConnection(cfg.Database)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database instance: %w", err)
		}
		repo := persist.NewGormRepository(db)
		if err := repo.AutoMigrate(); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		b.repo = repo
		b.ping = sqlDB.PingContext
		b.close = sqlDB.Close

	default:
		return nil, fmt.Errorf("unknown state backend %q", cfg.Backend)
	}

	b.repo = persist.NewTracingRepository(b.repo, cfg.Backend)

	logger.Logger.Info().
		Str("backend", cfg.Backend).
		Msg("State backend initialized")

	return b, nil
}
