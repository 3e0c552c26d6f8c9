package main

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/docsession/core/config"
	"github.com/dmitrymomot/docsession/core/health"
	"github.com/dmitrymomot/docsession/core/logger"
	"github.com/dmitrymomot/docsession/integration/database/redis"
	"github.com/dmitrymomot/docsession/integration/session/redisstore"
)

type redisLocation struct {
	KeyPrefix string `env:"DOCSESSION_KEY_PREFIX" envDefault:"session:"`
}

func openRedis(ctx context.Context, flags *rootFlags, log *slog.Logger) (*app, error) {
	var dbCfg redis.Config
	if err := config.Load(&dbCfg); err != nil {
		return nil, err
	}
	var loc redisLocation
	if err := config.Load(&loc); err != nil {
		return nil, err
	}
	if flags.keyPrefix != "" {
		loc.KeyPrefix = flags.keyPrefix
	}

	sessCfg, err := sessionConfig(flags.sessionConfig)
	if err != nil {
		return nil, err
	}

	client, err := redis.Connect(ctx, dbCfg)
	if err != nil {
		return nil, err
	}
	log.DebugContext(ctx, "Connected to Redis", logger.Collection(loc.KeyPrefix))

	store, err := redisstore.New(client,
		redisstore.WithConfig[map[string]any](sessCfg),
		redisstore.WithKeyPrefix[map[string]any](loc.KeyPrefix),
		redisstore.WithScanBatchSize[map[string]any](dbCfg.ScanBatchSize),
	)
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	return &app{
		store:  store,
		checks: []health.Check{redis.Healthcheck(client)},
		close:  func(context.Context) error { return client.Close() },
	}, nil
}
