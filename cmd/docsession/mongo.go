package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/docsession/core/config"
	"github.com/dmitrymomot/docsession/core/health"
	"github.com/dmitrymomot/docsession/core/logger"
	"github.com/dmitrymomot/docsession/core/session"
	"github.com/dmitrymomot/docsession/integration/database/mongo"
	"github.com/dmitrymomot/docsession/integration/session/mongostore"
)

// storeLocation names the collection holding session records.
type storeLocation struct {
	Database   string `env:"DOCSESSION_DATABASE" envDefault:"app"`
	Collection string `env:"DOCSESSION_COLLECTION" envDefault:"sessions"`
}

// sessionConfig resolves the field mapping: a YAML file when given, the environment otherwise.
func sessionConfig(path string) (session.Config, error) {
	if path == "" {
		return session.ConfigFromEnv()
	}
	f, err := os.Open(path)
	if err != nil {
		return session.Config{}, err
	}
	defer f.Close()
	return session.DecodeConfig(f)
}

func openMongo(ctx context.Context, flags *rootFlags, log *slog.Logger) (*app, error) {
	var dbCfg mongo.Config
	if err := config.Load(&dbCfg); err != nil {
		return nil, err
	}
	var loc storeLocation
	if err := config.Load(&loc); err != nil {
		return nil, err
	}
	if flags.database != "" {
		loc.Database = flags.database
	}
	if flags.collection != "" {
		loc.Collection = flags.collection
	}

	sessCfg, err := sessionConfig(flags.sessionConfig)
	if err != nil {
		return nil, err
	}

	client, err := mongo.New(ctx, dbCfg)
	if err != nil {
		return nil, err
	}
	log.DebugContext(ctx, "Connected to MongoDB", logger.Collection(loc.Database+"."+loc.Collection))

	store, err := mongostore.New[map[string]any](
		client.Database(loc.Database).Collection(loc.Collection),
		mongostore.WithConfig[map[string]any](sessCfg),
	)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &app{
		store:  store,
		checks: []health.Check{mongo.Healthcheck(client)},
		close:  client.Disconnect,
	}, nil
}
