package main

import (
	"context"

	"polyglot/backend/internal/db"
	"polyglot/backend/internal/repository"
	"polyglot/backend/pkg/logger"
)

// openRepository selects the store named by the DATABASE_URL scheme.
func openRepository(ctx context.Context, databaseURL string) (repository.TranslationRepository, func(), error) {
	driver, target, err := db.ParseURL(databaseURL)
	if err != nil {
		return nil, nil, err
	}

	switch driver {
	case db.DriverPostgres:
		pool, err := db.OpenPostgres(ctx, target)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("store opened", "module", "main", "action", "open", "resource", "database", "driver", string(driver), "url", db.Redact(databaseURL))
		return repository.NewPostgresTranslationRepository(pool), pool.Close, nil
	default:
		database, err := db.Open(target)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("store opened", "module", "main", "action", "open", "resource", "database", "driver", string(driver), "path", target)
		return repository.NewTranslationRepository(database), func() { _ = database.Close() }, nil
	}
}
