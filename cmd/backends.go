package cmd

import (
	"fmt"

	"dataset-reconciler/core/config"
	"dataset-reconciler/core/database"
	"dataset-reconciler/core/source"
	"dataset-reconciler/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// openBackends connects only the backends the references need: object storage for
// s3:// references and the database for db: references.
func openBackends(cfg *config.Config, l *zap.Logger, refs ...string) (storage.Client, *gorm.DB, error) {
	var needStorage, needDB bool
	for _, raw := range refs {
		if raw == "" {
			continue
		}
		ref, err := source.Parse(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid reference %q: %w", raw, err)
		}
		switch ref.Kind {
		case source.KindObject:
			needStorage = true
		case source.KindDatabase:
			needDB = true
		}
	}

	var (
		client storage.Client
		db     *gorm.DB
		err    error
	)
	if needStorage {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		l.Debug("Storage client ready", zap.String("endpoint", cfg.Storage.Endpoint))
	}
	if needDB {
		db, err = database.Connect(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		l.Debug("Connected to database", zap.String("driver", cfg.Database.Driver))
	}
	return client, db, nil
}
