package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ramonehamilton/proxygen/internal/cards"
	"github.com/ramonehamilton/proxygen/internal/config"
	"github.com/ramonehamilton/proxygen/internal/storage"
)

func loadOptions(cfg config.DatasetConfig) []cards.LoadOption {
	var opts []cards.LoadOption
	if cfg.IncludeUnsupported {
		opts = append(opts, cards.WithUnsupportedLayouts())
	}
	if cfg.StrictCollisions {
		opts = append(opts, cards.WithStrictCollisions())
	}
	return opts
}

// loadStore builds the reference store from the configured source.
func loadStore(ctx context.Context, cfg config.DatasetConfig, logger *zap.Logger) (*cards.Store, error) {
	start := time.Now()

	var (
		store *cards.Store
		err   error
	)
	switch cfg.Source {
	case config.SourceSQLite:
		store, err = loadFromSnapshot(ctx, cfg, logger)
	default:
		store, err = cards.LoadFile(cfg.Path, loadOptions(cfg)...)
	}
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	logCollisions(logger, store)
	logger.Info("Dataset loaded",
		zap.String("source", cfg.Source),
		zap.Int("cards", store.Len()),
		zap.Int("dropped", store.Dropped()),
		zap.Int("collisions", len(store.Collisions())),
		zap.Duration("duration", time.Since(start)))

	return store, nil
}

func logCollisions(logger *zap.Logger, store *cards.Store) {
	for _, c := range store.Collisions() {
		logger.Warn("Card names collide after sanitizing",
			zap.String("key", c.Key),
			zap.String("kept", c.Kept),
			zap.String("replaced", c.Replaced))
	}
}

func loadFromSnapshot(ctx context.Context, cfg config.DatasetConfig, logger *zap.Logger) (*cards.Store, error) {
	dbCfg := storage.DefaultConfig(cfg.DBPath)
	dbCfg.AutoMigrate = true
	db, err := storage.Open(dbCfg)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	records, snap, err := db.LoadRecords(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("Using dataset snapshot",
		zap.String("id", snap.ID),
		zap.String("source", snap.Source),
		zap.Time("created_at", snap.CreatedAt))

	return cards.NewStore(records, loadOptions(cfg)...)
}
