package storage

import (
	"fmt"
	"log/slog"

	"newslens/internal/config"
)

// Open builds the backend the configuration names.
func Open(cfg config.StorageConfig, logger *slog.Logger) (ReportStore, error) {
	switch cfg.Type {
	case "file":
		return NewFileStore(cfg.DataDir, logger)
	case "mongodb":
		return NewMongoStore(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection, logger)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
