// Package repository selects the storage backend from the database URL.
package repository

import (
	"context"
	"log/slog"
	"strings"

	timelineRepo "tlstory/internal/domain/repositories/timeline"
	"tlstory/internal/repository/postgres"
	"tlstory/internal/repository/sqlite"
)

// IsPostgresURL reports whether databaseURL names a PostgreSQL server rather
// than a SQLite file.
func IsPostgresURL(databaseURL string) bool {
	return strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://")
}

// Open returns the store for databaseURL: PostgreSQL for postgres:// URLs,
// otherwise a SQLite file at that path.
func Open(ctx context.Context, databaseURL, tablePrefix string, logger *slog.Logger) (*timelineRepo.Store, error) {
	if IsPostgresURL(databaseURL) {
		logger.Info("using postgres store", "table_prefix", tablePrefix)
		return postgres.NewStore(ctx, databaseURL, tablePrefix, logger)
	}
	logger.Info("using sqlite store", "path", databaseURL, "table_prefix", tablePrefix)
	return sqlite.NewStore(ctx, databaseURL, tablePrefix, logger)
}
