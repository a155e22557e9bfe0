package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"tlstory/internal/domain"
	models "tlstory/internal/domain/models/timeline"
	timelineRepo "tlstory/internal/domain/repositories/timeline"
	"tlstory/internal/domain/schema"
	"tlstory/internal/repository/sqlgen"
)

// SQLiteConfigRepository implements the ConfigRepository interface
type SQLiteConfigRepository struct {
	table  *tableStore
	logger *slog.Logger
}

// NewConfigRepository creates a new config repository
func NewConfigRepository(config *RepositoryConfig) timelineRepo.ConfigRepository {
	return &SQLiteConfigRepository{
		table:  &tableStore{db: config.DB, name: config.Tables.Config, schema: schema.Config},
		logger: config.Logger,
	}
}

// FetchConfig returns the lowest-id config row
func (r *SQLiteConfigRepository) FetchConfig(ctx context.Context) (*models.Config, error) {
	rows, err := r.table.query(ctx, "", "id ASC LIMIT 1")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	cfg := models.ConfigFromRow(rows[0])
	return &cfg, nil
}

// EnsureConfig inserts the singleton with id 1 when the table is empty
func (r *SQLiteConfigRepository) EnsureConfig(ctx context.Context, defaults schema.Assignments) (bool, error) {
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", r.table.name)
	if err := r.table.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return false, fmt.Errorf("count config rows: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	now := schema.FormatTimestamp(time.Now())
	values := slices.Clone(defaults).
		Set(schema.ColID, int64(1)).
		Set(schema.ColCreatedAt, now).
		Set(schema.ColUpdatedAt, now)
	insert, args := sqlgen.Insert(sqlgen.SQLite, r.table.name, values)
	if _, err := r.table.db.ExecContext(ctx, insert, args...); err != nil {
		return false, fmt.Errorf("insert default config: %w", err)
	}

	r.logger.Info("created default timeline config", "table", r.table.name)
	return true, nil
}

// UpdateConfig writes the assigned columns to the singleton
func (r *SQLiteConfigRepository) UpdateConfig(ctx context.Context, values schema.Assignments) error {
	current, err := r.FetchConfig(ctx)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("config: %w", domain.ErrNotFound)
	}

	values = slices.Clone(values).Set(schema.ColUpdatedAt, schema.FormatTimestamp(time.Now()))
	query, args := sqlgen.UpdateByID(sqlgen.SQLite, r.table.name, values, current.ID)
	res, err := r.table.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update config: %w", err)
	}
	return r.table.requireAffected(res, current.ID)
}
