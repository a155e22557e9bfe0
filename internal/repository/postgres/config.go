package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tlstory/internal/domain"
	models "tlstory/internal/domain/models/timeline"
	timelineRepo "tlstory/internal/domain/repositories/timeline"
	"tlstory/internal/domain/schema"
	"tlstory/internal/repository/sqlgen"
)

// PostgresConfigRepository implements the ConfigRepository interface
type PostgresConfigRepository struct {
	pool   *pgxpool.Pool
	table  *tableStore
	logger *slog.Logger
}

// NewConfigRepository creates a new config repository
func NewConfigRepository(config *RepositoryConfig) timelineRepo.ConfigRepository {
	return &PostgresConfigRepository{
		pool:   config.Pool,
		table:  &tableStore{pool: config.Pool, name: config.Tables.Config, schema: schema.Config},
		logger: config.Logger,
	}
}

// FetchConfig returns the lowest-id config row
func (r *PostgresConfigRepository) FetchConfig(ctx context.Context) (*models.Config, error) {
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
func (r *PostgresConfigRepository) EnsureConfig(ctx context.Context, defaults schema.Assignments) (bool, error) {
	now := time.Now().UTC()
	values := slices.Clone(defaults).
		Set(schema.ColID, int64(1)).
		Set(schema.ColCreatedAt, now).
		Set(schema.ColUpdatedAt, now)

	var count int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", r.table.name)
	if err := r.pool.QueryRow(ctx, countQuery).Scan(&count); err != nil {
		return false, fmt.Errorf("count config rows: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	// ON CONFLICT covers a concurrent start inserting first
	query, args := sqlgen.Insert(sqlgen.Postgres, r.table.name, values)
	query += " ON CONFLICT (id) DO NOTHING"
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert default config: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	// Keep the sequence ahead of the explicit id
	seq := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), (SELECT MAX(id) FROM %[1]s))", r.table.name)
	if _, err := r.pool.Exec(ctx, seq); err != nil {
		r.logger.Warn("failed to advance config id sequence", "table", r.table.name, "error", err)
	}

	r.logger.Info("created default timeline config", "table", r.table.name)
	return true, nil
}

// UpdateConfig writes the assigned columns to the singleton
func (r *PostgresConfigRepository) UpdateConfig(ctx context.Context, values schema.Assignments) error {
	current, err := r.FetchConfig(ctx)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("config: %w", domain.ErrNotFound)
	}

	values = slices.Clone(values).Set(schema.ColUpdatedAt, time.Now().UTC())
	query, args := sqlgen.UpdateByID(sqlgen.Postgres, r.table.name, values, current.ID)
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update config: %w", err)
	}
	return r.table.requireAffected(tag, current.ID)
}
