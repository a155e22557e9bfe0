package postgres

import (
	"context"

	models "tlstory/internal/domain/models/timeline"
	timelineRepo "tlstory/internal/domain/repositories/timeline"
	"tlstory/internal/domain/schema"
	"tlstory/internal/repository/sqlgen"
)

// PostgresEraRepository implements the EraRepository interface
type PostgresEraRepository struct {
	table *tableStore
}

// NewEraRepository creates a new era repository
func NewEraRepository(config *RepositoryConfig) timelineRepo.EraRepository {
	return &PostgresEraRepository{
		table: &tableStore{pool: config.Pool, name: config.Tables.Eras, schema: schema.Eras},
	}
}

// FetchEras returns eras by start year
func (r *PostgresEraRepository) FetchEras(ctx context.Context, activeOnly bool) ([]models.Era, error) {
	rows, err := r.table.list(ctx, activeOnly, sqlgen.EraOrder)
	if err != nil {
		return nil, err
	}
	eras := make([]models.Era, 0, len(rows))
	for _, row := range rows {
		eras = append(eras, models.EraFromRow(row))
	}
	return eras, nil
}

// GetEra retrieves an era by ID
func (r *PostgresEraRepository) GetEra(ctx context.Context, id int64) (*models.Era, error) {
	row, err := r.table.get(ctx, id)
	if err != nil {
		return nil, err
	}
	era := models.EraFromRow(row)
	return &era, nil
}

// CreateEra inserts an era
func (r *PostgresEraRepository) CreateEra(ctx context.Context, values schema.Assignments) (int64, error) {
	return r.table.insert(ctx, values)
}

// UpdateEra updates the assigned columns of an era
func (r *PostgresEraRepository) UpdateEra(ctx context.Context, id int64, values schema.Assignments) error {
	return r.table.update(ctx, id, values)
}

// DeleteEra deactivates or removes an era
func (r *PostgresEraRepository) DeleteEra(ctx context.Context, id int64, soft bool) error {
	return r.table.delete(ctx, id, soft)
}
