package sqlite

import (
	"context"

	models "tlstory/internal/domain/models/timeline"
	timelineRepo "tlstory/internal/domain/repositories/timeline"
	"tlstory/internal/domain/schema"
	"tlstory/internal/repository/sqlgen"
)

// SQLiteEventRepository implements the EventRepository interface
type SQLiteEventRepository struct {
	table *tableStore
}

// NewEventRepository creates a new event repository
func NewEventRepository(config *RepositoryConfig) timelineRepo.EventRepository {
	return &SQLiteEventRepository{
		table: &tableStore{db: config.DB, name: config.Tables.Events, schema: schema.Events},
	}
}

// FetchEvents returns events in timeline order
func (r *SQLiteEventRepository) FetchEvents(ctx context.Context, activeOnly bool) ([]models.Event, error) {
	rows, err := r.table.list(ctx, activeOnly, sqlgen.EventOrder)
	if err != nil {
		return nil, err
	}
	events := make([]models.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, models.EventFromRow(row))
	}
	return events, nil
}

// GetEvent retrieves an event by ID
func (r *SQLiteEventRepository) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	row, err := r.table.get(ctx, id)
	if err != nil {
		return nil, err
	}
	event := models.EventFromRow(row)
	return &event, nil
}

// CreateEvent inserts an event
func (r *SQLiteEventRepository) CreateEvent(ctx context.Context, values schema.Assignments) (int64, error) {
	return r.table.insert(ctx, values)
}

// UpdateEvent updates the assigned columns of an event
func (r *SQLiteEventRepository) UpdateEvent(ctx context.Context, id int64, values schema.Assignments) error {
	return r.table.update(ctx, id, values)
}

// DeleteEvent deactivates or removes an event
func (r *SQLiteEventRepository) DeleteEvent(ctx context.Context, id int64, soft bool) error {
	return r.table.delete(ctx, id, soft)
}
