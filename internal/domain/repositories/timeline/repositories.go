package timeline

import (
	"context"

	models "tlstory/internal/domain/models/timeline"
	"tlstory/internal/domain/schema"
)

// ConfigRepository defines data access for the configuration singleton
type ConfigRepository interface {
	// FetchConfig returns the singleton, or nil with no error when it does not exist yet
	FetchConfig(ctx context.Context) (*models.Config, error)

	// EnsureConfig inserts the singleton with the given values if no row exists.
	// Reports whether a row was created.
	EnsureConfig(ctx context.Context, defaults schema.Assignments) (bool, error)

	// UpdateConfig writes the assigned columns and bumps updated_at
	UpdateConfig(ctx context.Context, values schema.Assignments) error
}

// EventRepository defines data access for events
type EventRepository interface {
	// FetchEvents returns events ordered by start year, month, day, then sort order
	FetchEvents(ctx context.Context, activeOnly bool) ([]models.Event, error)

	// GetEvent retrieves one event regardless of its active flag
	GetEvent(ctx context.Context, id int64) (*models.Event, error)

	// CreateEvent inserts only the assigned columns and returns the new id
	CreateEvent(ctx context.Context, values schema.Assignments) (int64, error)

	// UpdateEvent writes only the assigned columns and bumps updated_at
	UpdateEvent(ctx context.Context, id int64, values schema.Assignments) error

	// DeleteEvent clears is_active when soft, removes the row otherwise
	DeleteEvent(ctx context.Context, id int64, soft bool) error
}

// EraRepository defines data access for eras
type EraRepository interface {
	// FetchEras returns eras ordered by start year, then sort order
	FetchEras(ctx context.Context, activeOnly bool) ([]models.Era, error)

	GetEra(ctx context.Context, id int64) (*models.Era, error)
	CreateEra(ctx context.Context, values schema.Assignments) (int64, error)
	UpdateEra(ctx context.Context, id int64, values schema.Assignments) error
	DeleteEra(ctx context.Context, id int64, soft bool) error
}

// Store bundles the repositories of one backend. It is constructed once at
// process start and passed explicitly to every service.
type Store struct {
	Config ConfigRepository
	Events EventRepository
	Eras   EraRepository

	// Backend names the storage engine, e.g. "sqlite" or "postgres".
	Backend string
	Close   func() error
}
