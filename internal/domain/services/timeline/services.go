package timeline

import (
	"context"
	"encoding/json"

	models "tlstory/internal/domain/models/timeline"
	"tlstory/internal/seed"
)

// Fields is a loosely typed create or update body keyed by column name.
// A JSON null leaves the stored value untouched.
type Fields map[string]json.RawMessage

// UpdateConfigRequest represents a partial config update. Nil fields are not written.
type UpdateConfigRequest struct {
	TitleHeadline *string `json:"title_headline"`
	TitleText     *string `json:"title_text"`
	Scale         *string `json:"scale"`
}

// ImportResult reports what an import applied
type ImportResult struct {
	ConfigUpdated bool `json:"config_updated"`
	Events        int  `json:"events"`
	Eras          int  `json:"eras"`
	// Removed counts rows hard-deleted by Replace
	RemovedEvents int `json:"removed_events,omitempty"`
	RemovedEras   int `json:"removed_eras,omitempty"`
}

// ConfigService defines business logic operations for the timeline configuration
type ConfigService interface {
	// GetConfig returns the singleton, creating the default row on first use
	GetConfig(ctx context.Context) (*models.Config, error)

	// UpdateConfig writes the non-nil fields
	UpdateConfig(ctx context.Context, req *UpdateConfigRequest) (*models.Config, error)
}

// EventService defines business logic operations for events
type EventService interface {
	ListEvents(ctx context.Context, activeOnly bool) ([]models.Event, error)
	GetEvent(ctx context.Context, id int64) (*models.Event, error)

	// CreateEvent requires headline and start_year
	CreateEvent(ctx context.Context, fields Fields) (int64, error)

	// UpdateEvent merges the non-null fields into the stored event
	UpdateEvent(ctx context.Context, id int64, fields Fields) error

	// DeleteEvent clears is_active when soft, removes the row otherwise
	DeleteEvent(ctx context.Context, id int64, soft bool) error
}

// EraService defines business logic operations for eras
type EraService interface {
	ListEras(ctx context.Context, activeOnly bool) ([]models.Era, error)
	GetEra(ctx context.Context, id int64) (*models.Era, error)

	// CreateEra requires headline, start_year and end_year
	CreateEra(ctx context.Context, fields Fields) (int64, error)
	UpdateEra(ctx context.Context, id int64, fields Fields) error
	DeleteEra(ctx context.Context, id int64, soft bool) error
}

// DocumentService builds the TimelineJS document from active rows
type DocumentService interface {
	// Generate fetches current rows and builds the document
	Generate(ctx context.Context) (*models.Document, error)

	// Publish generates the document and writes it to path.
	// Returns the path written along with the document.
	Publish(ctx context.Context, path string) (string, *models.Document, error)

	// Export returns the document as indented JSON
	Export(ctx context.Context) ([]byte, error)
}

// BackupService snapshots every row to a file
type BackupService interface {
	// Backup writes a snapshot and prunes old ones. Returns the path written.
	Backup(ctx context.Context) (string, error)
}

// ImportService applies seed files. Imports are not transactional: a failure
// part way leaves the rows written so far.
type ImportService interface {
	// Merge applies the config section and adds every event and era
	Merge(ctx context.Context, file *seed.File) (*ImportResult, error)

	// Replace hard-deletes all events and eras, then merges
	Replace(ctx context.Context, file *seed.File) (*ImportResult, error)
}
