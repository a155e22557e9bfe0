package timeline

import (
	"context"
	"log/slog"

	models "tlstory/internal/domain/models/timeline"
	timelineRepo "tlstory/internal/domain/repositories/timeline"
	"tlstory/internal/domain/schema"
	svc "tlstory/internal/domain/services/timeline"
	"tlstory/internal/metrics"
)

// eventService implements the EventService interface
type eventService struct {
	repo    timelineRepo.EventRepository
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewEventService creates a new event service
func NewEventService(
	repo timelineRepo.EventRepository,
	recorder metrics.Recorder,
	logger *slog.Logger,
) svc.EventService {
	return &eventService{
		repo:    repo,
		metrics: recorder,
		logger:  logger,
	}
}

// ListEvents returns events in timeline order
func (s *eventService) ListEvents(ctx context.Context, activeOnly bool) ([]models.Event, error) {
	return s.repo.FetchEvents(ctx, activeOnly)
}

// GetEvent retrieves an event by ID
func (s *eventService) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	return s.repo.GetEvent(ctx, id)
}

// CreateEvent creates a new event from the supplied fields
func (s *eventService) CreateEvent(ctx context.Context, fields svc.Fields) (int64, error) {
	values, err := prepareFields(schema.Events, fields, true)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.CreateEvent(ctx, values)
	if err != nil {
		return 0, err
	}
	s.metrics.IncMutation("event", "create")

	headline, _ := values.Get(schema.ColHeadline)
	s.logger.Info("event created",
		"event_id", id,
		"headline", headline,
	)

	return id, nil
}

// UpdateEvent merges the supplied fields into an event
func (s *eventService) UpdateEvent(ctx context.Context, id int64, fields svc.Fields) error {
	values, err := prepareFields(schema.Events, fields, false)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateEvent(ctx, id, values); err != nil {
		return err
	}
	s.metrics.IncMutation("event", "update")

	s.logger.Info("event updated",
		"event_id", id,
		"fields", values.Columns(),
	)

	return nil
}

// DeleteEvent deactivates or removes an event
func (s *eventService) DeleteEvent(ctx context.Context, id int64, soft bool) error {
	if err := s.repo.DeleteEvent(ctx, id, soft); err != nil {
		return err
	}
	op := deleteOp(soft)
	s.metrics.IncMutation("event", op)

	s.logger.Info("event deleted",
		"event_id", id,
		"mode", op,
	)

	return nil
}

func deleteOp(soft bool) string {
	if soft {
		return "soft_delete"
	}
	return "delete"
}
