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

// eraService implements the EraService interface
type eraService struct {
	repo    timelineRepo.EraRepository
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewEraService creates a new era service
func NewEraService(
	repo timelineRepo.EraRepository,
	recorder metrics.Recorder,
	logger *slog.Logger,
) svc.EraService {
	return &eraService{
		repo:    repo,
		metrics: recorder,
		logger:  logger,
	}
}

func (s *eraService) ListEras(ctx context.Context, activeOnly bool) ([]models.Era, error) {
	return s.repo.FetchEras(ctx, activeOnly)
}

func (s *eraService) GetEra(ctx context.Context, id int64) (*models.Era, error) {
	return s.repo.GetEra(ctx, id)
}

// CreateEra creates a new era; both endpoints are required
func (s *eraService) CreateEra(ctx context.Context, fields svc.Fields) (int64, error) {
	values, err := prepareFields(schema.Eras, fields, true)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.CreateEra(ctx, values)
	if err != nil {
		return 0, err
	}
	s.metrics.IncMutation("era", "create")

	headline, _ := values.Get(schema.ColHeadline)
	s.logger.Info("era created",
		"era_id", id,
		"headline", headline,
	)

	return id, nil
}

func (s *eraService) UpdateEra(ctx context.Context, id int64, fields svc.Fields) error {
	values, err := prepareFields(schema.Eras, fields, false)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateEra(ctx, id, values); err != nil {
		return err
	}
	s.metrics.IncMutation("era", "update")

	s.logger.Info("era updated",
		"era_id", id,
		"fields", values.Columns(),
	)

	return nil
}

func (s *eraService) DeleteEra(ctx context.Context, id int64, soft bool) error {
	if err := s.repo.DeleteEra(ctx, id, soft); err != nil {
		return err
	}
	op := deleteOp(soft)
	s.metrics.IncMutation("era", op)

	s.logger.Info("era deleted",
		"era_id", id,
		"mode", op,
	)

	return nil
}
