package timeline

import (
	"context"
	"fmt"
	"log/slog"

	"tlstory/internal/domain"
	models "tlstory/internal/domain/models/timeline"
	timelineRepo "tlstory/internal/domain/repositories/timeline"
	"tlstory/internal/domain/schema"
	svc "tlstory/internal/domain/services/timeline"
	"tlstory/internal/metrics"
)

// Default title written when the config row is first created.
const (
	DefaultTitleHeadline = "Technology Milestones"
	DefaultTitleText     = "Key breakthroughs from the industrial revolution to the age of artificial intelligence"
)

// configService implements the ConfigService interface
type configService struct {
	repo    timelineRepo.ConfigRepository
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewConfigService creates a new config service
func NewConfigService(
	repo timelineRepo.ConfigRepository,
	recorder metrics.Recorder,
	logger *slog.Logger,
) svc.ConfigService {
	return &configService{
		repo:    repo,
		metrics: recorder,
		logger:  logger,
	}
}

// EnsureDefaultConfig creates the config singleton with the default title when
// the table is empty.
func EnsureDefaultConfig(ctx context.Context, repo timelineRepo.ConfigRepository) (bool, error) {
	return repo.EnsureConfig(ctx, schema.Assignments{
		{Column: "title_headline", Value: DefaultTitleHeadline},
		{Column: "title_text", Value: DefaultTitleText},
		{Column: schema.ColScale, Value: models.ScaleHuman},
	})
}

// GetConfig returns the singleton, creating the default row on first use
func (s *configService) GetConfig(ctx context.Context) (*models.Config, error) {
	cfg, err := s.repo.FetchConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		return cfg, nil
	}

	if _, err := EnsureDefaultConfig(ctx, s.repo); err != nil {
		return nil, err
	}
	cfg, err = s.repo.FetchConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config: %w", domain.ErrNotFound)
	}
	return cfg, nil
}

// UpdateConfig writes the non-nil fields
func (s *configService) UpdateConfig(ctx context.Context, req *svc.UpdateConfigRequest) (*models.Config, error) {
	if err := validateConfigRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Make sure there is a row to update
	if _, err := s.GetConfig(ctx); err != nil {
		return nil, err
	}

	var values schema.Assignments
	if req.TitleHeadline != nil {
		values = values.Set("title_headline", *req.TitleHeadline)
	}
	if req.TitleText != nil {
		values = values.Set("title_text", *req.TitleText)
	}
	if req.Scale != nil {
		values = values.Set(schema.ColScale, *req.Scale)
	}

	if err := s.repo.UpdateConfig(ctx, values); err != nil {
		return nil, err
	}
	s.metrics.IncMutation("config", "update")

	s.logger.Info("config updated",
		"fields", values.Columns(),
	)

	return s.repo.FetchConfig(ctx)
}
