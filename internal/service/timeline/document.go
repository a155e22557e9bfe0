package timeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	models "tlstory/internal/domain/models/timeline"
	timelineRepo "tlstory/internal/domain/repositories/timeline"
	svc "tlstory/internal/domain/services/timeline"
	"tlstory/internal/metrics"
	"tlstory/internal/publish"
)

// documentService implements the DocumentService interface
type documentService struct {
	store   *timelineRepo.Store
	writer  *publish.Writer
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	store *timelineRepo.Store,
	writer *publish.Writer,
	recorder metrics.Recorder,
	logger *slog.Logger,
) svc.DocumentService {
	return &documentService{
		store:   store,
		writer:  writer,
		metrics: recorder,
		logger:  logger,
	}
}

// Generate fetches the config and active rows and builds the document.
// Nothing is cached; every call reads current rows.
func (s *documentService) Generate(ctx context.Context) (*models.Document, error) {
	start := time.Now()

	doc, err := s.generate(ctx)
	if err != nil {
		s.metrics.IncGenerateResult(metrics.ResultFailed)
		s.logger.Error("document generation failed", "error", err)
		return nil, err
	}

	s.metrics.ObserveGenerate(time.Since(start), len(doc.Events), len(doc.Eras))
	s.metrics.IncGenerateResult(metrics.ResultSuccess)
	return doc, nil
}

func (s *documentService) generate(ctx context.Context) (*models.Document, error) {
	cfg, err := s.store.Config.FetchConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch config: %w", err)
	}
	events, err := s.store.Events.FetchEvents(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	eras, err := s.store.Eras.FetchEras(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("fetch eras: %w", err)
	}

	doc := Build(cfg, events, eras)
	return &doc, nil
}

// Publish generates the document and writes it to path
func (s *documentService) Publish(ctx context.Context, path string) (string, *models.Document, error) {
	doc, err := s.Generate(ctx)
	if err != nil {
		return "", nil, err
	}

	written, err := s.writer.WriteJSON(ctx, path, doc)
	if err != nil {
		return "", nil, fmt.Errorf("publish document: %w", err)
	}

	s.logger.Info("document published",
		"path", written,
		"events", len(doc.Events),
		"eras", len(doc.Eras),
	)

	return written, doc, nil
}

// Export returns the document as indented JSON
func (s *documentService) Export(ctx context.Context) ([]byte, error) {
	doc, err := s.Generate(ctx)
	if err != nil {
		return nil, err
	}
	return publish.Encode(doc)
}
