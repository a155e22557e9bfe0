package timeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	models "tlstory/internal/domain/models/timeline"
	timelineRepo "tlstory/internal/domain/repositories/timeline"
	svc "tlstory/internal/domain/services/timeline"
	"tlstory/internal/metrics"
	"tlstory/internal/publish"
)

const backupPattern = "timeline-*.json"

// Snapshot is the backup file layout. Its config, events and eras sections
// use column names, so a snapshot can be fed back through the importer.
type Snapshot struct {
	CreatedAt time.Time      `json:"created_at"`
	Backend   string         `json:"backend"`
	Config    *models.Config `json:"config"`
	Events    []models.Event `json:"events"`
	Eras      []models.Era   `json:"eras"`
}

// backupService implements the BackupService interface
type backupService struct {
	store   *timelineRepo.Store
	writer  *publish.Writer
	dir     string
	keep    int
	metrics metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time
}

// NewBackupService creates a backup service writing to dir and keeping the
// newest keep snapshots.
func NewBackupService(
	store *timelineRepo.Store,
	writer *publish.Writer,
	dir string,
	keep int,
	recorder metrics.Recorder,
	logger *slog.Logger,
) svc.BackupService {
	return &backupService{
		store:   store,
		writer:  writer,
		dir:     dir,
		keep:    keep,
		metrics: recorder,
		logger:  logger,
		now:     time.Now,
	}
}

// Backup snapshots every row, active or not
func (s *backupService) Backup(ctx context.Context) (string, error) {
	path, err := s.backup(ctx)
	s.metrics.IncBackup(err == nil)
	if err != nil {
		s.logger.Error("backup failed", "dir", s.dir, "error", err)
		return "", err
	}
	return path, nil
}

func (s *backupService) backup(ctx context.Context) (string, error) {
	cfg, err := s.store.Config.FetchConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch config: %w", err)
	}
	events, err := s.store.Events.FetchEvents(ctx, false)
	if err != nil {
		return "", fmt.Errorf("fetch events: %w", err)
	}
	eras, err := s.store.Eras.FetchEras(ctx, false)
	if err != nil {
		return "", fmt.Errorf("fetch eras: %w", err)
	}

	now := s.now().UTC()
	snap := Snapshot{
		CreatedAt: now,
		Backend:   s.store.Backend,
		Config:    cfg,
		Events:    events,
		Eras:      eras,
	}

	name := fmt.Sprintf("timeline-%s.json", now.Format("20060102T150405.000"))
	path, err := s.writer.WriteJSON(ctx, filepath.Join(s.dir, name), snap)
	if err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	removed, err := publish.PruneFiles(s.dir, backupPattern, s.keep)
	if err != nil {
		// the new snapshot is already safe on disk
		s.logger.Warn("failed to prune old backups", "dir", s.dir, "error", err)
	}

	s.logger.Info("backup written",
		"path", path,
		"events", len(events),
		"eras", len(eras),
		"pruned", len(removed),
	)

	return path, nil
}
