// Package scheduler runs periodic maintenance jobs such as backups.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	svc "tlstory/internal/domain/services/timeline"
)

// backupTimeout bounds one scheduled backup run
const backupTimeout = 5 * time.Minute

// Scheduler wraps gocron scheduler for managing periodic tasks.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
}

// New creates a new scheduler instance.
func New(logger *slog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: s,
		logger:    logger,
	}, nil
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", "jobs", len(s.scheduler.Jobs()))
	s.scheduler.Start()
}

// Stop shuts the scheduler down, waiting for running jobs.
func (s *Scheduler) Stop() error {
	s.logger.Info("stopping scheduler")
	return s.scheduler.Shutdown()
}

// ScheduleBackup runs backups every interval. A run still in progress when
// the next one is due causes that next run to be skipped.
// Returns the job ID for later management.
func (s *Scheduler) ScheduleBackup(interval time.Duration, backups svc.BackupService) (string, error) {
	if interval <= 0 {
		return "", fmt.Errorf("backup interval must be positive, got %s", interval)
	}

	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.runBackup, backups),
		gocron.WithName("backup"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create backup job: %w", err)
	}

	s.logger.Info("backup job scheduled", "interval", interval.String(), "job_id", job.ID().String())
	return job.ID().String(), nil
}

// runBackup is called by gocron to execute a scheduled backup.
func (s *Scheduler) runBackup(backups svc.BackupService) {
	ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
	defer cancel()

	path, err := backups.Backup(ctx)
	if err != nil {
		s.logger.Error("scheduled backup failed", "error", err)
		return
	}
	s.logger.Info("scheduled backup complete", "path", path)
}
