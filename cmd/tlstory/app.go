package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"tlstory/internal/config"
	timelineRepo "tlstory/internal/domain/repositories/timeline"
	svc "tlstory/internal/domain/services/timeline"
	"tlstory/internal/metrics"
	"tlstory/internal/publish"
	"tlstory/internal/repository"
	timelineSvc "tlstory/internal/service/timeline"
)

// app carries the wired services every command runs against
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
	store  *timelineRepo.Store

	events   svc.EventService
	eras     svc.EraService
	document svc.DocumentService
	backups  svc.BackupService
	imports  svc.ImportService
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) (*app, error) {
	store, err := repository.Open(ctx, cfg.DatabaseURL, cfg.TablePrefix, logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := timelineSvc.EnsureDefaultConfig(ctx, store.Config); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	recorder := metrics.NoopRecorder{}
	writer := publish.NewWriter(logger)
	configService := timelineSvc.NewConfigService(store.Config, recorder, logger)
	eventService := timelineSvc.NewEventService(store.Events, recorder, logger)
	eraService := timelineSvc.NewEraService(store.Eras, recorder, logger)

	return &app{
		cfg:      cfg,
		logger:   logger,
		out:      out,
		store:    store,
		events:   eventService,
		eras:     eraService,
		document: timelineSvc.NewDocumentService(store, writer, recorder, logger),
		backups:  timelineSvc.NewBackupService(store, writer, cfg.BackupDir, cfg.BackupKeep, recorder, logger),
		imports:  timelineSvc.NewImportService(configService, eventService, eraService, logger),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}
