package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/cors"

	"tlstory/internal/config"
	"tlstory/internal/handler"
	"tlstory/internal/metrics"
	"tlstory/internal/middleware"
	"tlstory/internal/publish"
	"tlstory/internal/repository"
	"tlstory/internal/scheduler"
	timelineSvc "tlstory/internal/service/timeline"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		log.Fatalf("server: %v", err)
	}
}

// run starts the server and blocks until ctx is cancelled or the listener
// fails. Every resource it opens is released before it returns.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Setup structured logging, optionally mirrored to a log file
	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, config.MaxLogFiles)
		if err != nil {
			return fmt.Errorf("set up log file: %w", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}
	logger := config.NewLogger(logOut, cfg.LogLevel)
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"addr", cfg.Addr(),
		"table_prefix", cfg.TablePrefix,
	)

	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	store, err := repository.Open(ctx, cfg.DatabaseURL, cfg.TablePrefix, logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	logger.Info("database connected", "backend", store.Backend)

	created, err := timelineSvc.EnsureDefaultConfig(ctx, store.Config)
	if err != nil {
		return fmt.Errorf("ensure default config: %w", err)
	}
	if created {
		logger.Info("default timeline config created")
	}

	// Metrics
	var (
		recorder       metrics.Recorder = metrics.NoopRecorder{}
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		recorder = metrics.NewPrometheusRecorder(registry)
		metricsHandler = metrics.HTTPHandler(registry)
	}

	// Create services
	writer := publish.NewWriter(logger)
	configService := timelineSvc.NewConfigService(store.Config, recorder, logger)
	eventService := timelineSvc.NewEventService(store.Events, recorder, logger)
	eraService := timelineSvc.NewEraService(store.Eras, recorder, logger)
	documentService := timelineSvc.NewDocumentService(store, writer, recorder, logger)
	backupService := timelineSvc.NewBackupService(store, writer, cfg.BackupDir, cfg.BackupKeep, recorder, logger)
	importService := timelineSvc.NewImportService(configService, eventService, eraService, logger)

	logger.Info("services initialized")

	// Scheduled backups
	if cfg.BackupInterval > 0 {
		sched, err := scheduler.New(logger)
		if err != nil {
			return fmt.Errorf("create scheduler: %w", err)
		}
		if _, err := sched.ScheduleBackup(cfg.BackupInterval, backupService); err != nil {
			return fmt.Errorf("schedule backups: %w", err)
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				logger.Error("scheduler shutdown failed", "error", err)
			}
		}()
	}

	mux := handler.NewRouter(handler.Handlers{
		Config:    handler.NewConfigHandler(configService, logger),
		Events:    handler.NewEventHandler(eventService, logger),
		Eras:      handler.NewEraHandler(eraService, logger),
		Document:  handler.NewDocumentHandler(documentService, cfg.JSONOutput, logger),
		Import:    handler.NewImportHandler(importService, logger),
		Backup:    handler.NewBackupHandler(backupService, logger),
		Metrics:   metricsHandler,
		StaticDir: cfg.StaticDir,
	})

	// Build middleware chain
	// Order: CORS → RequestLogger → Recovery → Routes
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLogger(logger)(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOriginList(),
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server stopped")
	return nil
}
