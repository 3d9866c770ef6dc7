package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"serverlog-analyser/internal/aggregators"
	"serverlog-analyser/internal/analyzers"
	"serverlog-analyser/internal/events"
	"serverlog-analyser/internal/extractors"
	internalhttp "serverlog-analyser/internal/http"
	"serverlog-analyser/internal/ingestors"
	"serverlog-analyser/internal/jobs"
	"serverlog-analyser/internal/shared/configs"
	"serverlog-analyser/internal/shared/filestorages"
	"serverlog-analyser/internal/shared/loggers"
	"serverlog-analyser/internal/stores"
	"serverlog-analyser/internal/streams"
	"serverlog-analyser/internal/watchers"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	dispatchQueue    *streams.PartitionedQueue[events.JobDispatchEvent]
	dispatchConsumer streams.JobDispatchConsumer
	inboxWatcher     *watchers.InboxWatcher
	backgroundCtx    context.Context
	backgroundCancel context.CancelFunc
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "serverlog-analyser").
		Logger()

	// Initialize upload storage
	fileStorage, err := filestorages.NewFileStorage(config.FileStorage.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Background runs outlive the request that submitted them
	backgroundCtx, backgroundCancel := context.WithCancel(context.Background())
	backgroundCtx = appLogger.With().Str(loggers.FieldComponent, "jobs").Logger().WithContext(backgroundCtx)

	// Initialize analyzer
	analyzer := analyzers.NewStreamingAnalyzer(fileStorage, extractors.NewPatternExtractor(), LimitsFromConfig(config.Analysis))

	// Initialize dispatch queue and task hosts, probed in this order
	dispatchQueue := streams.NewPartitionedQueue[events.JobDispatchEvent](config.Dispatch.Partitions, config.Dispatch.Buffer)
	dispatchProducer := streams.NewJobDispatchProducer(dispatchQueue)
	hosts := []jobs.TaskHost{
		jobs.NewInlineHost(),
		jobs.NewHandoffHost(dispatchProducer),
		jobs.NewDedicatedHost(backgroundCtx, config.Analysis.MaxDedicatedWorkers),
	}

	// Initialize scheduler
	scheduler := jobs.NewScheduler(jobs.NewRegistry(), analyzer, fileStorage, hosts, jobs.SchedulerOptions{
		DeleteUploadsAfterProcessing: config.Analysis.DeleteUploadsAfterProcessing,
	})
	consumerLogger := appLogger.With().Str(loggers.FieldComponent, "consumer").Logger()
	dispatchConsumer := streams.NewJobDispatchConsumer(dispatchQueue, scheduler, consumerLogger)

	// Initialize ingestion
	uploadStore := stores.NewUploadStore(fileStorage)
	ingestionService := ingestors.NewUploadIngestionService(uploadStore, scheduler, config.Upload.MaxBytes)

	var inboxWatcher *watchers.InboxWatcher
	if config.Inbox.Dir != "" {
		inboxLogger := appLogger.With().Str(loggers.FieldComponent, "inbox").Logger()
		inboxWatcher, err = watchers.NewInboxWatcher(config.Inbox.Dir, ingestionService, inboxLogger)
		if err != nil {
			backgroundCancel()
			return nil, fmt.Errorf("failed to initialize inbox watcher: %w", err)
		}
	}

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(ingestionService, scheduler, config, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:           config,
		appLogger:        appLogger,
		server:           server,
		dispatchQueue:    dispatchQueue,
		dispatchConsumer: dispatchConsumer,
		inboxWatcher:     inboxWatcher,
		backgroundCtx:    backgroundCtx,
		backgroundCancel: backgroundCancel,
	}, nil
}

// LimitsFromConfig maps the configured display limits onto aggregator limits.
func LimitsFromConfig(analysis configs.AnalysisConfig) aggregators.Limits {
	return aggregators.Limits{
		TopPaths:        analysis.TopNPaths,
		TopIPs:          analysis.TopNIPs,
		TopUserAgents:   analysis.TopNUserAgents,
		AggregatedLimit: analysis.AggregatedLimit,
	}
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting serverlog-analyser on port %d (log_level=%s, file_storage_root_dir=%s, inbox_dir=%q)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.FileStorage.RootDir,
			app.config.Inbox.Dir)

	// start background workers
	app.dispatchConsumer.Start(app.backgroundCtx)
	if app.inboxWatcher != nil {
		app.inboxWatcher.Start(app.backgroundCtx)
	}

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Cancel background work; running jobs observe it as cancellation
	app.backgroundCancel()
	app.appLogger.Info().Msg("Background work cancelled")

	// 3) Wait for background workers to finish
	if app.inboxWatcher != nil {
		app.inboxWatcher.Stop()
	}
	app.dispatchConsumer.Stop()
	app.dispatchQueue.Close()
	app.appLogger.Info().Msg("Background workers stopped")

	return nil
}
