package http

import (
	"net/http"

	"serverlog-analyser/internal/ingestors"
	"serverlog-analyser/internal/jobs"
	"serverlog-analyser/internal/shared/configs"
	"serverlog-analyser/internal/shared/loggers"
	"serverlog-analyser/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(ingestionService ingestors.UploadIngestionService, scheduler jobs.Scheduler, cfg *configs.Config, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	uploadLimiter := newClientRateLimiter(cfg.Upload.RateLimitPerSecond, cfg.Upload.RateLimitBurst)

	// Initialize handlers
	uploadHandler := NewUploadHandler(ingestionService)
	listJobsHandler := NewListJobsHandler(scheduler)
	getJobHandler := NewGetJobHandler(scheduler)
	cancelJobHandler := NewCancelJobHandler(scheduler)
	configHandler := NewConfigHandler(NewFrontendConfig(cfg.Analysis, cfg.Upload))

	// Routes
	router.With(mwRateLimit(uploadLimiter)).Post("/upload", errorHandlingAdapter(uploadHandler))
	router.Get("/jobs", errorHandlingAdapter(listJobsHandler))
	router.Get("/jobs/{"+urlParamJobID+"}", errorHandlingAdapter(getJobHandler))
	router.Post("/jobs/{"+urlParamJobID+"}/cancel", errorHandlingAdapter(cancelJobHandler))
	router.Get("/api/health", errorHandlingAdapter(NewHealthHandler()))
	router.Get("/api/config", errorHandlingAdapter(configHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
