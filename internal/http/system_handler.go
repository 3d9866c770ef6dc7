package http

import (
	"net/http"

	"serverlog-analyser/internal/shared/configs"
)

// FrontendConfig is the subset of settings a browser client renders with.
type FrontendConfig struct {
	DeleteUploadsAfterProcessing bool  `json:"delete_uploads_after_processing"`
	ShowVariantsByDefault        bool  `json:"show_variants_by_default"`
	TopNIPs                      int   `json:"top_n_ips"`
	TopNPaths                    int   `json:"top_n_paths"`
	TopNUserAgents               int   `json:"top_n_user_agents"`
	AggregatedLimit              int   `json:"aggregated_limit"`
	MaxURLTreeDepth              int   `json:"max_url_tree_depth"`
	MaxUploadBytes               int64 `json:"max_upload_bytes"`
}

func NewFrontendConfig(analysis configs.AnalysisConfig, upload configs.UploadConfig) FrontendConfig {
	return FrontendConfig{
		DeleteUploadsAfterProcessing: analysis.DeleteUploadsAfterProcessing,
		ShowVariantsByDefault:        analysis.ShowVariantsByDefault,
		TopNIPs:                      analysis.TopNIPs,
		TopNPaths:                    analysis.TopNPaths,
		TopNUserAgents:               analysis.TopNUserAgents,
		AggregatedLimit:              analysis.AggregatedLimit,
		MaxURLTreeDepth:              analysis.MaxURLTreeDepth,
		MaxUploadBytes:               upload.MaxBytes,
	}
}

type healthHandler struct{}

func NewHealthHandler() AppHttpHandler {
	return healthHandler{}
}

func (healthHandler) Handle(w http.ResponseWriter, _ *http.Request) error {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	return nil
}

type configHandler struct {
	frontend FrontendConfig
}

func NewConfigHandler(frontend FrontendConfig) AppHttpHandler {
	return &configHandler{frontend: frontend}
}

func (h *configHandler) Handle(w http.ResponseWriter, _ *http.Request) error {
	writeJSON(w, http.StatusOK, h.frontend)
	return nil
}
