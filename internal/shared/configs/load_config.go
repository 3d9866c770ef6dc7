package configs

import (
	"fmt"
	"strings"

	"serverlog-analyser/internal/shared/validators"

	"github.com/spf13/viper"
)

const envPrefix = "SLA"

// legacyEnvNames maps config keys to the bare environment variable names operators already use.
var legacyEnvNames = map[string]string{
	"analysis.delete_uploads_after_processing": "DELETE_UPLOADS_AFTER_PROCESSING",
	"analysis.show_variants_by_default":        "SHOW_VARIANTS_BY_DEFAULT",
	"analysis.top_n_ips":                       "TOP_N_IPS",
	"analysis.top_n_paths":                     "TOP_N_PATHS",
	"analysis.aggregated_limit":                "AGGREGATED_LIMIT",
	"analysis.max_url_tree_depth":              "MAX_URL_TREE_DEPTH",
}

// LoadConfig reads configuration from file, applies environment overrides and validates it.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	setDefaults(v)

	// SLA_ANALYSIS_TOP_N_IPS overrides analysis.top_n_ips
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacyName := range legacyEnvNames {
		envName := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envName, legacyName); err != nil {
			return nil, fmt.Errorf("failed to bind env for %q: %w", key, err)
		}
	}

	// Read from file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	validate := validators.New()
	if err := validate.Struct(cfg); err != nil {
		var validationErrors []string
		if ve, ok := err.(validators.ValidationErrors); ok {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}
	return nil
}

// Default returns the configuration used when no file is involved, e.g. by the CLI.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              8000,
			ReadHeaderTimeout: 5,
			ReadTimeout:       300,
			WriteTimeout:      30,
			IdleTimeout:       60,
		},
		Log:         LogConfig{Level: "info"},
		FileStorage: FileStorageConfig{RootDir: "./data"},
		Analysis: AnalysisConfig{
			TopNIPs:                      20,
			TopNPaths:                    20,
			TopNUserAgents:               10,
			AggregatedLimit:              500,
			MaxURLTreeDepth:              10,
			MaxDedicatedWorkers:          4,
			DeleteUploadsAfterProcessing: true,
			ShowVariantsByDefault:        false,
		},
		Dispatch: DispatchConfig{Partitions: 8, Buffer: 64},
		Upload: UploadConfig{
			MaxBytes:           2 * 1024 * 1024 * 1024,
			RateLimitPerSecond: 0,
			RateLimitBurst:     0,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("analysis.top_n_ips", d.Analysis.TopNIPs)
	v.SetDefault("analysis.top_n_paths", d.Analysis.TopNPaths)
	v.SetDefault("analysis.top_n_user_agents", d.Analysis.TopNUserAgents)
	v.SetDefault("analysis.aggregated_limit", d.Analysis.AggregatedLimit)
	v.SetDefault("analysis.max_url_tree_depth", d.Analysis.MaxURLTreeDepth)
	v.SetDefault("analysis.max_dedicated_workers", d.Analysis.MaxDedicatedWorkers)
	v.SetDefault("analysis.delete_uploads_after_processing", d.Analysis.DeleteUploadsAfterProcessing)
	v.SetDefault("analysis.show_variants_by_default", d.Analysis.ShowVariantsByDefault)
	v.SetDefault("dispatch.partitions", d.Dispatch.Partitions)
	v.SetDefault("dispatch.buffer", d.Dispatch.Buffer)
	v.SetDefault("upload.max_bytes", d.Upload.MaxBytes)
	v.SetDefault("upload.rate_limit_per_second", d.Upload.RateLimitPerSecond)
	v.SetDefault("upload.rate_limit_burst", d.Upload.RateLimitBurst)
	v.SetDefault("inbox.dir", "")
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	// Build field path (e.g., "server.port")
	if e.StructNamespace() != "" {
		// Extract nested field path (e.g., "Config.Server.Port" -> "server.port")
		parts := strings.Split(e.StructNamespace(), ".")
		if len(parts) >= 2 {
			// Skip "Config" prefix, convert to lowercase with dots
			fieldPath := strings.ToLower(strings.Join(parts[1:], "."))
			field = fieldPath
		}
	}

	var msg string
	switch tag {
	case "required":
		msg = fmt.Sprintf("%s (required)", field)
	case "min":
		msg = fmt.Sprintf("%s (min=%s)", field, e.Param())
	case "max":
		msg = fmt.Sprintf("%s (max=%s)", field, e.Param())
	case validators.TagLogLevel:
		msg = fmt.Sprintf("%s (unknown log level %q)", field, e.Value())
	case "oneof":
		msg = fmt.Sprintf("%s (oneof=%s)", field, e.Param())
	default:
		msg = fmt.Sprintf("%s (%s)", field, tag)
	}

	return msg
}
