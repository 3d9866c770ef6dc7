package configs

// Config holds all configuration for the application.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	FileStorage FileStorageConfig `mapstructure:"file_storage" validate:"required"`
	Analysis    AnalysisConfig    `mapstructure:"analysis" validate:"required"`
	Dispatch    DispatchConfig    `mapstructure:"dispatch" validate:"required"`
	Upload      UploadConfig      `mapstructure:"upload" validate:"required"`
	Inbox       InboxConfig       `mapstructure:"inbox"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,loglevel"`
}

// FileStorageConfig holds file storage configuration.
type FileStorageConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
}

// AnalysisConfig holds the display limits and the post-run cleanup policy.
type AnalysisConfig struct {
	TopNIPs                      int  `mapstructure:"top_n_ips" validate:"required,min=1"`
	TopNPaths                    int  `mapstructure:"top_n_paths" validate:"required,min=1"`
	TopNUserAgents               int  `mapstructure:"top_n_user_agents" validate:"required,min=1"`
	AggregatedLimit              int  `mapstructure:"aggregated_limit" validate:"required,min=1"`
	MaxURLTreeDepth              int  `mapstructure:"max_url_tree_depth" validate:"required,min=1"`
	MaxDedicatedWorkers          int  `mapstructure:"max_dedicated_workers" validate:"required,min=1"`
	DeleteUploadsAfterProcessing bool `mapstructure:"delete_uploads_after_processing"`
	ShowVariantsByDefault        bool `mapstructure:"show_variants_by_default"`
}

// DispatchConfig sizes the partitioned queue that feeds the background workers.
type DispatchConfig struct {
	Partitions int `mapstructure:"partitions" validate:"required,min=1,max=256"`
	Buffer     int `mapstructure:"buffer" validate:"required,min=1"`
}

// UploadConfig holds upload limits. A zero rate limit disables limiting.
type UploadConfig struct {
	MaxBytes           int64   `mapstructure:"max_bytes" validate:"required,min=1"`
	RateLimitPerSecond float64 `mapstructure:"rate_limit_per_second" validate:"min=0"`
	RateLimitBurst     int     `mapstructure:"rate_limit_burst" validate:"min=0"`
}

// InboxConfig enables the inbox directory watcher when Dir is set.
type InboxConfig struct {
	Dir string `mapstructure:"dir"`
}
