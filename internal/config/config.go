package config

import (
	"os"
	"strconv"
	"time"

	"esglens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Upload    UploadConfig
	Dashboard DashboardConfig
	Session   SessionConfig
	Logging   LoggingConfig
	Profiling ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// UploadConfig bounds dataset ingestion
type UploadConfig struct {
	MaxBytes      int64
	MaxConcurrent int64
}

// DashboardConfig holds presentation defaults for the recompute pass
type DashboardConfig struct {
	// CategoryDefaultCap limits the default industry selection; 0 selects all.
	CategoryDefaultCap int
	PreviewRows        int
	HistogramBins      int
}

// SessionConfig holds in-memory session settings
type SessionConfig struct {
	// TTL is the idle expiry; 0 keeps sessions until deleted.
	TTL time.Duration
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level string
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Default returns the configuration used when no environment overrides exist
func Default() *Config {
	return &Config{
		Server:    ServerConfig{Port: "8080", GinMode: "debug"},
		Upload:    UploadConfig{MaxBytes: 32 << 20, MaxConcurrent: 4},
		Dashboard: DashboardConfig{CategoryDefaultCap: 5, PreviewRows: 10, HistogramBins: 30},
		Session:   SessionConfig{TTL: 2 * time.Hour},
		Logging:   LoggingConfig{Level: "INFO"},
		Profiling: ProfilingConfig{Port: "6060", Enabled: false},
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	def := Default()
	config := &Config{
		Server:    loadServerConfig(def.Server),
		Upload:    loadUploadConfig(def.Upload),
		Dashboard: loadDashboardConfig(def.Dashboard),
		Session:   loadSessionConfig(def.Session),
		Logging:   LoggingConfig{Level: getEnvOrDefault("LOG_LEVEL", def.Logging.Level)},
		Profiling: loadProfilingConfig(def.Profiling),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig(def ServerConfig) ServerConfig {
	return ServerConfig{
		Port:    getEnvOrDefault("PORT", def.Port),
		GinMode: getEnvOrDefault("GIN_MODE", def.GinMode),
	}
}

func loadUploadConfig(def UploadConfig) UploadConfig {
	return UploadConfig{
		MaxBytes:      int64(getEnvIntOrDefault("MAX_UPLOAD_MB", int(def.MaxBytes>>20))) << 20,
		MaxConcurrent: int64(getEnvIntOrDefault("MAX_CONCURRENT_UPLOADS", int(def.MaxConcurrent))),
	}
}

func loadDashboardConfig(def DashboardConfig) DashboardConfig {
	return DashboardConfig{
		CategoryDefaultCap: getEnvIntOrDefault("CATEGORY_DEFAULT_CAP", def.CategoryDefaultCap),
		PreviewRows:        getEnvIntOrDefault("PREVIEW_ROWS", def.PreviewRows),
		HistogramBins:      getEnvIntOrDefault("HISTOGRAM_BINS", def.HistogramBins),
	}
}

func loadSessionConfig(def SessionConfig) SessionConfig {
	return SessionConfig{
		TTL: getEnvDurationOrDefault("SESSION_TTL", def.TTL),
	}
}

func loadProfilingConfig(def ProfilingConfig) ProfilingConfig {
	return ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", def.Port),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", def.Enabled),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Upload.MaxBytes <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if config.Upload.MaxConcurrent <= 0 {
		return errors.ConfigInvalid("MAX_CONCURRENT_UPLOADS must be positive")
	}
	if config.Dashboard.CategoryDefaultCap < 0 {
		return errors.ConfigInvalid("CATEGORY_DEFAULT_CAP cannot be negative")
	}
	if config.Dashboard.PreviewRows < 0 {
		return errors.ConfigInvalid("PREVIEW_ROWS cannot be negative")
	}
	if config.Dashboard.HistogramBins <= 0 {
		return errors.ConfigInvalid("HISTOGRAM_BINS must be positive")
	}
	if config.Session.TTL < 0 {
		return errors.ConfigInvalid("SESSION_TTL cannot be negative")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
