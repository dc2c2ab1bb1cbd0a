package formdesk

import (
	"os"
	"strconv"
	"time"
)

// Config consolidates settings for the builder, fill and review flows
type Config struct {
	Builder    BuilderConfig    `json:"builder"`
	Submission SubmissionConfig `json:"submission"`
	Seed       SeedConfig       `json:"seed"`
	Summary    SummaryConfig    `json:"summary"`
	Logging    LoggingConfig    `json:"logging"`
	Metrics    MetricsConfig    `json:"metrics"`
}

// BuilderConfig contains form builder settings
type BuilderConfig struct {
	DefaultFormName string `json:"defaultFormName"`
}

// SubmissionConfig contains submission settings
type SubmissionConfig struct {
	DefaultSubmittedBy string `json:"defaultSubmittedBy"`
}

// SeedConfig points at saved definitions loaded at start-up
type SeedConfig struct {
	Directory string `json:"directory"`
	// Strict makes a malformed document fail the load instead of being skipped.
	Strict bool `json:"strict"`
}

// SummaryConfig contains AI summary settings
type SummaryConfig struct {
	Enabled          bool          `json:"enabled"`
	Timeout          time.Duration `json:"timeout"`
	FailureThreshold int           `json:"failureThreshold"`
	FailureWindow    time.Duration `json:"failureWindow"`
	OpenDuration     time.Duration `json:"openDuration"`
	MaxPromptLength  int           `json:"maxPromptLength"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level       string `json:"level"`
	Development bool   `json:"development"`
}

// MetricsConfig contains metrics collection settings
type MetricsConfig struct {
	Enabled   bool   `json:"enabled"`
	Namespace string `json:"namespace"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Builder: BuilderConfig{
			DefaultFormName: "Untitled Form",
		},
		Submission: SubmissionConfig{
			DefaultSubmittedBy: "Current User",
		},
		Summary: SummaryConfig{
			Enabled:          true,
			Timeout:          15 * time.Second,
			FailureThreshold: 3,
			FailureWindow:    1 * time.Minute,
			OpenDuration:     30 * time.Second,
			MaxPromptLength:  8000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:   false,
			Namespace: "formdesk",
		},
	}
}

// LoadConfigFromEnv overlays FORMDESK_* environment variables onto DefaultConfig.
func LoadConfigFromEnv() *Config {
	cfg := DefaultConfig()
	cfg.Builder.DefaultFormName = getEnv("FORMDESK_DEFAULT_FORM_NAME", cfg.Builder.DefaultFormName)
	cfg.Submission.DefaultSubmittedBy = getEnv("FORMDESK_SUBMITTED_BY", cfg.Submission.DefaultSubmittedBy)
	cfg.Seed.Directory = getEnv("FORMDESK_SEED_DIR", cfg.Seed.Directory)
	cfg.Seed.Strict = getEnvBool("FORMDESK_SEED_STRICT", cfg.Seed.Strict)
	cfg.Summary.Enabled = getEnvBool("FORMDESK_SUMMARY_ENABLED", cfg.Summary.Enabled)
	cfg.Summary.Timeout = time.Duration(getEnvInt("FORMDESK_SUMMARY_TIMEOUT_SECONDS", int(cfg.Summary.Timeout/time.Second))) * time.Second
	cfg.Logging.Level = getEnv("FORMDESK_LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Development = getEnvBool("FORMDESK_LOG_DEVELOPMENT", cfg.Logging.Development)
	cfg.Metrics.Enabled = getEnvBool("FORMDESK_METRICS_ENABLED", cfg.Metrics.Enabled)
	return cfg
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Builder.DefaultFormName == "" {
		return &ConfigError{Field: "builder.defaultFormName", Message: "must not be empty"}
	}

	if c.Submission.DefaultSubmittedBy == "" {
		return &ConfigError{Field: "submission.defaultSubmittedBy", Message: "must not be empty"}
	}

	if c.Summary.Enabled {
		if c.Summary.FailureThreshold <= 0 {
			return &ConfigError{Field: "summary.failureThreshold", Message: "must be greater than 0"}
		}
		if c.Summary.Timeout <= 0 {
			return &ConfigError{Field: "summary.timeout", Message: "must be greater than 0"}
		}
		if c.Summary.MaxPromptLength <= 0 {
			return &ConfigError{Field: "summary.maxPromptLength", Message: "must be greater than 0"}
		}
	}

	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return &ConfigError{Field: "metrics.namespace", Message: "must not be empty when metrics are enabled"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ConfigError) Error() string {
	return "config validation error for field '" + e.Field + "': " + e.Message
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
