package formdesk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "Untitled Form", cfg.Builder.DefaultFormName)
	assert.Equal(t, "Current User", cfg.Submission.DefaultSubmittedBy)
	assert.True(t, cfg.Summary.Enabled)
	assert.Equal(t, 15*time.Second, cfg.Summary.Timeout)
	assert.False(t, cfg.Metrics.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		field string
	}{
		{"empty form name", func(c *Config) { c.Builder.DefaultFormName = "" }, "builder.defaultFormName"},
		{"empty submitter", func(c *Config) { c.Submission.DefaultSubmittedBy = "" }, "submission.defaultSubmittedBy"},
		{"zero threshold", func(c *Config) { c.Summary.FailureThreshold = 0 }, "summary.failureThreshold"},
		{"zero timeout", func(c *Config) { c.Summary.Timeout = 0 }, "summary.timeout"},
		{"zero prompt length", func(c *Config) { c.Summary.MaxPromptLength = 0 }, "summary.maxPromptLength"},
		{"metrics without namespace", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Namespace = "" }, "metrics.namespace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(cfg)

			err := cfg.Validate()
			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestConfig_ValidateSkipsDisabledSummary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Summary.Enabled = false
	cfg.Summary.Timeout = 0
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("FORMDESK_DEFAULT_FORM_NAME", "New Report")
	t.Setenv("FORMDESK_SUBMITTED_BY", "Field Tech")
	t.Setenv("FORMDESK_SEED_DIR", "/srv/forms")
	t.Setenv("FORMDESK_SEED_STRICT", "true")
	t.Setenv("FORMDESK_SUMMARY_TIMEOUT_SECONDS", "4")
	t.Setenv("FORMDESK_METRICS_ENABLED", "not-a-bool")

	cfg := LoadConfigFromEnv()

	assert.Equal(t, "New Report", cfg.Builder.DefaultFormName)
	assert.Equal(t, "Field Tech", cfg.Submission.DefaultSubmittedBy)
	assert.Equal(t, "/srv/forms", cfg.Seed.Directory)
	assert.True(t, cfg.Seed.Strict)
	assert.Equal(t, 4*time.Second, cfg.Summary.Timeout)
	assert.False(t, cfg.Metrics.Enabled)
}
