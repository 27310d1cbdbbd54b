package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Content: ContentConfig{JobsDir: "content/jobs"},
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
content:
  jobs_dir: /srv/jobs
logging:
  level: debug
  format: json
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/jobs", cfg.Content.JobsDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "content/jobs", cfg.Content.JobsDir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ODDJOBS_CONTENT_JOBS_DIR", "/env/jobs")
	t.Setenv("ODDJOBS_LOGGING_LEVEL", "warn")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/env/jobs", cfg.Content.JobsDir)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestValidation_EmptyJobsDir(t *testing.T) {
	cfg := validConfig()
	cfg.Content.JobsDir = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content.jobs_dir")
}

func TestValidation_InvalidLogging(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	cfg.Logging.Format = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestValidation_CollectsAllViolations(t *testing.T) {
	cfg := Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content.jobs_dir")
	assert.Contains(t, err.Error(), "logging.level")
}

// Property: any level outside the accepted set is rejected.
func TestProperty_LoggingLevel(t *testing.T) {
	valid := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	rapid.Check(t, func(rt *rapid.T) {
		level := rapid.StringMatching(`[a-z]{0,8}`).Draw(rt, "level")
		cfg := validConfig()
		cfg.Logging.Level = level
		err := cfg.Validate()
		if valid[level] && err != nil {
			rt.Fatalf("level %q rejected: %v", level, err)
		}
		if !valid[level] && err == nil {
			rt.Fatalf("level %q accepted", level)
		}
	})
}
