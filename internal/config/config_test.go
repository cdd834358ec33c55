package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeTempConfig(t, `{
		"api_key": "test-key",
		"database_url": "postgres://localhost/pluto",
		"port": 9090,
		"call_timeout_sec": 45,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 45, cfg.CallTimeoutSec)
	assert.True(t, cfg.Verbose)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeTempConfig(t, `{not json`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate_BadPort(t *testing.T) {
	cfg := &Config{Port: 70000}
	assert.Error(t, cfg.Validate())
}

func TestValidate_MissingResumeFile(t *testing.T) {
	cfg := &Config{Resume: filepath.Join(t.TempDir(), "missing.txt")}
	assert.Error(t, cfg.Validate())
}

func TestValidate_ScoringOverridesNeedVersion(t *testing.T) {
	cfg := &Config{Scoring: &ScoringOverrides{
		Weights: map[string]float64{"technical_skills": 0.5},
	}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{APIKey: "explicit"}
	merged := cfg.MergeWithDefaults(Config{
		APIKey:      "default-key",
		DatabaseURL: "postgres://default",
		Port:        8080,
	})

	assert.Equal(t, "explicit", merged.APIKey)
	assert.Equal(t, "postgres://default", merged.DatabaseURL)
	assert.Equal(t, 8080, merged.Port)
}
