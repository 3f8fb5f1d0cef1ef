package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, defaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.SubmitTimeout)
	assert.Equal(t, 30*time.Second, cfg.API.DownloadTimeout)
	assert.Equal(t, "reports", cfg.Report.OutputDir)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_EnvOverridesBaseURL(t *testing.T) {
	t.Setenv("VIATICOS_API_URL", "http://localhost:3002/api")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3002/api", cfg.API.BaseURL)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "api:\n  base_url: http://example.com/api\n  submit_timeout: 5s\nlogger:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.SubmitTimeout)
	assert.Equal(t, "debug", cfg.Logger.Level)
	// Untouched values keep their defaults.
	assert.Equal(t, 30*time.Second, cfg.API.DownloadTimeout)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: http://file.example/api\n"), 0644))
	t.Setenv("VIATICOS_API_URL", "http://env.example/api")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env.example/api", cfg.API.BaseURL)
}

func TestLoad_RejectsInvalidBaseURL(t *testing.T) {
	t.Setenv("VIATICOS_API_URL", "not a url")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url")
}
