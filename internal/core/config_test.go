package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwise-ai/taskwise/pkg/models"
)

func TestLoadSettingsDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadSettings(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings().AI.Model, cfg.AI.Model)
	assert.True(t, cfg.Notifications.Enabled)
	assert.Equal(t, time.Minute, cfg.Notifications.Interval)
}

func TestSettingsRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := models.DefaultSettings()
	cfg.Notifications.Enabled = false
	cfg.AI.Model = "gpt-4.1"
	cfg.DefaultSort = "deadline"
	require.NoError(t, SaveSettings(dir, cfg))

	loaded, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.False(t, loaded.Notifications.Enabled)
	assert.Equal(t, "gpt-4.1", loaded.AI.Model)
	assert.Equal(t, "deadline", loaded.DefaultSort)
}

func TestLoadSettingsAPIKeyFromEnv(t *testing.T) {
	t.Setenv("TASKWISE_API_KEY", "tk-secret")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := LoadSettings(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "tk-secret", cfg.AI.APIKey)
}

func TestSaveSettingsDoesNotPersistEnvKey(t *testing.T) {
	t.Setenv("TASKWISE_API_KEY", "tk-secret")
	dir := t.TempDir()

	cfg, err := LoadSettings(dir)
	require.NoError(t, err)
	require.NoError(t, SaveSettings(dir, cfg))

	raw, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "tk-secret")
}

func TestResolveBasePathEnvOverride(t *testing.T) {
	t.Setenv("TASKWISE_HOME", "/tmp/taskwise-test")
	assert.Equal(t, "/tmp/taskwise-test", ResolveBasePath())
}
