package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, StoreFirestore, cfg.StoreDriver)
	assert.Equal(t, 24*time.Hour, cfg.EventDedupeTTL)
	assert.Equal(t, 5, cfg.TaskMaxRetry)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "STORE_DRIVER: memory\nTASK_MAX_RETRY: 2\nEVENT_DEDUPE_TTL: 1h\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("ENV", "production")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, 2, cfg.TaskMaxRetry)
	assert.Equal(t, time.Hour, cfg.EventDedupeTTL)
	assert.True(t, cfg.IsProduction())
}
