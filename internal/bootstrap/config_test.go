package bootstrap

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itec-institute/portal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseConfig_Defaults(t *testing.T) {
	t.Setenv("NODE_ENV", "")

	cfg, err := parseConfig()
	require.NoError(t, err)

	assert.Equal(t, config.SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, 8*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 10*time.Second, cfg.Auth.LookupTimeout)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.IsDev)
}

func TestParseConfig_Overrides(t *testing.T) {
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_URI", "redis://localhost:6379/2")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("NODE_ENV", "development")

	cfg, err := parseConfig()
	require.NoError(t, err)

	assert.Equal(t, config.SessionStoreRedis, cfg.Session.Store)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.IsDev, "NODE_ENV=development should enable dev mode")
}

func TestParseConfig_InvalidCombination(t *testing.T) {
	t.Setenv("AUTH_DEMO_USERS", "false")
	t.Setenv("AUTH_USERS_FILE", "")

	_, err := parseConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestParseConfig_BadValue(t *testing.T) {
	t.Setenv("SESSION_TTL", "forever")

	_, err := parseConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestInitLogger_LevelAndFormat(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := initLogger(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Same(t, logger, slog.Default())
}
