package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/crawl/internal/config"
)

func TestNewLogger_JSON(t *testing.T) {
	cfg := config.LoggingConfig{Level: "info", Format: "json"}
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewLogger_Console(t *testing.T) {
	cfg := config.LoggingConfig{Level: "debug", Format: "console"}
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	cfg := config.LoggingConfig{Level: "trace", Format: "json"}
	_, err := NewLogger(cfg)
	assert.Error(t, err)
}

func TestNewLogger_InvalidFormat(t *testing.T) {
	cfg := config.LoggingConfig{Level: "info", Format: "xml"}
	_, err := NewLogger(cfg)
	assert.Error(t, err)
}

func TestNewLogger_AllLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := config.LoggingConfig{Level: level, Format: "json"}
		logger, err := NewLogger(cfg)
		require.NoError(t, err, "level %q should be valid", level)
		assert.NotNil(t, logger)
	}
}

func TestNewLoggerTo_JSONEntry(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLoggerTo(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("engine started", EngineFields(config.EngineConfig{Seed: 7, BotMode: true, ProjectileDelayMs: 30})...)
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "exactly one JSON line expected, got %q", buf.String())
	assert.Equal(t, "engine started", entry["msg"])
	assert.Equal(t, "crawl", entry["logger"])
	assert.Equal(t, float64(7), entry["seed"])
	assert.Equal(t, true, entry["bot_mode"])
	assert.Equal(t, "30ms", entry["projectile_delay"])
}

func TestNewLoggerTo_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLoggerTo(config.LoggingConfig{Level: "debug", Format: "console"}, &buf)
	require.NoError(t, err)

	logger.Debug("rolled", EngineFields(config.Default().Engine)...)
	require.NoError(t, logger.Sync())
	assert.Contains(t, buf.String(), "rolled")
	assert.Contains(t, buf.String(), "DEBUG")
}
