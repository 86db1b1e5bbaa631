package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Engine: EngineConfig{
			Seed:              42,
			ProjectileDelayMs: 25,
			ShotgunDelayMs:    10,
		},
		Content: ContentConfig{
			SpeciesDir:    "content/species",
			ConditionsDir: "content/conditions",
			ScriptsDir:    "content/scripts",
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, uint64(0), cfg.Engine.Seed)
	assert.Empty(t, cfg.Content.SpeciesDir)
}

func TestEngineDelays(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, 25*time.Millisecond, cfg.Engine.ProjectileDelay())
	assert.Equal(t, 10*time.Millisecond, cfg.Engine.ShotgunDelay())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
engine:
  seed: 1234
  bot_mode: true
  projectile_delay_ms: 15
content:
  species_dir: content/species
  weapons_dir: content/weapons
  ai_dir: content/ai
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, uint64(1234), cfg.Engine.Seed)
	assert.True(t, cfg.Engine.BotMode)
	assert.Equal(t, 15*time.Millisecond, cfg.Engine.ProjectileDelay())
	assert.Equal(t, time.Duration(0), cfg.Engine.ShotgunDelay())
	assert.Equal(t, "content/weapons", cfg.Content.WeaponsDir)
	assert.Equal(t, "content/ai", cfg.Content.AIDir)
	assert.Empty(t, cfg.Content.ArmorDir)
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  seed: 1\n"), 0644))
	t.Setenv("CRAWL_ENGINE_SEED", "99")
	t.Setenv("CRAWL_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(99), cfg.Engine.Seed)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  shotgun_delay_ms: -5\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine.shotgun_delay_ms")
}

func TestLoadFromViper(t *testing.T) {
	v := viper.New()
	v.Set("logging.level", "error")
	v.Set("logging.format", "json")
	v.Set("engine.bot_mode", true)

	cfg, err := LoadFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.True(t, cfg.Engine.BotMode)
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateEngine(t *testing.T) {
	cfg := validConfig()
	cfg.Engine.ProjectileDelayMs = -1
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Engine.ScriptInstructionLimit = -1
	assert.Error(t, cfg.Validate())
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "loud"
	cfg.Engine.ShotgunDelayMs = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "engine.shotgun_delay_ms")
}

func TestValidateContent_ScriptsNeedConditions(t *testing.T) {
	cfg := validConfig()
	cfg.Content.ConditionsDir = ""
	assert.Error(t, cfg.Validate())

	cfg.Content.ScriptsDir = ""
	assert.NoError(t, cfg.Validate())
}

// Property-based tests

func TestPropertyNonNegativeDelaysAccepted(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := validConfig()
		cfg.Engine.ProjectileDelayMs = rapid.IntRange(0, 10_000).Draw(t, "projectile")
		cfg.Engine.ShotgunDelayMs = rapid.IntRange(0, 10_000).Draw(t, "shotgun")
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid delays rejected: %v", err)
		}
		if got := cfg.Engine.ProjectileDelay(); got != time.Duration(cfg.Engine.ProjectileDelayMs)*time.Millisecond {
			t.Fatalf("projectile delay %v", got)
		}
	})
}

func TestPropertyNegativeDelaysRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := validConfig()
		cfg.Engine.ProjectileDelayMs = rapid.IntRange(-10_000, -1).Draw(t, "projectile")
		if cfg.Validate() == nil {
			t.Fatalf("negative delay %d accepted", cfg.Engine.ProjectileDelayMs)
		}
	})
}
