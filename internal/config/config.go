// Package config provides Viper-based configuration loading for the crawl
// engine.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// EngineConfig holds the simulation knobs.
type EngineConfig struct {
	// Seed makes dice rolls reproducible. 0 draws from crypto/rand.
	Seed uint64 `mapstructure:"seed"`
	// BotMode keeps the player from losing HP.
	BotMode bool `mapstructure:"bot_mode"`
	// ProjectileDelayMs is the pause between projectile animation frames.
	ProjectileDelayMs int `mapstructure:"projectile_delay_ms"`
	// ShotgunDelayMs is the pause after each shotgun impact frame.
	ShotgunDelayMs int `mapstructure:"shotgun_delay_ms"`
	// ScriptInstructionLimit bounds every Lua script execution. 0 uses the
	// scripting default.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
}

// ProjectileDelay returns ProjectileDelayMs as a duration.
func (e EngineConfig) ProjectileDelay() time.Duration {
	return time.Duration(e.ProjectileDelayMs) * time.Millisecond
}

// ShotgunDelay returns ShotgunDelayMs as a duration.
func (e EngineConfig) ShotgunDelay() time.Duration {
	return time.Duration(e.ShotgunDelayMs) * time.Millisecond
}

// ContentConfig locates the YAML and Lua content. An empty path leaves
// that kind of content to the built-in defaults.
type ContentConfig struct {
	SpeciesDir    string `mapstructure:"species_dir"`
	WeaponsDir    string `mapstructure:"weapons_dir"`
	ArmorDir      string `mapstructure:"armor_dir"`
	ConditionsDir string `mapstructure:"conditions_dir"`
	ScriptsDir    string `mapstructure:"scripts_dir"`
	AIDir         string `mapstructure:"ai_dir"`
	LevelFile     string `mapstructure:"level_file"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Engine  EngineConfig  `mapstructure:"engine"`
	Content ContentConfig `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateEngine(c.Engine); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateEngine(e EngineConfig) error {
	var errs []string
	if e.ProjectileDelayMs < 0 {
		errs = append(errs, fmt.Sprintf("engine.projectile_delay_ms must be >= 0 (got %d)", e.ProjectileDelayMs))
	}
	if e.ShotgunDelayMs < 0 {
		errs = append(errs, fmt.Sprintf("engine.shotgun_delay_ms must be >= 0 (got %d)", e.ShotgunDelayMs))
	}
	if e.ScriptInstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("engine.script_instruction_limit must be >= 0 (got %d)", e.ScriptInstructionLimit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// validateContent requires condition scripts to come with the condition
// definitions that name them.
func validateContent(c ContentConfig) error {
	if c.ScriptsDir != "" && c.ConditionsDir == "" {
		return fmt.Errorf("content.scripts_dir requires content.conditions_dir")
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with CRAWL_ prefix
	v.SetEnvPrefix("CRAWL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// Default returns the configuration used when no file is given.
//
// Postcondition: Default().Validate() == nil.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := LoadFromViper(v)
	if err != nil {
		panic(fmt.Sprintf("config: defaults are invalid: %v", err))
	}
	return cfg
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("engine.seed", 0)
	v.SetDefault("engine.bot_mode", false)
	v.SetDefault("engine.projectile_delay_ms", 0)
	v.SetDefault("engine.shotgun_delay_ms", 0)
	v.SetDefault("engine.script_instruction_limit", 0)

	v.SetDefault("content.species_dir", "")
	v.SetDefault("content.weapons_dir", "")
	v.SetDefault("content.armor_dir", "")
	v.SetDefault("content.conditions_dir", "")
	v.SetDefault("content.scripts_dir", "")
	v.SetDefault("content.ai_dir", "")
	v.SetDefault("content.level_file", "")
}
