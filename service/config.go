package service

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/sessionforge/javacheck/checker"
	"github.com/sessionforge/javacheck/session"
)

const envPrefix = "JAVACHECK"

// Config holds initialization parameters for all service subsystems.
// Each subsystem section delegates to that subsystem's config-driven
// constructor.
type Config struct {
	Session  session.Config `json:"session" mapstructure:"session"`
	Checker  checker.Config `json:"checker" mapstructure:"checker"`
	LogLevel string         `json:"log_level" mapstructure:"log_level"`
	// Observer names the registered observer wired into all subsystems:
	// "slog" (default), "noop", "metrics", or "slog+metrics".
	Observer string `json:"observer" mapstructure:"observer"`
}

// DefaultConfig returns a Config with sensible defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Session:  session.DefaultConfig(),
		Checker:  checker.DefaultConfig(),
		LogLevel: "info",
		Observer: "slog",
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Session.Merge(&source.Session)
	c.Checker.Merge(&source.Checker)

	if source.LogLevel != "" {
		c.LogLevel = source.LogLevel
	}
	if source.Observer != "" {
		c.Observer = source.Observer
	}
}

// LoadConfig reads an optional config file and JAVACHECK_* environment
// overrides on top of the defaults. Keys nest with dots in the file and
// underscores in the environment (session.base_dir ↔
// JAVACHECK_SESSION_BASE_DIR).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("session.base_dir", defaults.Session.BaseDir)
	v.SetDefault("session.max_idle", defaults.Session.MaxIdle)
	v.SetDefault("session.sweep_interval", defaults.Session.SweepInterval)
	v.SetDefault("session.store", defaults.Session.Store)
	v.SetDefault("session.badger_path", defaults.Session.BadgerPath)
	v.SetDefault("checker.compiler", defaults.Checker.Compiler)
	v.SetDefault("checker.timeout", defaults.Checker.Timeout)
	v.SetDefault("checker.max_concurrent", defaults.Checker.MaxConcurrent)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("observer", defaults.Observer)
}
