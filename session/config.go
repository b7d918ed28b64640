package session

import (
	"fmt"
	"time"
)

// Repository backend names accepted in Config.Store.
const (
	StoreMemory = "memory"
	StoreBadger = "badger"
)

const (
	defaultBaseDir       = "/tmp/javacheck-workspaces"
	defaultMaxIdle       = time.Hour
	defaultSweepInterval = 5 * time.Minute
)

// Config holds session subsystem parameters.
type Config struct {
	// BaseDir is the directory under which every workspace tree is created.
	BaseDir string `json:"base_dir" mapstructure:"base_dir"`
	// MaxIdle is the idle threshold after which a session is swept.
	MaxIdle time.Duration `json:"max_idle" mapstructure:"max_idle"`
	// SweepInterval is how often the background sweeper runs.
	SweepInterval time.Duration `json:"sweep_interval" mapstructure:"sweep_interval"`
	// Store selects the repository backend: "memory" (default) or "badger".
	Store string `json:"store" mapstructure:"store"`
	// BadgerPath is the database directory for the badger backend.
	// Empty means in-memory, which only makes sense in tests.
	BadgerPath string `json:"badger_path" mapstructure:"badger_path"`
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		BaseDir:       defaultBaseDir,
		MaxIdle:       defaultMaxIdle,
		SweepInterval: defaultSweepInterval,
		Store:         StoreMemory,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.BaseDir != "" {
		c.BaseDir = source.BaseDir
	}
	if source.MaxIdle > 0 {
		c.MaxIdle = source.MaxIdle
	}
	if source.SweepInterval > 0 {
		c.SweepInterval = source.SweepInterval
	}
	if source.Store != "" {
		c.Store = source.Store
	}
	if source.BadgerPath != "" {
		c.BadgerPath = source.BadgerPath
	}
}

// NewRepository creates the repository backend selected by the config.
func NewRepository(cfg *Config) (Repository, error) {
	switch cfg.Store {
	case "", StoreMemory:
		return NewMemoryRepository(), nil
	case StoreBadger:
		return NewBadgerRepository(cfg.BadgerPath)
	default:
		return nil, fmt.Errorf("unknown session store: %s", cfg.Store)
	}
}
