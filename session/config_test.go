package session_test

import (
	"testing"
	"time"

	"github.com/sessionforge/javacheck/session"
)

func TestDefaultConfig(t *testing.T) {
	cfg := session.DefaultConfig()

	if cfg.BaseDir == "" {
		t.Error("default base dir is empty")
	}
	if cfg.MaxIdle != time.Hour {
		t.Errorf("default max idle = %v, want 1h", cfg.MaxIdle)
	}
	if cfg.Store != session.StoreMemory {
		t.Errorf("default store = %q, want %q", cfg.Store, session.StoreMemory)
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := session.DefaultConfig()
	source := session.Config{
		BaseDir: "/custom/dir",
		MaxIdle: 10 * time.Minute,
	}

	cfg.Merge(&source)

	if cfg.BaseDir != "/custom/dir" {
		t.Errorf("base dir = %q, want %q", cfg.BaseDir, "/custom/dir")
	}
	if cfg.MaxIdle != 10*time.Minute {
		t.Errorf("max idle = %v, want 10m", cfg.MaxIdle)
	}
	// Unset fields keep their defaults.
	if cfg.SweepInterval != 5*time.Minute {
		t.Errorf("sweep interval = %v, want 5m", cfg.SweepInterval)
	}
	if cfg.Store != session.StoreMemory {
		t.Errorf("store = %q, want %q", cfg.Store, session.StoreMemory)
	}
}

func TestNewRepository_FromConfig(t *testing.T) {
	cfg := session.DefaultConfig()

	repo, err := session.NewRepository(&cfg)
	if err != nil {
		t.Fatalf("NewRepository failed: %v", err)
	}
	if repo == nil {
		t.Fatal("NewRepository returned nil")
	}
}

func TestNewRepository_UnknownStore(t *testing.T) {
	cfg := session.DefaultConfig()
	cfg.Store = "etcd"

	if _, err := session.NewRepository(&cfg); err == nil {
		t.Error("expected error for unknown store")
	}
}
