package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/sessionforge/javacheck/observability"
)

// Manager orchestrates the session registry, path resolution, and workspace
// file operations. The repository lock is held only for table lookups and
// mutations, never across file I/O, so operations on different sessions are
// fully independent. Concurrent writers to the same file within one session
// race at the file-system level; the Manager adds no per-session write lock.
type Manager struct {
	baseDir  string
	repo     Repository
	resolver PathResolver
	observer observability.Observer

	hooks hooks
}

// Option configures a Manager after config-driven initialization.
type Option func(*Manager)

// WithRepository overrides the config-created repository backend.
func WithRepository(r Repository) Option {
	return func(m *Manager) { m.repo = r }
}

// WithResolver overrides the default MainSourceResolver. One resolver
// governs all relative-path resolutions for the lifetime of the Manager.
func WithResolver(r PathResolver) Option {
	return func(m *Manager) { m.resolver = r }
}

// WithObserver overrides the default NoOpObserver.
func WithObserver(o observability.Observer) Option {
	return func(m *Manager) { m.observer = o }
}

// NewManager creates a Manager from configuration, materializing the base
// workspace directory. Functional options applied after initialization can
// override any collaborator for testing.
func NewManager(cfg *Config, opts ...Option) (*Manager, error) {
	m := &Manager{
		baseDir:  cfg.BaseDir,
		resolver: MainSourceResolver{},
		observer: observability.NoOpObserver{},
	}
	if m.baseDir == "" {
		m.baseDir = defaultBaseDir
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.repo == nil {
		repo, err := NewRepository(cfg)
		if err != nil {
			return nil, fmt.Errorf("create session repository: %w", err)
		}
		m.repo = repo
	}

	if err := os.MkdirAll(m.baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create base directory: %w", err)
	}

	return m, nil
}

// Close releases the repository backend when it holds resources.
func (m *Manager) Close() error {
	if closer, ok := m.repo.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Create generates a fresh session with a unique token, materializes the
// two-root workspace layout, and inserts the record. Safe under concurrent
// invocation; two concurrent creates never collide.
func (m *Manager) Create(ctx context.Context, projectName string) (Session, error) {
	if projectName == "" {
		projectName = DefaultProjectName
	}

	id := uuid.Must(uuid.NewV7()).String()
	workspace := filepath.Join(m.baseDir, id)

	for _, root := range []string{mainSourceRoot, testSourceRoot} {
		if err := os.MkdirAll(filepath.Join(workspace, filepath.FromSlash(root)), 0o755); err != nil {
			return Session{}, fmt.Errorf("create workspace: %w", err)
		}
	}

	now := time.Now()
	s := Session{
		ID:            id,
		ProjectName:   projectName,
		WorkspacePath: workspace,
		CreatedAt:     now,
		LastAccessed:  now,
	}

	if err := m.repo.Create(s); err != nil {
		os.RemoveAll(workspace)
		return Session{}, err
	}

	m.emit(ctx, EventSessionCreated, observability.LevelInfo, map[string]any{
		"session_id": id,
		"project":    projectName,
	})
	m.hooks.notifyCreated(ctx, m, s)

	return s, nil
}

// Get returns the session for id, refreshing its last-accessed timestamp as
// a visible side effect. Returns ErrSessionNotFound for unknown or deleted
// tokens, never a stale record.
func (m *Manager) Get(ctx context.Context, id string) (Session, error) {
	s, err := m.repo.Get(id)
	if err != nil {
		return Session{}, err
	}

	s.LastAccessed = time.Now()
	if err := m.repo.Update(s); err != nil {
		// Deleted between Get and Update; report it gone rather than stale.
		return Session{}, err
	}
	return s, nil
}

// Touch refreshes the last-accessed timestamp without other side effects,
// resetting the idle clock.
func (m *Manager) Touch(ctx context.Context, id string) error {
	_, err := m.Get(ctx, id)
	return err
}

// Delete removes the session record and recursively deletes its workspace
// tree. Deleting an unknown token reports ErrSessionNotFound so callers can
// distinguish "already gone" from "succeeded". The record leaves the table
// before the tree is removed, so no caller ever observes a half-deleted
// session.
func (m *Manager) Delete(ctx context.Context, id string) error {
	s, err := m.repo.Get(id)
	if err != nil {
		return err
	}

	if err := m.repo.Delete(id); err != nil {
		return err
	}

	if err := os.RemoveAll(s.WorkspacePath); err != nil {
		// The record is already gone; surface the leaked tree instead of
		// failing the delete.
		m.emit(ctx, EventCleanupError, observability.LevelError, map[string]any{
			"session_id": id,
			"workspace":  s.WorkspacePath,
			"error":      err.Error(),
		})
	}

	m.emit(ctx, EventSessionDeleted, observability.LevelInfo, map[string]any{
		"session_id": id,
	})
	m.hooks.notifyDeleted(ctx, m, id)

	return nil
}

// SweepExpired deletes every session whose idle time is at least maxIdle and
// returns the number removed. It may run concurrently with other operations:
// each candidate is re-checked right before deletion, so a session touched
// after the snapshot survives the sweep.
func (m *Manager) SweepExpired(ctx context.Context, maxIdle time.Duration) (int, error) {
	sessions, err := m.repo.List()
	if err != nil {
		return 0, err
	}

	removed := 0
	now := time.Now()
	for _, s := range sessions {
		if s.Idle(now) < maxIdle {
			continue
		}

		current, err := m.repo.Get(s.ID)
		if err != nil || current.Idle(time.Now()) < maxIdle {
			continue
		}

		if err := m.Delete(ctx, s.ID); err != nil {
			if errors.Is(err, ErrSessionNotFound) {
				continue
			}
			return removed, err
		}
		removed++
	}

	m.emit(ctx, EventSweepComplete, observability.LevelVerbose, map[string]any{
		"removed":  removed,
		"max_idle": maxIdle.String(),
	})

	return removed, nil
}

// RunSweeper periodically sweeps expired sessions until ctx is cancelled.
// Intended to run in its own goroutine.
func (m *Manager) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := m.SweepExpired(ctx, maxIdle); err != nil {
				m.emit(ctx, EventCleanupError, observability.LevelError, map[string]any{
					"error": err.Error(),
				})
			}
		}
	}
}

// List returns a point-in-time snapshot of all session records.
func (m *Manager) List(ctx context.Context) ([]Session, error) {
	return m.repo.List()
}

func (m *Manager) emit(ctx context.Context, t observability.EventType, level observability.Level, data map[string]any) {
	m.observer.OnEvent(ctx, observability.Event{
		Type:      t,
		Level:     level,
		Timestamp: time.Now(),
		Source:    "session.Manager",
		Data:      data,
	})
}
