package session

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/sessionforge/javacheck/observability"
)

// hooks holds session-event callbacks, invoked synchronously and in
// registration order after the triggering mutation completes. A hook that
// panics is isolated and reported as an event; it never fails the operation
// that triggered it.
type hooks struct {
	mu        sync.Mutex
	onCreated []func(Session)
	onDeleted []func(string)
}

// OnCreated registers a callback invoked after each successful Create.
func (m *Manager) OnCreated(fn func(Session)) {
	m.hooks.mu.Lock()
	defer m.hooks.mu.Unlock()
	m.hooks.onCreated = append(m.hooks.onCreated, fn)
}

// OnDeleted registers a callback invoked after each successful Delete,
// including deletions performed by the idle sweep.
func (m *Manager) OnDeleted(fn func(string)) {
	m.hooks.mu.Lock()
	defer m.hooks.mu.Unlock()
	m.hooks.onDeleted = append(m.hooks.onDeleted, fn)
}

func (h *hooks) notifyCreated(ctx context.Context, m *Manager, s Session) {
	h.mu.Lock()
	callbacks := slices.Clone(h.onCreated)
	h.mu.Unlock()

	for _, fn := range callbacks {
		runHook(ctx, m, "created", func() { fn(s) })
	}
}

func (h *hooks) notifyDeleted(ctx context.Context, m *Manager, id string) {
	h.mu.Lock()
	callbacks := slices.Clone(h.onDeleted)
	h.mu.Unlock()

	for _, fn := range callbacks {
		runHook(ctx, m, "deleted", func() { fn(id) })
	}
}

func runHook(ctx context.Context, m *Manager, kind string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			m.emit(ctx, EventHookError, observability.LevelError, map[string]any{
				"hook":  kind,
				"panic": fmt.Sprint(r),
			})
		}
	}()
	fn()
}
