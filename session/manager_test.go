package session_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sessionforge/javacheck/session"
)

func newManager(t *testing.T, opts ...session.Option) *session.Manager {
	t.Helper()

	cfg := session.DefaultConfig()
	cfg.BaseDir = t.TempDir()

	m, err := session.NewManager(&cfg, opts...)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m
}

func TestCreate_WorkspaceLayout(t *testing.T) {
	m := newManager(t)

	s, err := m.Create(context.Background(), "demo")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if s.ID == "" {
		t.Error("session ID is empty")
	}
	if s.ProjectName != "demo" {
		t.Errorf("got project %q, want %q", s.ProjectName, "demo")
	}
	if filepath.Base(s.WorkspacePath) != s.ID {
		t.Errorf("workspace dir %q not derived from session ID %q", s.WorkspacePath, s.ID)
	}

	for _, root := range []string{"src/main/java", "src/test/java"} {
		dir := filepath.Join(s.WorkspacePath, filepath.FromSlash(root))
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("source root %s missing: %v", root, err)
		}
		if len(entries) != 0 {
			t.Errorf("source root %s not empty, has %d entries", root, len(entries))
		}
	}
}

func TestCreate_DefaultProjectName(t *testing.T) {
	m := newManager(t)

	s, err := m.Create(context.Background(), "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if s.ProjectName != session.DefaultProjectName {
		t.Errorf("got project %q, want %q", s.ProjectName, session.DefaultProjectName)
	}
}

func TestCreate_UniqueIDs(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	const (
		sequential = 4000
		workers    = 60
		perWorker  = 100
	)

	ids := make(chan string, sequential+workers*perWorker)

	for i := 0; i < sequential; i++ {
		s, err := m.Create(ctx, "seq")
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		ids <- s.ID
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				s, err := m.Create(ctx, "conc")
				if err != nil {
					t.Errorf("concurrent Create failed: %v", err)
					return
				}
				ids <- s.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate session ID %q", id)
		}
		seen[id] = true
	}
	if len(seen) != sequential+workers*perWorker {
		t.Errorf("got %d unique IDs, want %d", len(seen), sequential+workers*perWorker)
	}
}

func TestGet_RefreshesLastAccessed(t *testing.T) {
	repo := session.NewMemoryRepository()
	m := newManager(t, session.WithRepository(repo))
	ctx := context.Background()

	s, err := m.Create(ctx, "demo")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Age the record directly through the repository.
	s.LastAccessed = time.Now().Add(-time.Hour)
	if err := repo.Update(s); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := m.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Idle(time.Now()) > time.Minute {
		t.Errorf("Get did not refresh last-accessed, idle = %v", got.Idle(time.Now()))
	}
}

func TestGet_UnknownToken(t *testing.T) {
	m := newManager(t)

	if _, err := m.Get(context.Background(), "no-such-token"); !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("Get error = %v, want ErrSessionNotFound", err)
	}
	if err := m.Touch(context.Background(), "no-such-token"); !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("Touch error = %v, want ErrSessionNotFound", err)
	}
}

func TestDelete_RemovesRecordAndTree(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	s, err := m.Create(ctx, "demo")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := m.Delete(ctx, s.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := m.Get(ctx, s.ID); !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("Get after delete error = %v, want ErrSessionNotFound", err)
	}
	if _, err := os.Stat(s.WorkspacePath); !os.IsNotExist(err) {
		t.Errorf("workspace %s still exists after delete", s.WorkspacePath)
	}

	// Deleting again reports not found, not a silent no-op.
	if err := m.Delete(ctx, s.ID); !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("second Delete error = %v, want ErrSessionNotFound", err)
	}
}

func TestSweepExpired_Threshold(t *testing.T) {
	repo := session.NewMemoryRepository()
	m := newManager(t, session.WithRepository(repo))
	ctx := context.Background()

	fresh, err := m.Create(ctx, "fresh")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	stale, err := m.Create(ctx, "stale")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	stale.LastAccessed = time.Now().Add(-2 * time.Hour)
	if err := repo.Update(stale); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	removed, err := m.SweepExpired(ctx, time.Hour)
	if err != nil {
		t.Fatalf("SweepExpired failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("swept %d sessions, want 1", removed)
	}

	if _, err := m.Get(ctx, stale.ID); !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("stale session still present: %v", err)
	}
	if _, err := m.Get(ctx, fresh.ID); err != nil {
		t.Errorf("fresh session was swept: %v", err)
	}
	if _, err := os.Stat(stale.WorkspacePath); !os.IsNotExist(err) {
		t.Errorf("stale workspace %s still exists", stale.WorkspacePath)
	}
}

func TestSweepExpired_ConcurrentWithTouch(t *testing.T) {
	repo := session.NewMemoryRepository()
	m := newManager(t, session.WithRepository(repo))
	ctx := context.Background()

	s, err := m.Create(ctx, "busy")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	s.LastAccessed = time.Now().Add(-2 * time.Hour)
	if err := repo.Update(s); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_, _ = m.SweepExpired(ctx, time.Hour)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = m.Touch(ctx, s.ID)
		}
	}()
	wg.Wait()

	// Either outcome is legal; what must never happen is a torn record.
	if got, err := m.Get(ctx, s.ID); err == nil {
		if got.ID != s.ID || got.WorkspacePath != s.WorkspacePath {
			t.Errorf("torn record after concurrent sweep/touch: %+v", got)
		}
	} else if !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("Get error = %v, want nil or ErrSessionNotFound", err)
	}
}

func TestHooks_OrderAndIsolation(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	var order []string
	m.OnCreated(func(s session.Session) { order = append(order, "first") })
	m.OnCreated(func(s session.Session) { panic("hook blew up") })
	m.OnCreated(func(s session.Session) { order = append(order, "third") })

	var deletedID string
	m.OnDeleted(func(id string) { deletedID = id })

	s, err := m.Create(ctx, "demo")
	if err != nil {
		t.Fatalf("Create failed despite panicking hook: %v", err)
	}

	if len(order) != 2 || order[0] != "first" || order[1] != "third" {
		t.Errorf("hook order = %v, want [first third]", order)
	}

	if err := m.Delete(ctx, s.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deletedID != s.ID {
		t.Errorf("deleted hook got %q, want %q", deletedID, s.ID)
	}
}

func TestList_Snapshot(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := m.Create(ctx, "demo"); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	sessions, err := m.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Errorf("got %d sessions, want 3", len(sessions))
	}
}
