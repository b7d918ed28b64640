package checker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/sessionforge/javacheck/observability"
)

// Checker runs full, non-incremental builds of a workspace. Every check
// recompiles all sources currently present, so no stale compiler state can
// leak between checks. Safe for concurrent use; concurrent invocations are
// bounded by a weighted semaphore so many sessions cannot fork an unbounded
// number of compiler subprocesses.
type Checker struct {
	compiler string
	timeout  time.Duration
	sem      *semaphore.Weighted
	observer observability.Observer
}

// Option configures a Checker after config-driven initialization.
type Option func(*Checker)

// WithObserver overrides the default NoOpObserver.
func WithObserver(o observability.Observer) Option {
	return func(c *Checker) { c.observer = o }
}

// New creates a Checker from configuration.
func New(cfg *Config, opts ...Option) *Checker {
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}

	c := &Checker{
		compiler: cfg.Compiler,
		timeout:  cfg.Timeout,
		sem:      semaphore.NewWeighted(maxConcurrent),
		observer: observability.NoOpObserver{},
	}
	if c.compiler == "" {
		c.compiler = defaultCompiler
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Check compiles every source file under workspaceRoot and returns the
// parsed diagnostics in file-then-emission order. A workspace with no
// sources yields an empty result. Returns ErrCompilerUnavailable when the
// compiler binary cannot be resolved and ErrCompileTimeout when the
// invocation exceeds the configured time budget; the workspace remains
// usable after either.
func (c *Checker) Check(ctx context.Context, workspaceRoot string) ([]Diagnostic, error) {
	files, err := SourceFiles(workspaceRoot)
	if err != nil {
		return nil, fmt.Errorf("enumerate sources: %w", err)
	}
	if len(files) == 0 {
		return nil, nil
	}

	compiler, err := exec.LookPath(c.compiler)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCompilerUnavailable, c.compiler)
	}

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.sem.Release(1)

	outDir, err := os.MkdirTemp("", "javacheck-classes-")
	if err != nil {
		return nil, fmt.Errorf("create class output dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.emit(ctx, EventCheckStart, observability.LevelVerbose, map[string]any{
		"workspace": workspaceRoot,
		"files":     len(files),
	})

	classpath := strings.Join([]string{
		filepath.Join("src", "main", "java"),
		filepath.Join("src", "test", "java"),
	}, string(os.PathListSeparator))

	args := []string{"-d", outDir, "-cp", classpath, "-Xlint:all"}
	for _, f := range files {
		args = append(args, filepath.FromSlash(f))
	}

	cmd := exec.CommandContext(runCtx, compiler, args...)
	cmd.Dir = workspaceRoot
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		c.emit(ctx, EventCheckTimeout, observability.LevelWarning, map[string]any{
			"workspace": workspaceRoot,
			"timeout":   c.timeout.String(),
		})
		return nil, fmt.Errorf("%w: compiler exceeded %s", ErrCompileTimeout, c.timeout)
	}

	// Warnings surface on stderr even on a zero exit, so parse regardless
	// of the exit status.
	diags := ParseOutput(stderr.String())

	if runErr != nil && len(diags) == 0 {
		c.emit(ctx, EventCheckError, observability.LevelError, map[string]any{
			"workspace": workspaceRoot,
			"error":     runErr.Error(),
		})
		return nil, fmt.Errorf("compiler invocation failed: %w: %s", runErr, strings.TrimSpace(stderr.String()))
	}

	c.emit(ctx, EventCheckComplete, observability.LevelInfo, map[string]any{
		"workspace":        workspaceRoot,
		"files":            len(files),
		"diagnostics":      len(diags),
		"duration_seconds": elapsed.Seconds(),
	})

	return diags, nil
}

func (c *Checker) emit(ctx context.Context, t observability.EventType, level observability.Level, data map[string]any) {
	c.observer.OnEvent(ctx, observability.Event{
		Type:      t,
		Level:     level,
		Timestamp: time.Now(),
		Source:    "checker.Check",
		Data:      data,
	})
}

// SourceFiles returns the slash-separated relative paths of all .java files
// under root, sorted for deterministic compiler invocations.
func SourceFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == root {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".java") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
