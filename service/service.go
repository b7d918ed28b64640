// Package service composes the session manager, compilation checker, and
// recommendation engine behind the logical operation set that transports
// carry to clients. The service holds no per-request state; transports hand
// it session tokens and get typed responses back.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sessionforge/javacheck/checker"
	"github.com/sessionforge/javacheck/observability"
	"github.com/sessionforge/javacheck/recommend"
	"github.com/sessionforge/javacheck/session"
)

// CompilationChecker abstracts the compiler invocation for testability.
// The default implementation is *checker.Checker.
type CompilationChecker interface {
	Check(ctx context.Context, workspaceRoot string) ([]checker.Diagnostic, error)
}

// Service is the transport-agnostic core of the error-checking system.
type Service struct {
	cfg      Config
	sessions *session.Manager
	checker  CompilationChecker
	engine   *recommend.Engine
	observer observability.Observer

	repo     session.Repository
	resolver session.PathResolver
}

// Option configures a Service after config-driven initialization.
// Overrides replace config-created defaults.
type Option func(*Service)

// WithObserver overrides the default SlogObserver for all subsystems.
func WithObserver(o observability.Observer) Option {
	return func(s *Service) { s.observer = o }
}

// WithRepository overrides the config-created session repository backend.
func WithRepository(r session.Repository) Option {
	return func(s *Service) { s.repo = r }
}

// WithResolver overrides the default main-source path resolver.
func WithResolver(r session.PathResolver) Option {
	return func(s *Service) { s.resolver = r }
}

// WithSessionManager overrides the config-created session manager entirely.
func WithSessionManager(m *session.Manager) Option {
	return func(s *Service) { s.sessions = m }
}

// WithChecker overrides the config-created compilation checker.
func WithChecker(c CompilationChecker) Option {
	return func(s *Service) { s.checker = c }
}

// WithEngine overrides the default recommendation engine.
func WithEngine(e *recommend.Engine) Option {
	return func(s *Service) { s.engine = e }
}

// New creates a Service from configuration. Subsystems are initialized from
// their respective config sections; the observer is resolved from the named
// registry, and functional options applied after initialization can override
// any of them for testing.
func New(cfg *Config, opts ...Option) (*Service, error) {
	name := cfg.Observer
	if name == "" {
		name = "slog"
	}
	observer, err := observability.GetObserver(name)
	if err != nil {
		return nil, fmt.Errorf("resolve observer: %w", err)
	}

	s := &Service{
		cfg:      *cfg,
		observer: observer,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.sessions == nil {
		managerOpts := []session.Option{session.WithObserver(s.observer)}
		if s.repo != nil {
			managerOpts = append(managerOpts, session.WithRepository(s.repo))
		}
		if s.resolver != nil {
			managerOpts = append(managerOpts, session.WithResolver(s.resolver))
		}

		mgr, err := session.NewManager(&cfg.Session, managerOpts...)
		if err != nil {
			return nil, fmt.Errorf("create session manager: %w", err)
		}
		s.sessions = mgr
	}

	if s.checker == nil {
		s.checker = checker.New(&cfg.Checker, checker.WithObserver(s.observer))
	}
	if s.engine == nil {
		s.engine = recommend.NewEngine()
	}

	return s, nil
}

// Sessions returns the service's session manager, e.g. for hook
// registration.
func (s *Service) Sessions() *session.Manager {
	return s.sessions
}

// Engine returns the service's recommendation engine, e.g. for custom
// strategy registration.
func (s *Service) Engine() *recommend.Engine {
	return s.engine
}

// StartSweeper launches the idle-session sweeper in its own goroutine,
// running until ctx is cancelled.
func (s *Service) StartSweeper(ctx context.Context) {
	go s.sessions.RunSweeper(ctx, s.cfg.Session.SweepInterval, s.cfg.Session.MaxIdle)
}

// Close releases subsystem resources.
func (s *Service) Close() error {
	return s.sessions.Close()
}

// CreateSession creates a new isolated workspace session.
func (s *Service) CreateSession(ctx context.Context, projectName string) (CreateSessionResponse, error) {
	sess, err := s.sessions.Create(ctx, projectName)
	if err != nil {
		return CreateSessionResponse{}, err
	}
	return CreateSessionResponse{
		Status:      StatusSuccess,
		SessionID:   sess.ID,
		ProjectName: sess.ProjectName,
	}, nil
}

// WriteFile writes one source file into the session workspace.
func (s *Service) WriteFile(ctx context.Context, sessionID, path, content string) error {
	return s.sessions.WriteFile(ctx, sessionID, path, content)
}

// WriteFiles writes a batch of source files best-effort; per-entry failures
// are reported in the result, never aborting the batch.
func (s *Service) WriteFiles(ctx context.Context, sessionID string, files []session.FileEntry) (session.BatchResult, error) {
	return s.sessions.WriteFiles(ctx, sessionID, files)
}

// CheckErrors runs a full compilation check of the session workspace. A
// compiler timeout is a structured outcome (StatusTimeout), not an error;
// the session remains usable afterward.
func (s *Service) CheckErrors(ctx context.Context, sessionID string) (CheckResponse, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return CheckResponse{}, err
	}

	diags, err := s.checker.Check(ctx, sess.WorkspacePath)
	if err != nil {
		if errors.Is(err, checker.ErrCompileTimeout) {
			return CheckResponse{
				Status:    StatusTimeout,
				SessionID: sessionID,
				Message:   err.Error(),
			}, nil
		}
		return CheckResponse{}, err
	}

	resp := CheckResponse{
		Status:      StatusSuccess,
		SessionID:   sessionID,
		ErrorCount:  len(diags),
		Diagnostics: diags,
	}
	if len(diags) == 0 {
		resp.Message = "No compilation errors found!"
	} else {
		resp.Message = fmt.Sprintf("Found %d compilation error(s)", len(diags))
	}
	return resp, nil
}

// ListFiles lists all source files in the session workspace.
func (s *Service) ListFiles(ctx context.Context, sessionID string) (ListFilesResponse, error) {
	files, err := s.sessions.ListFiles(ctx, sessionID)
	if err != nil {
		return ListFilesResponse{}, err
	}
	return ListFilesResponse{
		Status:    StatusSuccess,
		SessionID: sessionID,
		FileCount: len(files),
		Files:     files,
	}, nil
}

// ReadFile returns the content of one workspace file.
func (s *Service) ReadFile(ctx context.Context, sessionID, path string) (string, error) {
	return s.sessions.ReadFile(ctx, sessionID, path)
}

// GetRecommendations returns the fix suggestions for one diagnostic.
// Deterministic: the same diagnostic always yields the same ordered list.
func (s *Service) GetRecommendations(ctx context.Context, sessionID string, d checker.Diagnostic) (RecommendationsResponse, error) {
	if err := s.sessions.Touch(ctx, sessionID); err != nil {
		return RecommendationsResponse{}, err
	}
	return RecommendationsResponse{
		Status:          StatusSuccess,
		SessionID:       sessionID,
		Diagnostic:      d,
		Recommendations: s.engine.Recommend(d),
	}, nil
}

// RefreshSession resets the session's idle clock.
func (s *Service) RefreshSession(ctx context.Context, sessionID string) error {
	return s.sessions.Touch(ctx, sessionID)
}

// GetSessionInfo returns the full session metadata block.
func (s *Service) GetSessionInfo(ctx context.Context, sessionID string) (session.Info, error) {
	return s.sessions.Info(ctx, sessionID)
}

// DeleteSession removes the session and its workspace tree.
func (s *Service) DeleteSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}
