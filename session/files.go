package session

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileEntry is one (logical path, content) pair for batch writes.
type FileEntry struct {
	Path    string `json:"file_path"`
	Content string `json:"content"`
}

// FileFailure records why one batch entry could not be written.
type FileFailure struct {
	Path   string `json:"file_path"`
	Reason string `json:"error"`
}

// BatchResult summarizes a best-effort batch write.
type BatchResult struct {
	Written  int           `json:"written"`
	Failed   int           `json:"failed"`
	Total    int           `json:"total"`
	Failures []FileFailure `json:"failed_files,omitempty"`
}

// Info is the session metadata block returned by Manager.Info.
type Info struct {
	SessionID     string    `json:"session_id"`
	ProjectName   string    `json:"project_name"`
	WorkspacePath string    `json:"workspace_path"`
	CreatedAt     time.Time `json:"created_at"`
	LastAccessed  time.Time `json:"last_accessed"`
	AgeSeconds    float64   `json:"age_seconds"`
	IdleSeconds   float64   `json:"idle_seconds"`
	FileCount     int       `json:"file_count"`
	Files         []string  `json:"files"`
}

// WriteFile resolves logicalPath, creates parent directories, and writes
// content, overwriting any existing file.
func (m *Manager) WriteFile(ctx context.Context, id, logicalPath, content string) error {
	s, err := m.Get(ctx, id)
	if err != nil {
		return err
	}
	return m.writeResolved(s, logicalPath, content)
}

// WriteFiles applies WriteFile to each entry independently: a failure on one
// entry never aborts the rest. The result reports per-file failures with
// their reasons.
func (m *Manager) WriteFiles(ctx context.Context, id string, files []FileEntry) (BatchResult, error) {
	s, err := m.Get(ctx, id)
	if err != nil {
		return BatchResult{}, err
	}

	result := BatchResult{Total: len(files)}
	for _, f := range files {
		if err := m.writeResolved(s, f.Path, f.Content); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, FileFailure{
				Path:   f.Path,
				Reason: err.Error(),
			})
			continue
		}
		result.Written++
	}
	return result, nil
}

func (m *Manager) writeResolved(s Session, logicalPath, content string) error {
	full, err := m.resolver.Resolve(s.WorkspacePath, logicalPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFailure, logicalPath, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFailure, logicalPath, err)
	}
	return nil
}

// ReadFile returns the content of the file at logicalPath, or
// ErrFileNotFound when absent.
func (m *Manager) ReadFile(ctx context.Context, id, logicalPath string) (string, error) {
	s, err := m.Get(ctx, id)
	if err != nil {
		return "", err
	}

	full, err := m.resolver.Resolve(s.WorkspacePath, logicalPath)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, logicalPath)
		}
		return "", fmt.Errorf("read %s: %w", logicalPath, err)
	}
	return string(data), nil
}

// ListFiles returns the slash-separated relative paths of all source files
// under the session workspace, sorted. The listing is stable within one
// call: no duplicates, no omissions.
func (m *Manager) ListFiles(ctx context.Context, id string) ([]string, error) {
	s, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return listSourceFiles(s.WorkspacePath)
}

// Info returns the session metadata block. Idle and age are computed from
// the record as it stood before this call refreshed it.
func (m *Manager) Info(ctx context.Context, id string) (Info, error) {
	s, err := m.repo.Get(id)
	if err != nil {
		return Info{}, err
	}

	files, err := listSourceFiles(s.WorkspacePath)
	if err != nil {
		return Info{}, err
	}

	now := time.Now()
	info := Info{
		SessionID:     s.ID,
		ProjectName:   s.ProjectName,
		WorkspacePath: s.WorkspacePath,
		CreatedAt:     s.CreatedAt,
		LastAccessed:  s.LastAccessed,
		AgeSeconds:    s.Age(now).Seconds(),
		IdleSeconds:   s.Idle(now).Seconds(),
		FileCount:     len(files),
		Files:         files,
	}

	if err := m.Touch(ctx, id); err != nil {
		return Info{}, err
	}
	return info, nil
}

func listSourceFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == root {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".java") {
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
