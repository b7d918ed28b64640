// Package session manages isolated, ephemeral on-disk workspaces keyed by
// opaque session tokens. A session owns exactly one workspace directory tree
// for its lifetime; the tree is materialized on creation and removed with
// the record on deletion or idle sweep.
package session

import "time"

// DefaultProjectName is used when a session is created without one.
const DefaultProjectName = "default"

// Session is one client session record. The ID is a UUIDv7 token generated
// at creation; the workspace directory name is derived from it.
type Session struct {
	ID            string    `json:"id"`
	ProjectName   string    `json:"project_name"`
	WorkspacePath string    `json:"workspace_path"`
	CreatedAt     time.Time `json:"created_at"`
	LastAccessed  time.Time `json:"last_accessed"`
}

// Age returns how long the session has existed as of now.
func (s Session) Age(now time.Time) time.Duration {
	return now.Sub(s.CreatedAt)
}

// Idle returns how long the session has gone without access as of now.
func (s Session) Idle(now time.Time) time.Duration {
	return now.Sub(s.LastAccessed)
}
