package service

import "github.com/sessionforge/javacheck/checker"

// Operation status values carried on the wire.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusTimeout = "timeout"
)

// CreateSessionResponse is the createSession result.
type CreateSessionResponse struct {
	Status      string `json:"status"`
	SessionID   string `json:"session_id"`
	ProjectName string `json:"project_name"`
}

// CheckResponse is the checkErrors result. Diagnostics keep the compiler's
// file-then-emission order.
type CheckResponse struct {
	Status      string               `json:"status"`
	SessionID   string               `json:"session_id"`
	ErrorCount  int                  `json:"error_count"`
	Diagnostics []checker.Diagnostic `json:"errors"`
	Message     string               `json:"message,omitempty"`
}

// ListFilesResponse is the listFiles result.
type ListFilesResponse struct {
	Status    string   `json:"status"`
	SessionID string   `json:"session_id"`
	FileCount int      `json:"file_count"`
	Files     []string `json:"files"`
}

// RecommendationsResponse is the getRecommendations result.
type RecommendationsResponse struct {
	Status          string             `json:"status"`
	SessionID       string             `json:"session_id"`
	Diagnostic      checker.Diagnostic `json:"error"`
	Recommendations []string           `json:"recommendations"`
}
