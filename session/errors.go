package session

import "errors"

// Sentinel errors for session and file operations.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
	ErrInvalidPath     = errors.New("invalid path")
	ErrWriteFailure    = errors.New("write failure")
	ErrFileNotFound    = errors.New("file not found")
)
