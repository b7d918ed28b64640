package checker

import "errors"

// Sentinel errors for compilation checks.
var (
	ErrCompilerUnavailable = errors.New("compiler unavailable")
	ErrCompileTimeout      = errors.New("compile timeout")
)
