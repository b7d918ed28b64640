package checker

import "github.com/sessionforge/javacheck/observability"

// Checker event types emitted around compiler invocations.
const (
	EventCheckStart    observability.EventType = "check.start"
	EventCheckComplete observability.EventType = "check.complete"
	EventCheckTimeout  observability.EventType = "check.timeout"
	EventCheckError    observability.EventType = "check.error"
)
