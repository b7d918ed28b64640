package session

import "github.com/sessionforge/javacheck/observability"

// Session event types emitted around registry mutations.
const (
	EventSessionCreated observability.EventType = "session.created"
	EventSessionDeleted observability.EventType = "session.deleted"
	EventSweepComplete  observability.EventType = "session.sweep.complete"
	EventHookError      observability.EventType = "session.hook.error"
	EventCleanupError   observability.EventType = "session.cleanup.error"
)
