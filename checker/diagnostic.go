// Package checker invokes the external Java compiler against a workspace and
// extracts structured diagnostics from its plain-text output. The checker is
// stateless with respect to sessions: a workspace path goes in, diagnostics
// come out.
package checker

// Severity classifies a diagnostic as reported by the compiler.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one compiler-reported issue. Line and Column are 1-based as
// emitted by the compiler; Column is 0 when the caret position could not be
// recovered from the output. Code holds the offending source line when the
// compiler echoed one, and may be empty.
type Diagnostic struct {
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Code     string   `json:"code"`
}
