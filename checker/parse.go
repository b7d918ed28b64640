package checker

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// javac diagnostic header: <file>:<line>: <severity>: <message>
var (
	headerRE  = regexp.MustCompile(`^(.+\.java):(\d+):\s*(error|warning):\s*(.*)$`)
	summaryRE = regexp.MustCompile(`^\d+ (?:errors?|warnings?)$`)
)

// ParseOutput extracts diagnostics from the compiler's error stream.
//
// Each diagnostic starts with a header line, optionally followed by the
// offending source line, a caret line marking the column, and aligned
// "symbol:"/"location:" continuations which are folded into the message.
// Diagnostics are returned in emission order; line numbers are kept as
// emitted (1-based) and the caret position becomes a 1-based column, 0 when
// no caret line was present. The trailing "N errors" summary is discarded.
func ParseOutput(output string) []Diagnostic {
	var diags []Diagnostic
	lines := strings.Split(output, "\n")

	for i := 0; i < len(lines); i++ {
		m := headerRE.FindStringSubmatch(strings.TrimRight(lines[i], "\r"))
		if m == nil {
			continue
		}

		lineNum, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}

		d := Diagnostic{
			File:     filepath.ToSlash(m[1]),
			Line:     lineNum,
			Severity: Severity(m[3]),
			Message:  strings.TrimSpace(m[4]),
		}

		// Consume continuation lines up to the next header.
		for i+1 < len(lines) {
			next := strings.TrimRight(lines[i+1], "\r")
			if headerRE.MatchString(next) {
				break
			}

			trimmed := strings.TrimSpace(next)
			switch {
			case trimmed == "":
			case summaryRE.MatchString(trimmed):
			case strings.HasPrefix(trimmed, "Note:"):
			case strings.HasPrefix(trimmed, "symbol:"), strings.HasPrefix(trimmed, "location:"):
				d.Message += "; " + strings.Join(strings.Fields(trimmed), " ")
			case trimmed == "^":
				d.Column = strings.Index(next, "^") + 1
			case d.Code == "":
				d.Code = trimmed
			}
			i++
		}

		diags = append(diags, d)
	}

	return diags
}
