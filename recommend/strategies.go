package recommend

import (
	"strings"

	"github.com/sessionforge/javacheck/checker"
)

// messageContains reports whether the diagnostic message contains all of the
// given fragments, case-insensitively.
func messageContains(d checker.Diagnostic, fragments ...string) bool {
	message := strings.ToLower(d.Message)
	for _, f := range fragments {
		if !strings.Contains(message, f) {
			return false
		}
	}
	return true
}

// fixed wraps a static suggestion list as a Strategy action.
func fixed(recs ...string) func(checker.Diagnostic) []string {
	return func(checker.Diagnostic) []string { return recs }
}

// defaultStrategies returns the built-in strategies in their fixed priority
// order. First match wins, so broader patterns (like duplicate declarations)
// sit after the more specific ones.
func defaultStrategies() []Strategy {
	return []Strategy{
		{
			Name: "cannot-find-symbol",
			Matches: func(d checker.Diagnostic) bool {
				return messageContains(d, "cannot find symbol")
			},
			Recommend: fixed(
				"Check that the class, variable, or method name is spelled correctly",
				"Ensure the required import statement is present",
				"Verify that the variable is declared before use",
			),
		},
		{
			Name: "class-interface-enum-expected",
			Matches: func(d checker.Diagnostic) bool {
				return messageContains(d, "class, interface, or enum expected")
			},
			Recommend: fixed(
				"Check for missing or extra braces { }",
				"Ensure all methods are inside a class",
				"Verify that all blocks are properly closed",
			),
		},
		{
			Name: "missing-semicolon",
			Matches: func(d checker.Diagnostic) bool {
				return messageContains(d, "';' expected")
			},
			Recommend: fixed(
				"Add a semicolon at the end of the statement",
				"Check for syntax errors in the line",
			),
		},
		{
			Name: "type-mismatch",
			Matches: func(d checker.Diagnostic) bool {
				return messageContains(d, "incompatible types") || messageContains(d, "type mismatch")
			},
			Recommend: fixed(
				"Check that the value type matches the variable type",
				"Consider explicit type casting if appropriate",
				"Verify that method return types match expected types",
			),
		},
		{
			Name: "method-not-applicable",
			Matches: func(d checker.Diagnostic) bool {
				return messageContains(d, "method", "cannot be applied")
			},
			Recommend: fixed(
				"Check the number and types of arguments passed to the method",
				"Verify the method signature matches the expected parameters",
				"Ensure arguments are in the correct order",
			),
		},
		{
			Name: "duplicate-declaration",
			Matches: func(d checker.Diagnostic) bool {
				return messageContains(d, "duplicate")
			},
			Recommend: fixed(
				"Remove or rename the duplicate declaration",
				"Check for accidental duplicate imports",
				"Verify variable names are unique in scope",
			),
		},
		{
			Name: "package-not-found",
			Matches: func(d checker.Diagnostic) bool {
				return messageContains(d, "package", "does not exist")
			},
			Recommend: fixed(
				"Verify the package name is spelled correctly",
				"Check that the required library is in the classpath",
				"Ensure the dependency is properly configured",
			),
		},
		{
			Name: "unreachable-statement",
			Matches: func(d checker.Diagnostic) bool {
				return messageContains(d, "unreachable statement")
			},
			Recommend: fixed(
				"Remove code after return, break, or continue statements",
				"Check for unreachable code blocks",
				"Verify control flow logic",
			),
		},
	}
}
