// Package recommend maps compiler diagnostics to ordered, human-readable fix
// suggestions. Matching is strategy-based: an ordered list of predicate and
// action pairs is consulted until the first predicate matches, and
// registration order is the dispatch contract.
package recommend

import (
	"sync"

	"github.com/sessionforge/javacheck/checker"
)

// Strategy is a named predicate/action pair. Matches decides whether the
// strategy handles a diagnostic; Recommend produces the ordered suggestion
// list for it. Both receive the diagnostic by value and must not retain it.
type Strategy struct {
	Name      string
	Matches   func(d checker.Diagnostic) bool
	Recommend func(d checker.Diagnostic) []string
}

// Engine dispatches diagnostics to the first matching strategy. Safe for
// concurrent use; registration and matching may interleave.
type Engine struct {
	mu         sync.RWMutex
	strategies []Strategy
}

// NewEngine creates an Engine seeded with the built-in strategies.
func NewEngine() *Engine {
	return &Engine{strategies: defaultStrategies()}
}

// Register adds a custom strategy ahead of all existing ones, so it is
// consulted before the built-ins.
func (e *Engine) Register(s Strategy) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.strategies = append([]Strategy{s}, e.strategies...)
}

// Append adds a custom strategy after all existing ones.
func (e *Engine) Append(s Strategy) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.strategies = append(e.strategies, s)
}

// Strategies returns the names of all registered strategies in match order.
func (e *Engine) Strategies() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, len(e.strategies))
	for i, s := range e.strategies {
		names[i] = s.Name
	}
	return names
}

// Recommend returns suggestions for a diagnostic from the first strategy
// whose predicate matches; no further strategies are consulted. When no
// strategy matches, or the matching strategy panics or produces no
// suggestions, a fixed non-empty fallback list is returned so callers
// always receive actionable guidance.
func (e *Engine) Recommend(d checker.Diagnostic) []string {
	e.mu.RLock()
	strategies := make([]Strategy, len(e.strategies))
	copy(strategies, e.strategies)
	e.mu.RUnlock()

	for _, s := range strategies {
		if !s.Matches(d) {
			continue
		}
		if recs := runStrategy(s, d); len(recs) > 0 {
			return recs
		}
		break
	}

	return defaultRecommendations()
}

func runStrategy(s Strategy, d checker.Diagnostic) (recs []string) {
	defer func() {
		if recover() != nil {
			recs = nil
		}
	}()
	return s.Recommend(d)
}

func defaultRecommendations() []string {
	return []string{
		"Review the error message and consult Java documentation",
		"Check the syntax and naming conventions",
		"Verify all imports and dependencies are correct",
	}
}
