package observability

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	defaultSlog    = NewSlogObserver(slog.Default())
	defaultMetrics = NewMetricsObserver(prometheus.DefaultRegisterer)

	observers = map[string]Observer{
		"noop":         NoOpObserver{},
		"slog":         defaultSlog,
		"metrics":      defaultMetrics,
		"slog+metrics": NewMultiObserver(defaultSlog, defaultMetrics),
	}
	mutex sync.RWMutex
)

// GetObserver returns a registered observer by name. Pre-registered
// observers: "noop", "slog" (default logger), "metrics" (process-global
// prometheus registry), and "slog+metrics" (both).
func GetObserver(name string) (Observer, error) {
	mutex.RLock()
	defer mutex.RUnlock()

	obs, exists := observers[name]
	if !exists {
		return nil, fmt.Errorf("unknown observer: %s", name)
	}
	return obs, nil
}

// RegisterObserver adds or replaces a named observer in the global registry.
func RegisterObserver(name string, observer Observer) {
	mutex.Lock()
	defer mutex.Unlock()

	observers[name] = observer
}
