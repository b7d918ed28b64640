package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsObserver translates events into Prometheus metrics. It keys off the
// event type strings emitted by the session and checker packages; unknown
// event types are ignored so new emitters never break metric collection.
type MetricsObserver struct {
	sessionsCreated prometheus.Counter
	sessionsDeleted prometheus.Counter
	sessionsSwept   prometheus.Counter
	checks          *prometheus.CounterVec
	checkDuration   prometheus.Histogram
	diagnostics     prometheus.Counter
}

// NewMetricsObserver creates a MetricsObserver with metrics registered on reg.
// Pass prometheus.DefaultRegisterer for process-global metrics.
func NewMetricsObserver(reg prometheus.Registerer) *MetricsObserver {
	factory := promauto.With(reg)

	return &MetricsObserver{
		sessionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "javacheck_sessions_created_total",
			Help: "Total sessions created",
		}),
		sessionsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "javacheck_sessions_deleted_total",
			Help: "Total sessions deleted, explicitly or by idle sweep",
		}),
		sessionsSwept: factory.NewCounter(prometheus.CounterOpts{
			Name: "javacheck_sessions_swept_total",
			Help: "Total sessions removed by the idle sweeper",
		}),
		checks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "javacheck_checks_total",
			Help: "Total compilation checks by outcome",
		}, []string{"status"}),
		checkDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "javacheck_check_duration_seconds",
			Help:    "Compiler invocation duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		diagnostics: factory.NewCounter(prometheus.CounterOpts{
			Name: "javacheck_diagnostics_total",
			Help: "Total diagnostics reported across all checks",
		}),
	}
}

func (o *MetricsObserver) OnEvent(ctx context.Context, event Event) {
	switch event.Type {
	case "session.created":
		o.sessionsCreated.Inc()
	case "session.deleted":
		o.sessionsDeleted.Inc()
	case "session.sweep.complete":
		o.sessionsSwept.Add(asFloat(event.Data["removed"]))
	case "check.complete":
		o.checks.WithLabelValues("ok").Inc()
		o.checkDuration.Observe(asFloat(event.Data["duration_seconds"]))
		o.diagnostics.Add(asFloat(event.Data["diagnostics"]))
	case "check.timeout":
		o.checks.WithLabelValues("timeout").Inc()
	case "check.error":
		o.checks.WithLabelValues("error").Inc()
	}
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
