package aggregator

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes used as the "outcome" label on the source counter.
const (
	OutcomeConsulted     = "consulted"
	OutcomeSkipped       = "skipped"
	OutcomeFailed        = "failed"
	OutcomeOverDelivered = "overdelivered"
)

// MetricsDiagnostics counts the events as Prometheus metrics.
type MetricsDiagnostics struct {
	sourceEvents *prometheus.CounterVec
	shortfalls   prometheus.Counter
	noJokes      prometheus.Counter
}

// NewMetricsDiagnostics creates the counters and registers them on the given
// registerer.
func NewMetricsDiagnostics(reg prometheus.Registerer) (*MetricsDiagnostics, error) {
	m := &MetricsDiagnostics{
		sourceEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wharf_jokes",
			Subsystem: "aggregator",
			Name:      "source_events_total",
			Help:      "Number of times a joke source was consulted, skipped, failed, or over-delivered.",
		}, []string{"source", "outcome"}),
		shortfalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wharf_jokes",
			Subsystem: "aggregator",
			Name:      "shortfalls_total",
			Help:      "Number of aggregations that returned fewer jokes than requested.",
		}),
		noJokes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wharf_jokes",
			Subsystem: "aggregator",
			Name:      "unavailable_total",
			Help:      "Number of aggregations where no source contributed any joke.",
		}),
	}
	for _, c := range []prometheus.Collector{m.sourceEvents, m.shortfalls, m.noJokes} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register aggregator metrics: %w", err)
		}
	}
	return m, nil
}

// SourceConsulted implements Diagnostics.
func (m *MetricsDiagnostics) SourceConsulted(source string, _ int) {
	m.sourceEvents.WithLabelValues(source, OutcomeConsulted).Inc()
}

// SourceSkipped implements Diagnostics.
func (m *MetricsDiagnostics) SourceSkipped(source string, _ int) {
	m.sourceEvents.WithLabelValues(source, OutcomeSkipped).Inc()
}

// SourceFailed implements Diagnostics.
func (m *MetricsDiagnostics) SourceFailed(source string, _ error) {
	m.sourceEvents.WithLabelValues(source, OutcomeFailed).Inc()
}

// SourceOverDelivered implements Diagnostics.
func (m *MetricsDiagnostics) SourceOverDelivered(source string, _, _ int) {
	m.sourceEvents.WithLabelValues(source, OutcomeOverDelivered).Inc()
}

// Shortfall implements Diagnostics.
func (m *MetricsDiagnostics) Shortfall(int, int) {
	m.shortfalls.Inc()
}

// NoJokes implements Diagnostics.
func (m *MetricsDiagnostics) NoJokes(int) {
	m.noJokes.Inc()
}
