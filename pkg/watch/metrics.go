package watch

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus instruments a Watcher reports to. As with
// pkg/cache and pkg/router, mininext never starts its own HTTP listener —
// the host runtime scrapes whatever *prometheus.Registry it already runs.
type Metrics struct {
	events  prometheus.Counter
	errors  prometheus.Counter
	polling prometheus.Gauge
}

// NewMetrics creates and registers the watcher instrument set on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		events: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mininext_watcher_events_total",
			Help: "Number of debounced change batches delivered to the sink.",
		}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mininext_watcher_errors_total",
			Help: "Number of errors reported by the underlying OS watch.",
		}),
		polling: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mininext_watcher_polling",
			Help: "1 if the watcher fell back to polling, 0 if it is using a native OS watch.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.events, m.errors, m.polling)
	}
	return m
}

func (m *Metrics) recordEvent() {
	if m != nil {
		m.events.Inc()
	}
}

func (m *Metrics) recordError() {
	if m != nil {
		m.errors.Inc()
	}
}

func (m *Metrics) setPolling(polling bool) {
	if m == nil {
		return
	}
	if polling {
		m.polling.Set(1)
	} else {
		m.polling.Set(0)
	}
}
