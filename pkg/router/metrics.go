package router

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mininext-go/mininext/pkg/cache"
)

// Metrics holds the Prometheus instruments a Matcher reports to, plus the
// instrument set its internal match cache uses. As with pkg/cache, nothing
// here starts an HTTP listener — the host runtime owns /metrics.
type Metrics struct {
	matches   prometheus.Counter
	misses    prometheus.Counter
	rescans   prometheus.Counter
	routeGauge prometheus.Gauge

	cacheMetrics *cache.Metrics
}

// NewMetrics creates and registers the router instrument set on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		matches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mininext_router_matches_total",
			Help: "Number of Match calls that resolved to a route.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mininext_router_misses_total",
			Help: "Number of Match calls that resolved to no route.",
		}),
		rescans: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mininext_router_rescans_total",
			Help: "Number of times the pages directory was rescanned.",
		}),
		routeGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mininext_router_routes",
			Help: "Number of routes currently compiled from the pages directory.",
		}),
		cacheMetrics: cache.NewMetrics(reg, "route_match"),
	}
	if reg != nil {
		reg.MustRegister(m.matches, m.misses, m.rescans, m.routeGauge)
	}
	return m
}

func (m *Metrics) recordMatch() {
	if m != nil {
		m.matches.Inc()
	}
}

func (m *Metrics) recordMiss() {
	if m != nil {
		m.misses.Inc()
	}
}

func (m *Metrics) recordRescan(routeCount int) {
	if m != nil {
		m.rescans.Inc()
		m.routeGauge.Set(float64(routeCount))
	}
}
