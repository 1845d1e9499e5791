package cache

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus instruments an LRU reports to. mininext never
// starts its own HTTP listener — exposing /metrics is the host runtime's
// job (out of scope per spec §1) — so Metrics only produces instruments for
// the caller to register on whatever *prometheus.Registry it already runs.
type Metrics struct {
	hits      prometheus.Counter
	misses    prometheus.Counter
	evictions prometheus.Counter
}

// NewMetrics creates and registers the cache instrument set on reg. name
// distinguishes multiple caches (e.g. "ssr", "route_match") sharing one
// registry via a constant "cache" label.
func NewMetrics(reg *prometheus.Registry, name string) *Metrics {
	labels := prometheus.Labels{"cache": name}
	m := &Metrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "mininext_cache_hits_total",
			Help:        "Number of cache Get calls that found a live entry.",
			ConstLabels: labels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "mininext_cache_misses_total",
			Help:        "Number of cache Get calls that found no entry.",
			ConstLabels: labels,
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "mininext_cache_evictions_total",
			Help:        "Number of entries evicted to stay within capacity.",
			ConstLabels: labels,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.hits, m.misses, m.evictions)
	}
	return m
}

func (m *Metrics) recordHit() {
	if m != nil {
		m.hits.Inc()
	}
}

func (m *Metrics) recordMiss() {
	if m != nil {
		m.misses.Inc()
	}
}

func (m *Metrics) recordEviction() {
	if m != nil {
		m.evictions.Inc()
	}
}
