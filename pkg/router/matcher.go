package router

import (
	"log/slog"
	"sync"

	"github.com/mininext-go/mininext/pkg/cache"
)

// DefaultMatchCacheSize bounds the per-URL match cache a Matcher keeps in
// front of its route table. A dev server resolves the same handful of
// hot URLs over and over; this cache exists so re-resolving one doesn't
// re-walk the whole ordered route list and re-run every pattern.
const DefaultMatchCacheSize = 256

// Matcher resolves URL paths against a compiled, priority-ordered route
// table. Reads (Match) take a shared lock; a Rescan takes the exclusive
// lock just long enough to swap in a freshly scanned table, so in-flight
// matches never observe a half-updated route list.
type Matcher struct {
	mu       sync.RWMutex
	pagesDir string
	routes   []Route
	logger   *slog.Logger

	cache   *cache.LRU[string, cachedMatch]
	metrics *Metrics
}

type cachedMatch struct {
	route  *Route
	params map[string]string
}

// New constructs a Matcher over pagesDir and performs an initial scan.
// Dropped routes are reported through slog.Default() until WithLogger
// overrides it.
func New(pagesDir string) *Matcher {
	m := &Matcher{
		pagesDir: pagesDir,
		logger:   slog.Default(),
		cache:    cache.New[string, cachedMatch](DefaultMatchCacheSize),
	}
	m.routes = ScanFilesystem(pagesDir, m.logger)
	return m
}

// WithMetrics attaches a Metrics instrument set to both the matcher and its
// internal match cache.
func (m *Matcher) WithMetrics(metrics *Metrics) *Matcher {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics = metrics
	if metrics != nil {
		m.cache.WithMetrics(metrics.cacheMetrics)
	}
	return m
}

// WithLogger overrides the logger ScanFilesystem reports dropped routes to.
// Passing nil leaves the current logger in place.
func (m *Matcher) WithLogger(logger *slog.Logger) *Matcher {
	m.mu.Lock()
	defer m.mu.Unlock()
	if logger != nil {
		m.logger = logger
	}
	return m
}

// Match resolves urlPath against the route table, most specific route
// first. A hit in the per-URL cache is trusted only after revalidating:
// the cached route's pattern must still match urlPath, which protects a
// caller from a stale hit surviving a Rescan that removed or changed the
// page that used to serve this URL.
func (m *Matcher) Match(urlPath string) MatchResult {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if hit, ok := m.cache.Get(urlPath); ok {
		if hit.route.Pattern.MatchString(urlPath) {
			m.metrics.recordMatch()
			return MatchResult{Matched: true, FilePath: hit.route.FilePath, Params: hit.params}
		}
		m.cache.Erase(urlPath)
	}

	for i := range m.routes {
		route := &m.routes[i]
		groups := route.Pattern.FindStringSubmatch(urlPath)
		if groups == nil {
			continue
		}

		params := make(map[string]string, len(route.ParamNames))
		for pi, name := range route.ParamNames {
			if pi+1 < len(groups) && groups[pi+1] != "" {
				params[name] = groups[pi+1]
			}
		}

		m.cache.Put(urlPath, cachedMatch{route: route, params: params})
		m.metrics.recordMatch()
		return MatchResult{Matched: true, FilePath: route.FilePath, Params: params}
	}

	m.metrics.recordMiss()
	return MatchResult{Matched: false}
}

// Rescan re-walks the pages directory and atomically replaces the route
// table. The per-URL match cache is cleared since every cached *Route
// pointer would otherwise outlive the table it came from.
func (m *Matcher) Rescan() {
	m.mu.RLock()
	logger := m.logger
	m.mu.RUnlock()

	routes := ScanFilesystem(m.pagesDir, logger)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes = routes
	m.cache.Clear()
	m.metrics.recordRescan(len(routes))
}

// Routes returns a copy of the current route table, most specific first.
// Intended for diagnostics and tests, not the request-serving hot path.
func (m *Matcher) Routes() []Route {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Route, len(m.routes))
	copy(out, m.routes)
	return out
}
