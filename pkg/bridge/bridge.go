// Package bridge is the host-runtime bridge spec §4.7/§6 (C8) describes:
// pure data transfer between the compute core (router, cache, markdown,
// template, jsx, watch) and whatever embeds it. It exposes exactly the six
// operation families §6 lists as plain Go functions and methods over the
// core's own handle types — there is no serialization boundary here, since
// both sides of this bridge are the same process; a host embedding mininext
// from another language would put its own FFI layer in front of these
// functions, not inside them.
package bridge

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/mininext-go/mininext/internal/config"
	"github.com/mininext-go/mininext/internal/errors"
	"github.com/mininext-go/mininext/internal/strutil"
	"github.com/mininext-go/mininext/pkg/cache"
	"github.com/mininext-go/mininext/pkg/jsx"
	"github.com/mininext-go/mininext/pkg/markdown"
	"github.com/mininext-go/mininext/pkg/router"
	"github.com/mininext-go/mininext/pkg/template"
	"github.com/mininext-go/mininext/pkg/watch"
)

// Core bundles the three long-lived handles a host runtime constructs once
// at startup and keeps for the life of the process: the route matcher (C6),
// the SSR render cache (C2), and the filesystem watcher (C7). NewFromConfig
// is the only place the mininext.json schema in internal/config actually
// gets read.
type Core struct {
	Routes  *router.Matcher
	Cache   *SSRCache
	Watcher *FileWatcher
}

// NewFromConfig builds a Core from cfg, relative to projectDir: the route
// matcher scans cfg.PagesDir, the SSR cache is sized to cfg.Cache.Capacity,
// and — if sink is non-nil — a watcher is started over cfg.PagesDir using
// cfg.Watch.PollInterval and cfg.Watch.Debounce. Passing a nil sink skips
// starting the watcher, for callers that only need static route resolution
// and rendering (for example a one-shot build).
func NewFromConfig(cfg *config.Config, projectDir string, sink func(paths []string)) (*Core, error) {
	if cfg == nil {
		return nil, errors.New(errors.InvalidArgument, "config is required")
	}

	pagesDir := projectDir
	if cfg.PagesDir != "" {
		pagesDir = filepath.Join(projectDir, cfg.PagesDir)
	}

	routes, err := RouteMatcherNew(pagesDir)
	if err != nil {
		return nil, err
	}

	ssrCache, err := SSRCacheNew(cfg.Cache.Capacity)
	if err != nil {
		return nil, err
	}

	core := &Core{Routes: routes, Cache: ssrCache}
	if sink == nil {
		return core, nil
	}

	pollInterval, err := time.ParseDuration(cfg.Watch.PollInterval)
	if err != nil {
		return nil, errors.Wrap(errors.InvalidArgument, "invalid watch.pollInterval "+cfg.Watch.PollInterval, err)
	}
	debounce, err := time.ParseDuration(cfg.Watch.Debounce)
	if err != nil {
		return nil, errors.Wrap(errors.InvalidArgument, "invalid watch.debounce "+cfg.Watch.Debounce, err)
	}

	w := watch.New(pagesDir, watch.WithPollInterval(pollInterval), watch.WithDebounce(debounce))
	if err := w.Start(sink); err != nil {
		return nil, errors.Wrap(errors.WatcherFailed, "failed to start watcher on "+pagesDir, err)
	}
	core.Watcher = w
	return core, nil
}

// Close stops c's watcher, if one was started. The route matcher and cache
// hold no resources that need releasing.
func (c *Core) Close() {
	if c.Watcher != nil {
		FileWatcherStop(c.Watcher)
	}
}

// RouteMatcherNew scans pagesDir and returns a handle usable with
// RouteMatcherMatch and RouteMatcherRescan.
func RouteMatcherNew(pagesDir string) (*router.Matcher, error) {
	if pagesDir == "" {
		return nil, errors.New(errors.InvalidArgument, "pages_dir is required")
	}
	return router.New(pagesDir), nil
}

// RouteMatcherMatch resolves url against h's route table. Query strings and
// fragments are stripped before matching, per spec §4.5 ("ignore
// query/fragment at the caller"); captured parameter values are then
// percent-decoded, since §4.5 specifies the resolver itself treats input
// byte-wise and leaves undecoding to the caller.
func RouteMatcherMatch(h *router.Matcher, rawURL string) (router.MatchResult, error) {
	if h == nil {
		return router.MatchResult{}, errors.New(errors.InvalidArgument, "route matcher handle is nil")
	}

	result := h.Match(normalizeURLPath(rawURL))
	if !result.Matched || len(result.Params) == 0 {
		return result, nil
	}

	decoded := make(map[string]string, len(result.Params))
	for name, value := range result.Params {
		decoded[name] = strutil.URLDecode(value)
	}
	result.Params = decoded
	return result, nil
}

// RouteMatcherRescan atomically rebuilds h's route table.
func RouteMatcherRescan(h *router.Matcher) error {
	if h == nil {
		return errors.New(errors.InvalidArgument, "route matcher handle is nil")
	}
	h.Rescan()
	return nil
}

// SSRCache is the C2 handle type the runtime holds: an LRU mapping a
// caller-chosen fingerprint string to rendered page HTML.
type SSRCache = cache.LRU[string, string]

// SSRCacheNew constructs an SSRCache of the given capacity. A capacity
// below 1 is raised to 1 by cache.New, matching §4.1's "N >= 1" contract.
func SSRCacheNew(capacity int) (*SSRCache, error) {
	return cache.New[string, string](capacity), nil
}

// SSRCacheGet looks up key. ok is false when the key is absent — spec §7
// models this as NotFound being option-shaped, not an error.
func SSRCacheGet(h *SSRCache, key string) (value string, ok bool, err error) {
	if h == nil {
		return "", false, errors.New(errors.InvalidArgument, "ssr cache handle is nil")
	}
	v, ok := h.Get(key)
	return v, ok, nil
}

// SSRCacheSet stores value under key, evicting the least-recently-used
// entry first if the cache is at capacity.
func SSRCacheSet(h *SSRCache, key, value string) error {
	if h == nil {
		return errors.New(errors.InvalidArgument, "ssr cache handle is nil")
	}
	h.Put(key, value)
	return nil
}

// SSRCacheErase removes key if present, without evicting any other entry.
func SSRCacheErase(h *SSRCache, key string) error {
	if h == nil {
		return errors.New(errors.InvalidArgument, "ssr cache handle is nil")
	}
	h.Erase(key)
	return nil
}

// SSRCacheClear empties the cache.
func SSRCacheClear(h *SSRCache) error {
	if h == nil {
		return errors.New(errors.InvalidArgument, "ssr cache handle is nil")
	}
	h.Clear()
	return nil
}

// MarkdownToHTML renders s through the C4 Markdown subset. Per spec §7,
// C4 never fails: malformed input renders best-effort.
func MarkdownToHTML(s string) (string, error) {
	return markdown.ToHTML(s), nil
}

// RenderTemplate substitutes ctx into tpl using the C3 template engine. Per
// spec §7, C3 never fails.
func RenderTemplate(tpl string, ctx map[string]string, escape bool) (string, error) {
	return template.Render(tpl, template.Context(ctx), escape), nil
}

// JSXToModule transforms src's embedded markup into React.createElement(...)
// calls and injects the React-binding prologue when needed. Per spec §7,
// C5 never fails: an unparseable element is emitted literally.
func JSXToModule(src string) (string, error) {
	return jsx.ToModule(src), nil
}

// FileWatcher is the C7 handle type: a single-goroutine observer over one
// root directory.
type FileWatcher = watch.Watcher

// FileWatcherStart constructs and starts a watcher rooted at rootPath,
// invoking sink with the coalesced set of changed paths on every debounce
// window that saw at least one change. recursive is ignored: both the
// native and polling backends always watch rootPath recursively, and there
// is no non-recursive mode.
func FileWatcherStart(rootPath string, recursive bool, sink func(paths []string)) (*FileWatcher, error) {
	if rootPath == "" {
		return nil, errors.New(errors.InvalidArgument, "root_path is required")
	}
	if sink == nil {
		return nil, errors.New(errors.InvalidArgument, "sink callback is required")
	}

	w := watch.New(rootPath)
	if err := w.Start(sink); err != nil {
		return nil, errors.Wrap(errors.WatcherFailed, "failed to start watcher on "+rootPath, err)
	}
	return w, nil
}

// FileWatcherStop halts h and waits for its observer goroutine to exit.
// Stop is infallible per spec §7.
func FileWatcherStop(h *FileWatcher) {
	if h == nil {
		return
	}
	h.Stop()
}

// RenderComponent asks the host to load modulePath and invoke it with the
// properties encoded in propsJSON, returning the rendered HTML. Render
// failures propagate verbatim per spec §7 ("Render failures propagate
// verbatim to the caller"); any path text folded into the returned error's
// message is escaped via sanitizePathForMessage regardless of how that
// message happens to be formatted, honoring §9's third open question.
func RenderComponent(host Host, modulePath, propsJSON string) (string, error) {
	if host.Loader == nil || host.Invoker == nil {
		return "", errors.New(errors.InvalidArgument, "host bridge is not configured")
	}
	if modulePath == "" {
		return "", errors.New(errors.InvalidArgument, "module_path is required")
	}

	var props map[string]any
	if strutil.Trim(propsJSON) != "" {
		if err := json.Unmarshal([]byte(propsJSON), &props); err != nil {
			return "", errors.Wrap(errors.InvalidArgument, "props_json is not valid JSON", err)
		}
	}

	handle, err := host.Loader.Load(modulePath)
	if err != nil {
		return "", errors.Wrap(errors.RenderFailed, "failed to load module "+sanitizePathForMessage(modulePath), err)
	}

	html, err := host.Invoker.Invoke(handle, props)
	if err != nil {
		return "", errors.Wrap(errors.RenderFailed, "component invocation failed for "+sanitizePathForMessage(modulePath), err)
	}
	return html, nil
}

// sanitizePathForMessage escapes backslashes and backticks before a path is
// folded into an error message. The core never actually splices paths into
// a host-language template literal — props travel as plain Go values, not
// spliced source text — so this has no live attacker-controlled template
// to defend, but the escaping itself is kept to honor the original's
// intended guarantee regardless of string syntax.
func sanitizePathForMessage(path string) string {
	path = strings.ReplaceAll(path, `\`, `\\`)
	path = strings.ReplaceAll(path, "`", "\\`")
	return path
}

// normalizeURLPath strips a trailing query string and/or fragment from
// rawURL without percent-decoding anything else. Matching deliberately
// happens on the still-encoded path: spec §4.5 has the resolver treat
// input byte-wise so a percent-encoded "/" inside a dynamic segment
// ("%2F") does not get mistaken for a path separator. Decoding is left to
// the caller, applied only to the captured parameter values after a match
// (see RouteMatcherMatch).
func normalizeURLPath(rawURL string) string {
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}
