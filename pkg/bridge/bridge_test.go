package bridge

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mininext-go/mininext/internal/config"
	mnerrors "github.com/mininext-go/mininext/internal/errors"
)

func writePage(t *testing.T, dir, rel string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte("export default function Page() {}"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRouteMatcherRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "users/[id].jsx")

	h, err := RouteMatcherNew(dir)
	if err != nil {
		t.Fatalf("RouteMatcherNew: %v", err)
	}

	res, err := RouteMatcherMatch(h, "/users/hello%20world?x=1")
	if err != nil {
		t.Fatalf("RouteMatcherMatch: %v", err)
	}
	if !res.Matched {
		t.Fatal("expected a match")
	}
	if res.Params["id"] != "hello world" {
		t.Errorf("expected percent-decoded id, got %q", res.Params["id"])
	}

	if err := RouteMatcherRescan(h); err != nil {
		t.Fatalf("RouteMatcherRescan: %v", err)
	}
}

func TestNewFromConfigWiresRouterCacheAndWatcher(t *testing.T) {
	dir := t.TempDir()
	writePage(t, filepath.Join(dir, "pages"), "index.jsx")

	cfg := config.New()
	cfg.Watch.PollInterval = "10ms"
	cfg.Watch.Debounce = "5ms"

	events := make(chan []string, 4)
	core, err := NewFromConfig(cfg, dir, func(paths []string) { events <- paths })
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	defer core.Close()

	res := core.Routes.Match("/")
	if !res.Matched {
		t.Fatal("expected the index page to resolve")
	}

	if err := SSRCacheSet(core.Cache, "/", "<p>hi</p>"); err != nil {
		t.Fatalf("SSRCacheSet: %v", err)
	}
	if v, ok, _ := SSRCacheGet(core.Cache, "/"); !ok || v != "<p>hi</p>" {
		t.Fatalf("SSRCacheGet = %q, %v", v, ok)
	}

	if core.Watcher == nil {
		t.Fatal("expected a watcher to be started")
	}
	if err := os.WriteFile(filepath.Join(dir, "pages", "new.jsx"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-events:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a change event")
	}
}

func TestNewFromConfigSkipsWatcherWithNilSink(t *testing.T) {
	dir := t.TempDir()
	writePage(t, filepath.Join(dir, "pages"), "index.jsx")

	core, err := NewFromConfig(config.New(), dir, nil)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	defer core.Close()

	if core.Watcher != nil {
		t.Error("expected no watcher to be started when sink is nil")
	}
}

func TestNewFromConfigRejectsNilConfig(t *testing.T) {
	if _, err := NewFromConfig(nil, t.TempDir(), nil); !mnerrors.Is(err, mnerrors.InvalidArgument) {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
}

func TestNewFromConfigRejectsInvalidDurations(t *testing.T) {
	dir := t.TempDir()
	writePage(t, filepath.Join(dir, "pages"), "index.jsx")

	cfg := config.New()
	cfg.Watch.PollInterval = "not-a-duration"
	if _, err := NewFromConfig(cfg, dir, func([]string) {}); !mnerrors.Is(err, mnerrors.InvalidArgument) {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
}

func TestRouteMatcherNewRejectsEmptyDir(t *testing.T) {
	if _, err := RouteMatcherNew(""); err == nil {
		t.Fatal("expected an error for empty pages_dir")
	}
}

func TestSSRCacheLifecycle(t *testing.T) {
	h, err := SSRCacheNew(2)
	if err != nil {
		t.Fatalf("SSRCacheNew: %v", err)
	}

	if err := SSRCacheSet(h, "a", "<p>a</p>"); err != nil {
		t.Fatalf("SSRCacheSet: %v", err)
	}
	if v, ok, err := SSRCacheGet(h, "a"); err != nil || !ok || v != "<p>a</p>" {
		t.Fatalf("SSRCacheGet = %q, %v, %v", v, ok, err)
	}

	if err := SSRCacheErase(h, "a"); err != nil {
		t.Fatalf("SSRCacheErase: %v", err)
	}
	if _, ok, _ := SSRCacheGet(h, "a"); ok {
		t.Fatal("expected a miss after erase")
	}

	if err := SSRCacheSet(h, "b", "1"); err != nil {
		t.Fatal(err)
	}
	if err := SSRCacheClear(h); err != nil {
		t.Fatalf("SSRCacheClear: %v", err)
	}
	if _, ok, _ := SSRCacheGet(h, "b"); ok {
		t.Fatal("expected cache to be empty after Clear")
	}
}

func TestMarkdownAndTemplateNeverFail(t *testing.T) {
	if _, err := MarkdownToHTML("# title\nunterminated *em"); err != nil {
		t.Errorf("MarkdownToHTML returned an error: %v", err)
	}
	out, err := RenderTemplate("Hi {{n}}", map[string]string{"n": "<b>"}, true)
	if err != nil {
		t.Errorf("RenderTemplate returned an error: %v", err)
	}
	if out != "Hi &lt;b&gt;" {
		t.Errorf("RenderTemplate = %q", out)
	}
}

func TestJSXToModuleNeverFails(t *testing.T) {
	out, err := JSXToModule("const x = <div>hi")
	if err != nil {
		t.Errorf("JSXToModule returned an error: %v", err)
	}
	if out == "" {
		t.Error("expected non-empty output even for a malformed element")
	}
}

func TestFileWatcherStartAndStop(t *testing.T) {
	dir := t.TempDir()
	events := make(chan []string, 4)
	h, err := FileWatcherStart(dir, true, func(paths []string) { events <- paths })
	if err != nil {
		t.Fatalf("FileWatcherStart: %v", err)
	}
	defer FileWatcherStop(h)

	time.Sleep(10 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "page.jsx"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-events:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a change event")
	}
}

func TestFileWatcherStartRejectsMissingSink(t *testing.T) {
	if _, err := FileWatcherStart(t.TempDir(), true, nil); err == nil {
		t.Fatal("expected an error for a nil sink")
	}
}

type stubLoader struct {
	handle ModuleHandle
	err    error
}

func (s stubLoader) Load(path string) (ModuleHandle, error) { return s.handle, s.err }

type stubInvoker struct {
	html string
	err  error
}

func (s stubInvoker) Invoke(handle ModuleHandle, props map[string]any) (string, error) {
	return s.html, s.err
}

func TestRenderComponentPropagatesHTML(t *testing.T) {
	host := Host{Loader: stubLoader{handle: "mod"}, Invoker: stubInvoker{html: "<p>hi</p>"}}
	out, err := RenderComponent(host, "pages/index.jsx", `{"name":"world"}`)
	if err != nil {
		t.Fatalf("RenderComponent: %v", err)
	}
	if out != "<p>hi</p>" {
		t.Errorf("RenderComponent = %q", out)
	}
}

func TestRenderComponentPropagatesInvokerError(t *testing.T) {
	host := Host{Loader: stubLoader{handle: "mod"}, Invoker: stubInvoker{err: errors.New("boom")}}
	_, err := RenderComponent(host, "pages/index.jsx", "")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !mnerrors.Is(err, mnerrors.RenderFailed) {
		t.Errorf("expected RenderFailed, got %v", err)
	}
}

func TestRenderComponentRejectsInvalidPropsJSON(t *testing.T) {
	host := Host{Loader: stubLoader{}, Invoker: stubInvoker{}}
	_, err := RenderComponent(host, "pages/index.jsx", "{not json")
	if !mnerrors.Is(err, mnerrors.InvalidArgument) {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
}

func TestRenderComponentRejectsUnconfiguredHost(t *testing.T) {
	_, err := RenderComponent(Host{}, "pages/index.jsx", "")
	if !mnerrors.Is(err, mnerrors.InvalidArgument) {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
}
