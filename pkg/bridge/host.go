package bridge

// ModuleHandle is an opaque reference a ModuleLoader hands back for a
// resolved, already-transformed source file. The core never inspects it;
// it only threads it through to ComponentInvoker.Invoke.
type ModuleHandle any

// ModuleLoader resolves an already-transformed source file on disk to a
// handle the host's own runtime understands, per spec §4.7. Implementing
// this — and whatever embedding protocol sits behind it — is explicitly
// out of scope (spec §1): the core only depends on the interface.
type ModuleLoader interface {
	Load(path string) (ModuleHandle, error)
}

// ComponentInvoker invokes a loaded module with a property mapping and
// returns the component's rendered HTML, per spec §4.7.
type ComponentInvoker interface {
	Invoke(handle ModuleHandle, props map[string]any) (string, error)
}

// Host bundles the two abstract collaborators RenderComponent needs. A
// caller embedding mininext constructs one Host per runtime and passes it
// to every RenderComponent call; the core keeps no reference to it beyond
// the call's lifetime.
type Host struct {
	Loader  ModuleLoader
	Invoker ComponentInvoker
}
