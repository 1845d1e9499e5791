// Package router resolves request paths against a pages directory the way
// spec §4.5 (C6) describes: each page file under the directory derives a
// route string, dynamic segments compile to a regex with named capture
// order, and routes are tried in a fixed priority order — static beats
// dynamic beats catch-all beats optional catch-all — so the most specific
// match always wins regardless of scan order. This mirrors the richer of
// the two route matchers found in the original implementation
// (route_matcher.cpp/.hpp), the one with catch-all and optional catch-all
// support, rather than vango's own radix-tree router (pkg/router/tree.go) —
// the tree loses the ability to express an optional catch-all as a single
// node, which this spec requires.
//
// # File structure convention
//
// Given a pages directory:
//
//	pages/
//	├── index.jsx
//	├── users/
//	│   ├── index.jsx
//	│   └── [id].jsx
//	└── docs/
//	    └── [...path].jsx
//
// ScanFilesystem derives one route per page file:
//
//	/               -> pages/index.jsx
//	/users          -> pages/users/index.jsx
//	/users/[id]     -> pages/users/[id].jsx   (Dynamic, captures "id")
//	/docs/[...path] -> pages/docs/[...path].jsx (CatchAll, captures "path")
//
// # Usage
//
//	m := router.New("pages")
//	result := m.Match("/users/42")
//	// result.Matched == true
//	// result.FilePath == "pages/users/[id].jsx"
//	// result.Params == map[string]string{"id": "42"}
//
//	// A background goroutine rebuilds the table after the watcher
//	// reports a change under the pages directory:
//	m.Rescan()
package router
