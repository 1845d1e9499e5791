package jsx

import "strings"

// reactBindingNeedles are the substrings HasReactBinding looks for anywhere
// in a source file, not just at the top — a require() call buried inside a
// conditional still counts as the module supplying its own binding.
var reactBindingNeedles = []string{
	`require('react')`,
	`require("react")`,
	`from 'react'`,
	`from "react"`,
}

// HasReactBinding reports whether src already imports or requires react
// itself, in any of the forms a hand-written module commonly uses.
func HasReactBinding(src string) bool {
	for _, needle := range reactBindingNeedles {
		if strings.Contains(src, needle) {
			return true
		}
	}
	return false
}

// reactPrologue obtains a React binding for a module that never required
// one itself. It checks globalThis.__MINI_NEXT_REACT__ first — a binding
// another already-loaded module republished there — and only falls back to
// the host's module-loading facility when no such global exists.
// require.main.require prefers the host application's own copy of react
// over a second copy mininext might ship, falling back to an ordinary
// require when there is no require.main (e.g. under a bundler). The
// resolved binding is republished on globalThis so later modules reuse it
// instead of resolving react a second time.
const reactPrologue = "var __miniNextMain = (typeof require !== 'undefined' && require.main) ? require.main : null;\n" +
	"var __miniNextRequire = (__miniNextMain && typeof __miniNextMain.require === 'function') ? __miniNextMain.require.bind(__miniNextMain) : require;\n" +
	"var React = (typeof globalThis !== 'undefined' && globalThis.__MINI_NEXT_REACT__) ? globalThis.__MINI_NEXT_REACT__ : __miniNextRequire('react');\n" +
	"if (typeof globalThis !== 'undefined') {\n" +
	"  globalThis.__MINI_NEXT_REACT__ = React;\n" +
	"}\n"

// ToModule transforms input's JSX and, when input does not already bind its
// own React, prepends the prologue that makes one available to the
// generated React.createElement(...) calls.
func ToModule(input string) string {
	transformed := Transform(input)
	if HasReactBinding(input) {
		return transformed
	}
	return reactPrologue + transformed
}
