// Package template implements the tiny mustache-like substitution language
// spec §4.2 (C3) describes: "{{name}}" interpolates an HTML-escaped value,
// "{{{name}}}" interpolates the value raw. There is no conditional, loop, or
// partial syntax — just key lookup and two escaping policies — matching
// the original renderer's template_engine.cpp line for line.
package template

import (
	"strings"

	"github.com/mininext-go/mininext/internal/strutil"
)

// Context supplies values by key. Keys absent from the context render as
// an empty string, matching the original's behavior of leaving an unknown
// placeholder blank rather than erroring.
type Context map[string]string

// Render substitutes every "{{key}}" and "{{{key}}}" placeholder in tpl
// with its value from ctx. "{{key}}" is HTML-escaped before insertion;
// "{{{key}}}" is inserted verbatim. When escape is false, even "{{key}}"
// is inserted verbatim — this mirrors the C++ renderTemplate's escape
// parameter, which callers set to false for contexts they have already
// sanitized themselves.
func Render(tpl string, ctx Context, escape bool) string {
	var b strings.Builder
	b.Grow(len(tpl))

	i := 0
	for i < len(tpl) {
		open := strings.Index(tpl[i:], "{{")
		if open < 0 {
			b.WriteString(tpl[i:])
			break
		}
		open += i
		b.WriteString(tpl[i:open])

		raw := open+2 < len(tpl) && tpl[open+2] == '{'
		keyStart := open + 2
		if raw {
			keyStart++
		}

		closeTok := "}}"
		if raw {
			closeTok = "}}}"
		}
		closeIdx := strings.Index(tpl[keyStart:], closeTok)
		if closeIdx < 0 {
			// Unclosed placeholder: the rest of the template is emitted
			// literally, exactly as the original does on a truncated tag.
			b.WriteString(tpl[open:])
			return b.String()
		}
		closeIdx += keyStart

		key := extractIdent(tpl[keyStart:closeIdx])
		value := ctx[key]

		if raw || !escape {
			b.WriteString(value)
		} else {
			b.WriteString(strutil.HTMLEscape(value))
		}

		i = closeIdx + len(closeTok)
	}

	return b.String()
}

// extractIdent keeps only identifier bytes (letters, digits, underscore,
// dot) from s, matching the original's behavior of silently dropping any
// stray whitespace or punctuation a sloppy template author left inside the
// braces instead of rejecting the whole placeholder.
func extractIdent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if strutil.IsIdentByte(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
