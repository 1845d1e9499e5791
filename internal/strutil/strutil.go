// Package strutil provides the small set of byte-wise string primitives the
// rest of mininext builds on: trimming, splitting, prefix/suffix checks,
// HTML escaping, and URL percent-decoding. None of it is novel; it exists so
// every other package shares one escaping and trimming policy instead of
// reaching for slightly different stdlib incantations.
package strutil

import "strings"

// Trim removes leading and trailing ASCII whitespace from s.
func Trim(s string) string {
	return strings.TrimFunc(s, isASCIISpace)
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// StartsWith reports whether s begins with prefix.
func StartsWith(s, prefix string) bool {
	return strings.HasPrefix(s, prefix)
}

// EndsWith reports whether s ends with suffix.
func EndsWith(s, suffix string) bool {
	return strings.HasSuffix(s, suffix)
}

// Split splits s on every occurrence of delim, including a trailing empty
// field when s ends with delim — the same behavior as strings.Split, kept
// here as a named primitive so callers don't need to remember stdlib's
// exact semantics at every call site.
func Split(s string, delim byte) []string {
	return strings.Split(s, string(delim))
}

// HTMLEscape replaces &, <, >, ", and ' with their named HTML entities.
// Every other byte is copied through unchanged. This is the one escape
// policy shared by the template engine (C3) and the Markdown renderer (C4).
func HTMLEscape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#39;")
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// URLDecode percent-decodes s and turns '+' into a literal space, matching
// the classic application/x-www-form-urlencoded convention. Invalid percent
// sequences (missing or non-hex digits) are copied through literally rather
// than rejected.
func URLDecode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && i+2 < len(s) {
			hi, okHi := hexVal(s[i+1])
			lo, okLo := hexVal(s[i+2])
			if okHi && okLo {
				b.WriteByte(byte(hi<<4 | lo))
				i += 2
				continue
			}
		}
		if c == '+' {
			b.WriteByte(' ')
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func hexVal(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

// IsIdentByte reports whether c may appear in a template/JSX identifier key:
// letters, digits, underscore, or dot.
func IsIdentByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c == '_' || c == '.'
}
