package router

import (
	"regexp"
	"strings"
)

// compileRoutePattern compiles a route string (e.g. "/blog/[id]" or
// "/docs/[[...slug]]") into its segment list, parameter names in capture
// order, and a regexp that matches a concrete URL path against it. ok is
// false for any malformed route — missing leading slash, an empty
// parameter name, or a catch-all/optional catch-all that isn't the route's
// final segment — and such routes are dropped by the scanner rather than
// causing the whole scan to fail.
func compileRoutePattern(route string) (segments []Segment, paramNames []string, pattern *regexp.Regexp, ok bool) {
	if !strings.HasPrefix(route, "/") {
		return nil, nil, nil, false
	}
	if route == "/" {
		pattern, err := regexp.Compile(`^/$`)
		if err != nil {
			return nil, nil, nil, false
		}
		return nil, nil, pattern, true
	}

	parts := strings.Split(strings.TrimPrefix(route, "/"), "/")
	var b strings.Builder
	b.WriteString("^/")

	for i, part := range parts {
		last := i == len(parts)-1

		switch {
		case strings.HasPrefix(part, "[[") && strings.HasSuffix(part, "]]") && len(part) >= 4:
			if !last {
				return nil, nil, nil, false
			}
			inner := part[2 : len(part)-2]
			if !strings.HasPrefix(inner, "...") {
				return nil, nil, nil, false
			}
			name := inner[3:]
			if name == "" {
				return nil, nil, nil, false
			}
			if i == 0 {
				b.Reset()
				b.WriteString(`^/(?:(.+))?`)
			} else {
				b.WriteString(`(?:/(.+))?`)
			}
			segments = append(segments, Segment{Kind: OptionalCatchAll, Text: name})
			paramNames = append(paramNames, name)

		case strings.HasPrefix(part, "[...") && strings.HasSuffix(part, "]") && len(part) >= 5:
			if !last {
				return nil, nil, nil, false
			}
			name := part[4 : len(part)-1]
			if name == "" {
				return nil, nil, nil, false
			}
			if i > 0 {
				b.WriteString("/")
			}
			b.WriteString(`(.+)`)
			segments = append(segments, Segment{Kind: CatchAll, Text: name})
			paramNames = append(paramNames, name)

		case strings.HasPrefix(part, "[") && strings.HasSuffix(part, "]") && len(part) >= 2:
			name := part[1 : len(part)-1]
			if name == "" {
				return nil, nil, nil, false
			}
			if i > 0 {
				b.WriteString("/")
			}
			b.WriteString(`([^/]+)`)
			segments = append(segments, Segment{Kind: Dynamic, Text: name})
			paramNames = append(paramNames, name)

		default:
			if part == "" {
				return nil, nil, nil, false
			}
			if i > 0 {
				b.WriteString("/")
			}
			b.WriteString(regexp.QuoteMeta(part))
			segments = append(segments, Segment{Kind: Static, Text: part})
		}
	}

	b.WriteString("$")
	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, nil, nil, false
	}
	return segments, paramNames, re, true
}
