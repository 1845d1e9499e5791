// Package markdown renders the narrow, line-oriented Markdown subset spec
// §4.3 (C4) defines: fenced code blocks, ATX headings h1-h6, "-"/"*" lists,
// and inline code/bold/italic/link spans, with every plain-text byte
// HTML-escaped. This is not a CommonMark implementation — unclosed inline
// markers fall back to literal escaped text instead of CommonMark's looser
// matching rules — so a general-purpose library like goldmark would render
// a different document than this package for the same malformed input;
// the renderer is transcribed directly from the original's
// markdown_parser.cpp rather than wrapping one.
package markdown

import (
	"strings"

	"github.com/mininext-go/mininext/internal/strutil"
)

// ToHTML converts markdown to the subset of HTML spec §4.3 describes.
func ToHTML(markdown string) string {
	lines := strings.Split(markdown, "\n")

	var b strings.Builder
	inCodeBlock := false
	inList := false

	closeList := func() {
		if inList {
			b.WriteString("</ul>\n")
			inList = false
		}
	}

	for _, rawLine := range lines {
		line := strings.TrimSuffix(rawLine, "\r")
		trimmed := strings.TrimSpace(line)

		if trimmed == "```" {
			closeList()
			if inCodeBlock {
				b.WriteString("</code></pre>\n")
			} else {
				b.WriteString("<pre><code>")
			}
			inCodeBlock = !inCodeBlock
			continue
		}

		if inCodeBlock {
			b.WriteString(strutil.HTMLEscape(line))
			b.WriteByte('\n')
			continue
		}

		if trimmed == "" {
			closeList()
			continue
		}

		if level, rest, ok := headingLevel(trimmed); ok {
			closeList()
			b.WriteString("<h")
			b.WriteByte('0' + byte(level))
			b.WriteString(">")
			b.WriteString(renderInline(rest))
			b.WriteString("</h")
			b.WriteByte('0' + byte(level))
			b.WriteString(">\n")
			continue
		}

		if isListItem(trimmed) {
			if !inList {
				b.WriteString("<ul>\n")
				inList = true
			}
			b.WriteString("<li>")
			b.WriteString(renderInline(trimmed[2:]))
			b.WriteString("</li>\n")
			continue
		}

		closeList()
		b.WriteString("<p>")
		b.WriteString(renderInline(trimmed))
		b.WriteString("</p>\n")
	}

	closeList()
	if inCodeBlock {
		b.WriteString("</code></pre>\n")
	}

	return b.String()
}

// headingLevel reports whether line is an ATX heading ("#" through "######"
// followed by a space), returning the level (1-6) and the text after the
// marker.
func headingLevel(line string) (level int, rest string, ok bool) {
	n := 0
	for n < len(line) && n < 6 && line[n] == '#' {
		n++
	}
	if n == 0 || n >= len(line) || line[n] != ' ' {
		return 0, "", false
	}
	return n, line[n+1:], true
}

// isListItem reports whether line opens or continues an unordered list
// item: a "-" or "*" marker followed by a space.
func isListItem(line string) bool {
	return len(line) >= 2 && (line[0] == '-' || line[0] == '*') && line[1] == ' '
}

// renderInline applies the inline span grammar — `code`, **bold**, *italic*,
// and [text](url) — to a single line of plain text, HTML-escaping
// everything that isn't consumed by one of those spans. An unclosed marker
// is not an error: the marker character itself falls through to the default
// single-byte escape, exactly as the original's renderInline does.
func renderInline(line string) string {
	var b strings.Builder
	i := 0
	for i < len(line) {
		switch {
		case line[i] == '`':
			if end := strings.IndexByte(line[i+1:], '`'); end >= 0 {
				b.WriteString("<code>")
				b.WriteString(strutil.HTMLEscape(line[i+1 : i+1+end]))
				b.WriteString("</code>")
				i = i + 1 + end + 1
				continue
			}

		case strings.HasPrefix(line[i:], "**"):
			if end := strings.Index(line[i+2:], "**"); end >= 0 {
				b.WriteString("<strong>")
				b.WriteString(strutil.HTMLEscape(line[i+2 : i+2+end]))
				b.WriteString("</strong>")
				i = i + 2 + end + 2
				continue
			}

		case line[i] == '*':
			if end := strings.IndexByte(line[i+1:], '*'); end >= 0 {
				b.WriteString("<em>")
				b.WriteString(strutil.HTMLEscape(line[i+1 : i+1+end]))
				b.WriteString("</em>")
				i = i + 1 + end + 1
				continue
			}

		case line[i] == '[':
			if close := strings.IndexByte(line[i+1:], ']'); close >= 0 {
				textEnd := i + 1 + close
				if textEnd+1 < len(line) && line[textEnd+1] == '(' {
					if urlEnd := strings.IndexByte(line[textEnd+2:], ')'); urlEnd >= 0 {
						text := line[i+1 : textEnd]
						url := line[textEnd+2 : textEnd+2+urlEnd]
						b.WriteString(`<a href="`)
						b.WriteString(strutil.HTMLEscape(url))
						b.WriteString(`">`)
						b.WriteString(strutil.HTMLEscape(text))
						b.WriteString("</a>")
						i = textEnd + 2 + urlEnd + 1
						continue
					}
				}
			}
		}

		b.WriteString(strutil.HTMLEscape(line[i : i+1]))
		i++
	}
	return b.String()
}
