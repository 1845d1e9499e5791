package jsx

import "strings"

// attr is one parsed JSX attribute: a name and the JS expression text that
// should appear as its value in the generated props object.
type attr struct {
	name      string
	valueExpr string
}

// parseElement attempts to parse one JSX element starting at s[start],
// which must be '<'. On success it returns the generated
// React.createElement(...) expression text and the index just past the
// element's closing tag. On failure it returns false and the caller is
// expected to treat s[start] as an ordinary '<' byte rather than abort.
func parseElement(s string, start int) (string, int, bool) {
	pos := start
	if pos >= len(s) || s[pos] != '<' {
		return "", start, false
	}
	pos++

	isFragment := false
	var tagName string
	if pos < len(s) && s[pos] == '>' {
		isFragment = true
		pos++
	} else {
		if pos >= len(s) || !isTagNameStartByte(s[pos]) {
			return "", start, false
		}
		nameStart := pos
		pos++
		for pos < len(s) && isTagNameByte(s[pos]) {
			pos++
		}
		tagName = s[nameStart:pos]
	}

	var attrs []attr
	selfClosing := false
	if !isFragment {
		for {
			pos = skipWhitespace(s, pos)
			if pos >= len(s) {
				return "", start, false
			}
			if s[pos] == '/' && pos+1 < len(s) && s[pos+1] == '>' {
				selfClosing = true
				pos += 2
				break
			}
			if s[pos] == '>' {
				pos++
				break
			}
			a, newPos, ok := parseAttribute(s, pos)
			if !ok {
				return "", start, false
			}
			attrs = append(attrs, a)
			pos = newPos
		}
	}

	var children []string
	if !selfClosing {
		for {
			if pos >= len(s) {
				return "", start, false
			}
			if strings.HasPrefix(s[pos:], "</") {
				break
			}
			switch s[pos] {
			case '<':
				childExpr, newPos, ok := parseElement(s, pos)
				if !ok {
					return "", start, false
				}
				children = append(children, childExpr)
				pos = newPos
			case '{':
				exprText, newPos, ok := consumeBalancedBraces(s, pos)
				if !ok {
					return "", start, false
				}
				if trimmed := strings.TrimSpace(exprText); trimmed != "" {
					children = append(children, trimmed)
				}
				pos = newPos
			default:
				textStart := pos
				for pos < len(s) && s[pos] != '<' && s[pos] != '{' {
					pos++
				}
				if text := normalizeText(s[textStart:pos]); text != "" {
					children = append(children, appendJSStringLiteral(text))
				}
			}
		}

		closeName, newPos, ok := parseClosingTag(s, pos, isFragment)
		if !ok {
			return "", start, false
		}
		if !isFragment && closeName != tagName {
			return "", start, false
		}
		pos = newPos
	}

	return buildCreateElement(tagName, isFragment, attrs, children), pos, true
}

// parseAttribute parses one "name", "name=value", or bare "name" attribute
// starting at s[pos]. A name with no '=' gets the implicit boolean value
// "true", matching JSX's own shorthand for boolean props.
func parseAttribute(s string, pos int) (attr, int, bool) {
	nameStart := pos
	for pos < len(s) && isAttrNameByte(s[pos]) {
		pos++
	}
	if pos == nameStart {
		return attr{}, pos, false
	}
	name := s[nameStart:pos]

	if pos >= len(s) || s[pos] != '=' {
		return attr{name: name, valueExpr: "true"}, pos, true
	}
	pos++
	if pos >= len(s) {
		return attr{}, pos, false
	}

	switch s[pos] {
	case '"', '\'':
		content, newPos, ok := parseAttrStringLiteral(s, pos, s[pos])
		if !ok {
			return attr{}, pos, false
		}
		return attr{name: name, valueExpr: appendJSStringLiteral(content)}, newPos, true
	case '{':
		exprText, newPos, ok := consumeBalancedBraces(s, pos)
		if !ok {
			return attr{}, pos, false
		}
		return attr{name: name, valueExpr: strings.TrimSpace(exprText)}, newPos, true
	default:
		tokenStart := pos
		for pos < len(s) && !isWhitespace(s[pos]) && s[pos] != '>' && s[pos] != '/' {
			pos++
		}
		if pos == tokenStart {
			return attr{}, pos, false
		}
		return attr{name: name, valueExpr: appendJSStringLiteral(s[tokenStart:pos])}, pos, true
	}
}

// parseAttrStringLiteral scans a quoted attribute value starting at the
// opening quote. It deliberately does not interpret backslash escapes: a
// backslash is an ordinary character, not an escape for the following
// quote. This matches the original parser exactly — attribute string
// literals are the one place in the grammar where a backslash never
// changes the meaning of the next character.
func parseAttrStringLiteral(s string, pos int, quote byte) (string, int, bool) {
	contentStart := pos + 1
	end := strings.IndexByte(s[contentStart:], quote)
	if end < 0 {
		return "", pos, false
	}
	end += contentStart
	return s[contentStart:end], end + 1, true
}

// parseClosingTag parses a "</Name>" (or "</>" for a fragment) starting at
// s[pos]. It returns the parsed name (empty for a fragment) and the index
// just past the closing '>'.
func parseClosingTag(s string, pos int, isFragment bool) (string, int, bool) {
	if !strings.HasPrefix(s[pos:], "</") {
		return "", pos, false
	}
	pos += 2

	if isFragment {
		pos = skipWhitespace(s, pos)
		if pos < len(s) && s[pos] == '>' {
			return "", pos + 1, true
		}
		return "", pos, false
	}

	if pos >= len(s) || !isTagNameStartByte(s[pos]) {
		return "", pos, false
	}
	nameStart := pos
	pos++
	for pos < len(s) && isTagNameByte(s[pos]) {
		pos++
	}
	name := s[nameStart:pos]
	pos = skipWhitespace(s, pos)
	if pos < len(s) && s[pos] == '>' {
		return name, pos + 1, true
	}
	return "", pos, false
}

// consumeBalancedBraces scans a "{...}" expression starting at s[start],
// which must be '{'. It tracks brace depth through nested string, template,
// and comment contexts so an inner "}" inside a string literal does not
// prematurely close the expression. It returns the expression text between
// the outer braces (exclusive) and the index just past the closing '}'.
func consumeBalancedBraces(s string, start int) (string, int, bool) {
	if start >= len(s) || s[start] != '{' {
		return "", start, false
	}

	const (
		modeNormal = iota
		modeSingle
		modeDouble
		modeTemplate
		modeLineComment
		modeBlockComment
	)

	depth := 0
	mode := modeNormal
	pos := start

	for pos < len(s) {
		c := s[pos]
		switch mode {
		case modeNormal:
			switch c {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return s[start+1 : pos], pos + 1, true
				}
			case '\'':
				mode = modeSingle
			case '"':
				mode = modeDouble
			case '`':
				mode = modeTemplate
			case '/':
				if pos+1 < len(s) && s[pos+1] == '/' {
					mode = modeLineComment
					pos++
				} else if pos+1 < len(s) && s[pos+1] == '*' {
					mode = modeBlockComment
					pos++
				}
			}
		case modeSingle:
			if c == '\\' {
				pos++
			} else if c == '\'' {
				mode = modeNormal
			}
		case modeDouble:
			if c == '\\' {
				pos++
			} else if c == '"' {
				mode = modeNormal
			}
		case modeTemplate:
			if c == '\\' {
				pos++
			} else if c == '`' {
				mode = modeNormal
			}
		case modeLineComment:
			if c == '\n' {
				mode = modeNormal
			}
		case modeBlockComment:
			if c == '*' && pos+1 < len(s) && s[pos+1] == '/' {
				mode = modeNormal
				pos++
			}
		}
		pos++
	}

	return "", start, false
}

// buildCreateElement renders a parsed element as React.createElement(tag,
// props, ...children). A fragment renders React.Fragment; a lowercase,
// dot-free tag name renders as a quoted string (a DOM tag); anything else
// (component references, "Foo.Bar" namespaced components) renders as a bare
// identifier expression so it resolves to the in-scope binding.
func buildCreateElement(tagName string, isFragment bool, attrs []attr, children []string) string {
	var tagArg string
	switch {
	case isFragment:
		tagArg = "React.Fragment"
	case isComponentTag(tagName) || strings.Contains(tagName, "."):
		tagArg = tagName
	default:
		tagArg = appendJSStringLiteral(tagName)
	}

	var b strings.Builder
	b.WriteString("React.createElement(")
	b.WriteString(tagArg)
	b.WriteString(", ")
	b.WriteString(buildPropsObject(attrs))
	for _, c := range children {
		b.WriteString(", ")
		b.WriteString(c)
	}
	b.WriteString(")")
	return b.String()
}

// buildPropsObject renders attrs as a JS object literal, or the literal
// null when there are no attributes — React treats a null props argument
// the same as an empty object, and the original never allocates one
// needlessly.
func buildPropsObject(attrs []attr) string {
	if len(attrs) == 0 {
		return "null"
	}
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		parts[i] = appendJSObjectKey(a.name) + ": " + a.valueExpr
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// normalizeText collapses a run of JSX text into the whitespace-normalized
// form React itself would produce: internal whitespace (including
// newlines) collapses to a single space, and text that is pure whitespace
// normalizes to empty (and is therefore dropped as a child entirely). A
// leading or trailing whitespace run survives as a single space when it
// carries no newline — same-line whitespace right before a sibling
// {expression} or tag is significant — but is dropped when it does, since a
// line break at a child boundary is just source formatting.
func normalizeText(s string) string {
	collapsed := strings.Join(strings.Fields(s), " ")
	if collapsed == "" {
		return ""
	}
	if lead := leadingWhitespaceRun(s); lead != "" && !strings.Contains(lead, "\n") {
		collapsed = " " + collapsed
	}
	if trail := trailingWhitespaceRun(s); trail != "" && !strings.Contains(trail, "\n") {
		collapsed += " "
	}
	return collapsed
}

// leadingWhitespaceRun returns the whitespace s starts with, up to its
// first non-whitespace byte.
func leadingWhitespaceRun(s string) string {
	i := 0
	for i < len(s) && isWhitespace(s[i]) {
		i++
	}
	return s[:i]
}

// trailingWhitespaceRun returns the whitespace s ends with, back to its
// last non-whitespace byte.
func trailingWhitespaceRun(s string) string {
	i := len(s)
	for i > 0 && isWhitespace(s[i-1]) {
		i--
	}
	return s[i:]
}

// isComponentTag reports whether a tag name refers to a user component
// (capitalized, or starting with '_' or '$') rather than a built-in DOM
// element name, following the same convention React itself uses to decide
// whether to treat a JSX tag as a host element or a component reference.
func isComponentTag(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	return (c >= 'A' && c <= 'Z') || c == '_' || c == '$'
}

// isTagNameStartByte reports whether c can open a tag name.
func isTagNameStartByte(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_' || c == '$'
}

// isTagNameByte reports whether c can continue a tag name once opened,
// which additionally allows digits, '.', '-', and ':' — the last for
// namespaced tags like <svg:rect>.
func isTagNameByte(c byte) bool {
	return isTagNameStartByte(c) || (c >= '0' && c <= '9') || c == '.' || c == '-' || c == ':'
}

func isAttrNameByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c == '-' || c == '_' || c == '$' || c == ':'
}

func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

func skipWhitespace(s string, pos int) int {
	for pos < len(s) && isWhitespace(s[pos]) {
		pos++
	}
	return pos
}
