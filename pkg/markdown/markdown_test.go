package markdown

import "testing"

func TestToHTMLHeadings(t *testing.T) {
	got := ToHTML("# Title\n## Sub")
	want := "<h1>Title</h1>\n<h2>Sub</h2>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestToHTMLParagraph(t *testing.T) {
	got := ToHTML("hello world")
	want := "<p>hello world</p>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestToHTMLEscapesPlainText(t *testing.T) {
	got := ToHTML("<script>")
	want := "<p>&lt;script&gt;</p>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestToHTMLList(t *testing.T) {
	got := ToHTML("- one\n- two\n")
	want := "<ul>\n<li>one</li>\n<li>two</li>\n</ul>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestToHTMLListClosedByBlankLine(t *testing.T) {
	got := ToHTML("- one\n\npara")
	want := "<ul>\n<li>one</li>\n</ul>\n<p>para</p>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestToHTMLFencedCodeBlockEscaped(t *testing.T) {
	got := ToHTML("```\n<b>raw</b>\n```")
	want := "<pre><code>&lt;b&gt;raw&lt;/b&gt;\n</code></pre>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestToHTMLUnclosedCodeBlockClosesAtEOF(t *testing.T) {
	got := ToHTML("```\ncode")
	want := "<pre><code>code\n</code></pre>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInlineCode(t *testing.T) {
	got := ToHTML("use `<tag>` here")
	want := "<p>use <code>&lt;tag&gt;</code> here</p>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInlineBoldAndItalic(t *testing.T) {
	got := ToHTML("**bold** and *italic*")
	want := "<p><strong>bold</strong> and <em>italic</em></p>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInlineLink(t *testing.T) {
	got := ToHTML(`[home](/index?a=1&b=2)`)
	want := `<p><a href="/index?a=1&amp;b=2">home</a></p>` + "\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInlineUnclosedMarkerFallsBackToLiteral(t *testing.T) {
	got := ToHTML("a * b")
	want := "<p>a * b</p>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestToHTMLTrimsSurroundingWhitespaceBeforeClassifying(t *testing.T) {
	got := ToHTML("  # Title  ")
	want := "<h1>Title</h1>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got = ToHTML("  - item  ")
	want = "<ul>\n<li>item</li>\n</ul>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
