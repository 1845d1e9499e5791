package template

import "testing"

func TestRenderEscaped(t *testing.T) {
	got := Render("<p>{{name}}</p>", Context{"name": "<b>Bo</b>"}, true)
	want := "<p>&lt;b&gt;Bo&lt;/b&gt;</p>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderRawBypassesEscaping(t *testing.T) {
	got := Render("{{{body}}}", Context{"body": "<b>Bo</b>"}, true)
	want := "<b>Bo</b>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderEscapeFalseAppliesToEveryPlaceholder(t *testing.T) {
	got := Render("{{name}}", Context{"name": "<i>x</i>"}, false)
	want := "<i>x</i>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderMissingKeyIsEmpty(t *testing.T) {
	got := Render("[{{missing}}]", Context{}, true)
	if got != "[]" {
		t.Errorf("got %q, want %q", got, "[]")
	}
}

func TestRenderUnclosedPlaceholderPassesThroughLiterally(t *testing.T) {
	got := Render("head {{broken", Context{"broken": "x"}, true)
	want := "head {{broken"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderIdentFilteringDropsNonIdentChars(t *testing.T) {
	// A stray space inside the key is dropped, so "na me" looks up "name".
	got := Render("{{na me}}", Context{"name": "Ada"}, true)
	if got != "Ada" {
		t.Errorf("got %q, want %q", got, "Ada")
	}
}

func TestRenderMultiplePlaceholders(t *testing.T) {
	got := Render("{{greeting}}, {{name}}!", Context{"greeting": "Hi", "name": "Ada"}, true)
	if got != "Hi, Ada!" {
		t.Errorf("got %q, want %q", got, "Hi, Ada!")
	}
}

func TestRenderNoPlaceholders(t *testing.T) {
	got := Render("plain text", Context{}, true)
	if got != "plain text" {
		t.Errorf("got %q, want %q", got, "plain text")
	}
}
