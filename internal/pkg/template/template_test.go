package template

import (
	"testing"
)

func TestRenderReplacesKnownPlaceholders(t *testing.T) {
	got := Render("Тема: {theme}, аудитория {age} лет", map[string]string{
		"theme": "Мифы о ретиноле",
		"age":   "25-40",
	})
	want := "Тема: Мифы о ретиноле, аудитория 25-40 лет"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderNoPlaceholdersIsNoOp(t *testing.T) {
	text := "plain text without markers"
	if got := Render(text, map[string]string{"x": "y"}); got != text {
		t.Fatalf("Render() = %q, want unchanged %q", got, text)
	}
}

func TestRenderUnknownPlaceholderPassesThrough(t *testing.T) {
	if got := Render("{x}", map[string]string{}); got != "{x}" {
		t.Fatalf("Render() = %q, want {x}", got)
	}
}

func TestRenderIdempotent(t *testing.T) {
	vars := map[string]string{"name": "Шарм"}
	once := Render("Салон {name}", vars)
	twice := Render(once, vars)
	if once != twice {
		t.Fatalf("second Render changed output: %q -> %q", once, twice)
	}
}
