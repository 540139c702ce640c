package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChromaHighlighter_KnownLanguage(t *testing.T) {
	h := NewChromaHighlighter("monokai", nil)

	out, ok := h.Highlight("go", "package main\n\nfunc main() {}")
	require.True(t, ok)
	assert.Contains(t, out, `class="`)
	assert.Contains(t, out, "main")
	assert.NotContains(t, out, "<pre", "the caller owns the surrounding pre")
}

func TestChromaHighlighter_EscapesCode(t *testing.T) {
	h := NewChromaHighlighter("monokai", nil)

	out, ok := h.Highlight("javascript", `if (a < b) { alert("x") }`)
	require.True(t, ok)
	assert.Contains(t, out, "&lt;")
	assert.NotContains(t, out, "a < b")
}

func TestChromaHighlighter_UnknownLanguage(t *testing.T) {
	h := NewChromaHighlighter("monokai", nil)

	_, ok := h.Highlight("not-a-real-language", "whatever")
	assert.False(t, ok)

	// cached miss answers the same way
	_, ok = h.Highlight("not-a-real-language", "again")
	assert.False(t, ok)
}

func TestChromaHighlighter_CSS(t *testing.T) {
	assert.Contains(t, NewChromaHighlighter("github", nil).CSS(), ".chroma")
	assert.NotEmpty(t, NewChromaHighlighter("no-such-style", nil).CSS())
}
