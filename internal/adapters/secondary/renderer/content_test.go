package renderer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeHighlighter struct{}

func (fakeHighlighter) Highlight(lang, code string) (string, bool) {
	if lang != "go" {
		return "", false
	}
	return `<span class="nx">` + code + `</span>`, true
}

func (fakeHighlighter) CSS() string { return ".chroma .nx { color: #fff; }" }

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, newTestParser().parse(""))
	assert.Empty(t, newTestParser().parse("  \n "))
}

func TestParse_Paragraphs(t *testing.T) {
	out := newTestParser().parse("Hello **world**\n\n\n\nSecond line")

	assert.Equal(t,
		`<p class="text-lg text-slate-300 mb-4">Hello <strong class="text-white font-semibold">world</strong></p>`+
			"\n\n"+
			`<p class="text-lg text-slate-300 mb-4">Second line</p>`,
		out)
}

func TestParse_CRLF(t *testing.T) {
	out := newTestParser().parse(":::tip\r\nAstuce\r\n:::")

	assert.Contains(t, out, "Astuce")
	assert.NotContains(t, out, ":::")
}

func TestParse_CodeIsProtected(t *testing.T) {
	out := newTestParser().parse("```\n:::cards\n[A|red] **pas gras**\n:::\n```")

	assert.Contains(t, out, `<div class="code-block my-4"><pre><code>:::cards`)
	assert.Contains(t, out, "**pas gras**")
	assert.NotContains(t, out, "md:grid-cols")
	assert.NotContains(t, out, "<strong")
}

func TestParse_CodeInsideBlockIsRestored(t *testing.T) {
	out := newTestParser().parse("Avant\n```js\nlet a = 1 < 2\n```\nAprès")

	assert.Contains(t, out, "let a = 1 &lt; 2")
	assert.NotContains(t, out, placeholderMark)
	assert.Less(t, strings.Index(out, "Avant"), strings.Index(out, "code-block"))
	assert.Less(t, strings.Index(out, "code-block"), strings.Index(out, "Après"))
}

func TestParse_TokenLookalikesAreText(t *testing.T) {
	p := newTestParser()

	t.Run("braced line is escaped", func(t *testing.T) {
		out := p.parse("{{<img src=x onerror=alert(1)>}}")

		assert.Equal(t, `<p class="text-lg text-slate-300 mb-4">{{&lt;img src=x onerror=alert(1)&gt;}}</p>`, out)
	})

	t.Run("braced name does not take the code block", func(t *testing.T) {
		out := p.parse("```\nfmt.Println(1)\n```\nSee {{CODE_0}} here")

		assert.Equal(t, 1, strings.Count(out, "fmt.Println(1)"))
		assert.Contains(t, out, `<p class="text-lg text-slate-300 mb-4">See {{CODE_0}} here</p>`)
		assert.Less(t, strings.Index(out, "fmt.Println(1)"), strings.Index(out, "See"))
		assert.NotContains(t, out, placeholderMark)
	})

	t.Run("marker runes are stripped", func(t *testing.T) {
		out := p.parse("```\nsecret()\n```\n" + placeholderMark + "CODE_0" + placeholderMark)

		assert.Equal(t, 1, strings.Count(out, "secret()"))
		assert.Contains(t, out, `<p class="text-lg text-slate-300 mb-4">CODE_0</p>`)
		assert.NotContains(t, out, placeholderMark)
	})
}

func TestParse_CodeLanguageWithSymbols(t *testing.T) {
	for _, lang := range []string{"c++", "objective-c", "c#", "vb.net"} {
		t.Run(lang, func(t *testing.T) {
			out := newTestParser().parse("```" + lang + "\nint x = a**b**c;\n:::tip\n```")

			assert.Contains(t, out, `<div class="code-block my-4"><pre><code>int x = a**b**c;`)
			assert.Contains(t, out, ":::tip")
			assert.NotContains(t, out, "<strong")
		})
	}
}

func TestParse_MarkupHighlighting(t *testing.T) {
	out := newTestParser().parse("```html\n<div class=\"a\">x</div>\n```")

	assert.Contains(t, out,
		`&lt;<span class="tag">div</span> <span class="attr">class</span>=<span class="value">&quot;a&quot;</span>&gt;x&lt;/<span class="tag">div</span>&gt;`)
}

func TestParse_PlainCodeIsNotHighlighted(t *testing.T) {
	out := newTestParser().parse("```python\nx = \"a\"\n```")

	assert.Contains(t, out, "x = &quot;a&quot;")
	assert.NotContains(t, out, `class="attr"`)
}

func TestParse_ExternalHighlighter(t *testing.T) {
	p := newTestParser()
	p.highlighter = fakeHighlighter{}

	out := p.parse("```go\nfmt.Println()\n```\n```html\n<b>\n```")

	assert.Contains(t, out, `<pre class="chroma"><code><span class="nx">fmt.Println()</span></code></pre>`)
	assert.Contains(t, out, `&lt;<span class="tag">b</span>&gt;`, "unknown languages keep the builtin rendering")
}

func TestParse_UnknownFenceDegradesToText(t *testing.T) {
	out := newTestParser().parse(":::unknown\nvisible text\n:::")

	assert.NotContains(t, out, ":::")
	assert.Contains(t, out, `<p class="text-lg text-slate-300 mb-4">visible text</p>`)
}

func TestParse_UnclosedFenceDegradesToText(t *testing.T) {
	out := newTestParser().parse(":::steps\n1. Un\n2. Deux")

	assert.NotContains(t, out, ":::")
	assert.NotContains(t, out, "<ol")
	assert.Contains(t, out, "1. Un")
}

func TestParse_BlocksAreNotWrappedInParagraphs(t *testing.T) {
	out := newTestParser().parse(":::video https://example.com/v.mp4:::")

	assert.NotContains(t, out, `<p class="text-lg text-slate-300 mb-4">`)
}

func TestDropFenceMarkers(t *testing.T) {
	p := newTestParser()

	assert.Equal(t, "a\nb", p.dropFenceMarkers("a\n:::\nb"))
	assert.Equal(t, "text after", p.dropFenceMarkers(":::mystery text after"))
	assert.Equal(t, "keep", p.dropFenceMarkers("keep:::"))
}

func TestReplaceSubmatches(t *testing.T) {
	out := replaceSubmatches(imageRe, "x :::image a b::: y", func(m []string) string {
		return "[" + m[1] + "|" + m[2] + "]"
	})

	assert.Equal(t, "x [a b|] y", out)
}
