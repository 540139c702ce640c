package renderer

import (
	"regexp"
	"strings"
)

var codeFenceRe = regexp.MustCompile("```([\\w+#.-]+)?\\n([\\s\\S]*?)```")

// markupTokenRe matches, leftmost first, a quoted value, an attribute name
// with its = sign, or an opening tag name, all in already escaped text.
var markupTokenRe = regexp.MustCompile(`&quot;[^&]*&quot;|[\w-]+=|&lt;/?[\w-]+`)

// renderCode renders one fenced code block. Code is trimmed and escaped; an
// external highlighter takes precedence when it recognises the language.
func (p *contentParser) renderCode(code, lang string) string {
	code = strings.TrimSpace(code)

	if p.highlighter != nil && lang != "" {
		if html, ok := p.highlighter.Highlight(lang, code); ok {
			return `<div class="code-block my-4"><pre class="chroma"><code>` + html + `</code></pre></div>`
		}
	}

	body := escapeHTML(code)
	if lang == "html" || lang == "xml" {
		body = highlightMarkup(body)
	}

	return `<div class="code-block my-4"><pre><code>` + body + `</code></pre></div>`
}

// highlightMarkup wraps attribute values, attribute names and tag names of
// escaped HTML/XML in spans. A single pass keeps inserted markup out of reach
// of later rules.
func highlightMarkup(escaped string) string {
	return markupTokenRe.ReplaceAllStringFunc(escaped, func(tok string) string {
		switch {
		case strings.HasPrefix(tok, "&quot;"):
			return `<span class="value">` + tok + `</span>`
		case strings.HasPrefix(tok, "&lt;"):
			prefix := "&lt;"
			name := strings.TrimPrefix(tok, prefix)
			if strings.HasPrefix(name, "/") {
				prefix += "/"
				name = name[1:]
			}
			return prefix + `<span class="tag">` + name + `</span>`
		default:
			return `<span class="attr">` + strings.TrimSuffix(tok, "=") + `</span>=`
		}
	})
}
