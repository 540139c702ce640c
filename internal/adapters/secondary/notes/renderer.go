package notes

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts speaker notes from markdown to sanitized HTML
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer creates a new notes renderer
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			goldhtml.WithHardWraps(),
			goldhtml.WithXHTML(),
		),
	)

	return &Renderer{
		md:     md,
		policy: newNotesPolicy(),
	}
}

// newNotesPolicy allows the formatting a presenter would write in notes and nothing else
func newNotesPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements("p", "br", "hr")
	p.AllowElements("strong", "b", "em", "i", "s", "del", "mark")
	p.AllowElements("ul", "ol", "li")
	p.AllowElements("blockquote", "pre", "code")
	p.AllowElements("table", "thead", "tbody", "tr", "th", "td")
	p.AllowAttrs("href").OnElements("a")
	p.AllowStandardURLs()
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return p
}

// ToHTML renders notes. Blank notes render as an empty string.
func (r *Renderer) ToHTML(notes string) string {
	if strings.TrimSpace(notes) == "" {
		return ""
	}

	var buf strings.Builder
	if err := r.md.Convert([]byte(notes), &buf); err != nil {
		return "<p>" + strings.ReplaceAll(html.EscapeString(notes), "\n", "<br>") + "</p>"
	}

	return strings.TrimSpace(r.policy.Sanitize(buf.String()))
}
