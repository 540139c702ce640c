package renderer

import (
	"regexp"
	"strings"
)

// htmlEscaper matches the entity set the code highlighter keys on (&quot; rather than &#34;)
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

var (
	linkRe        = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	boldRe        = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe      = regexp.MustCompile(`\*(.+?)\*`)
	inlineCodeRe  = regexp.MustCompile("`(.+?)`")
	titleAccentRe = regexp.MustCompile(`\*\*([^*]+)\*\*`)
)

var glyphs = strings.NewReplacer(
	"→", `<span class="text-accent">→</span>`,
	"✓", `<span class="text-green-400">✓</span>`,
	"✗", `<span class="text-red-400">✗</span>`,
)

var unsafeSchemes = []string{"javascript:", "vbscript:", "data:"}

// formatInline escapes text and converts span-level markdown to HTML.
// The substitution order matters: bold must consume ** pairs before italic runs.
func formatInline(text string) string {
	s := escapeHTML(text)

	s = linkRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := linkRe.FindStringSubmatch(m)
		label, href := sub[1], sub[2]
		if !safeHref(href) {
			return label
		}
		return `<a href="` + href + `" target="_blank" rel="noopener" class="text-accent hover:underline">` + label + `</a>`
	})
	s = boldRe.ReplaceAllString(s, `<strong class="text-white font-semibold">$1</strong>`)
	s = italicRe.ReplaceAllString(s, `<em>$1</em>`)
	s = inlineCodeRe.ReplaceAllString(s, `<code class="bg-slate-700 px-2 py-0.5 rounded font-mono text-sm text-accent">$1</code>`)

	return glyphs.Replace(s)
}

func safeHref(href string) bool {
	h := strings.ToLower(strings.TrimSpace(href))
	for _, scheme := range unsafeSchemes {
		if strings.HasPrefix(h, scheme) {
			return false
		}
	}
	return true
}

// formatTitle escapes a slide title and paints **bold** words in the accent colour
func formatTitle(title string) string {
	return titleAccentRe.ReplaceAllString(escapeHTML(title), `<span class="text-accent hero-accent">$1</span>`)
}

// sectionLabel is the part of a title before its first em-dash, without bold markers
func sectionLabel(title string) string {
	clean := strings.ReplaceAll(title, "**", "")
	if before, _, _ := strings.Cut(clean, "—"); strings.TrimSpace(before) != "" {
		return strings.TrimSpace(before)
	}
	return strings.TrimSpace(clean)
}

func lucideIcon(name, class string) string {
	return `<i data-lucide="` + name + `" class="` + class + `"></i>`
}
