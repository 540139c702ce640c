package renderer

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/fallinov/prez-app/internal/domain/ports"
)

const paragraphOpen = `<p class="text-lg text-slate-300 mb-4">`

var (
	blankRunRe      = regexp.MustCompile(`\n{3,}`)
	fenceOpenRe     = regexp.MustCompile(`^:::[\w-]*`)
	tokenLineRe     = regexp.MustCompile(`^` + placeholderMark + `[A-Z]+_\d+` + placeholderMark + `$`)
	emptyParagraphs = paragraphOpen + `</p>`
)

// placeholderMark delimits placeholder tokens. It is a private use rune and is
// stripped from slide content before the first pass, so text cannot forge a token.
const placeholderMark = "\uE000"

// contentParser runs the block pipeline over one slide's content
type contentParser struct {
	highlighter ports.CodeHighlighter
	labels      labels
	logger      *slog.Logger
}

// placeholders stashes rendered fragments behind marked PREFIX_n tokens so
// later passes cannot match inside them
type placeholders struct {
	prefix string
	items  []string
}

func (ph *placeholders) add(html string) string {
	ph.items = append(ph.items, html)
	return ph.token(len(ph.items) - 1)
}

func (ph *placeholders) token(i int) string {
	return fmt.Sprintf("%s%s_%d%s", placeholderMark, ph.prefix, i, placeholderMark)
}

func (ph *placeholders) restore(s string) string {
	for i, item := range ph.items {
		s = strings.Replace(s, ph.token(i), item, 1)
	}
	return s
}

// parse converts slide content to HTML. Pass order is fixed: code is
// protected first, special blocks are substituted, stray fence markers are
// removed, remaining lines become paragraphs, and finally blocks and code are
// restored.
func (p *contentParser) parse(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	html := strings.ReplaceAll(content, "\r\n", "\n")
	html = strings.ReplaceAll(html, placeholderMark, "")

	code := &placeholders{prefix: "CODE"}
	html = replaceSubmatches(codeFenceRe, html, func(m []string) string {
		return code.add(p.renderCode(m[2], m[1]))
	})

	blocks := &placeholders{prefix: "BLOCK"}
	html = p.substituteBlocks(html, blocks)
	html = p.dropFenceMarkers(html)
	html = wrapParagraphs(html)

	html = blocks.restore(html)
	html = code.restore(html)

	html = blankRunRe.ReplaceAllString(html, "\n\n")
	html = strings.ReplaceAll(html, emptyParagraphs, "")

	return html
}

// substituteBlocks applies the block rules in order. The intro+sidebar
// composite must run before the standalone intro and sidebar rules.
func (p *contentParser) substituteBlocks(html string, blocks *placeholders) string {
	stash := func(fragment string) string {
		if fragment == "" {
			return ""
		}
		return blocks.add(fragment)
	}

	html = p.substituteTwoColumn(html, stash)
	html = replaceSubmatches(introRe, html, func(m []string) string {
		return stash(p.renderIntro(strings.TrimSpace(m[1])))
	})
	html = replaceSubmatches(sidebarRe, html, func(m []string) string {
		return stash(p.renderSidebar(strings.TrimSpace(m[1]), strings.TrimSpace(m[2])))
	})

	simple := []struct {
		re     *regexp.Regexp
		render func(string) string
	}{
		{cardsRe, p.renderCards},
		{compareRe, p.renderCompare},
		{statsRe, p.renderStats},
		{stepsRe, p.renderSteps},
		{pointsRe, p.renderPoints},
		{tipRe, p.renderTip},
	}
	for _, rule := range simple {
		html = replaceSubmatches(rule.re, html, func(m []string) string {
			return stash(rule.render(strings.TrimSpace(m[1])))
		})
	}

	html = replaceSubmatches(imageRe, html, func(m []string) string {
		return stash(p.renderImage(strings.TrimSpace(m[1]), strings.TrimSpace(m[2])))
	})
	html = replaceSubmatches(videoRe, html, func(m []string) string {
		return stash(p.renderVideo(strings.TrimSpace(m[1])))
	})

	return html
}

// substituteTwoColumn renders an intro immediately followed by a sidebar as one
// unit. A candidate whose intro body holds another fence line spans more than
// the intro, so the search resumes inside it and the blocks are left to the
// standalone rules.
func (p *contentParser) substituteTwoColumn(html string, stash func(string) string) string {
	var out strings.Builder

	for {
		loc := introSidebarRe.FindStringSubmatchIndex(html)
		if loc == nil {
			break
		}

		intro := html[loc[2]:loc[3]]
		if hasFenceLine(intro) {
			resume := loc[0] + len(":::intro")
			out.WriteString(html[:resume])
			html = html[resume:]
			continue
		}

		out.WriteString(html[:loc[0]])
		out.WriteString(stash(p.renderTwoColumn(
			strings.TrimSpace(intro),
			strings.TrimSpace(html[loc[4]:loc[5]]),
			strings.TrimSpace(html[loc[6]:loc[7]]),
		)))
		html = html[loc[1]:]
	}
	out.WriteString(html)

	return out.String()
}

// hasFenceLine reports whether any line of s starts with a ::: marker
func hasFenceLine(s string) bool {
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), ":::") {
			return true
		}
	}
	return false
}

// dropFenceMarkers removes ::: markers left by fences that did not match any
// block rule. Text following a marker on the same line is kept.
func (p *contentParser) dropFenceMarkers(html string) string {
	lines := strings.Split(html, "\n")
	kept := lines[:0]

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, ":::") && !strings.HasSuffix(trimmed, ":::") {
			kept = append(kept, line)
			continue
		}

		p.logger.Debug("removing unmatched fence marker", "line", trimmed)
		rest := fenceOpenRe.ReplaceAllString(trimmed, "")
		rest = strings.TrimSpace(strings.TrimSuffix(rest, ":::"))
		if rest != "" {
			kept = append(kept, rest)
		}
	}

	return strings.Join(kept, "\n")
}

// wrapParagraphs turns every line that is not markup or a lone placeholder into a paragraph
func wrapParagraphs(html string) string {
	lines := strings.Split(html, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "<") || tokenLineRe.MatchString(trimmed) {
			continue
		}
		lines[i] = paragraphOpen + formatInline(trimmed) + `</p>`
	}
	return strings.Join(lines, "\n")
}

// replaceSubmatches is ReplaceAllStringFunc with access to capture groups.
// Unmatched optional groups are empty strings.
func replaceSubmatches(re *regexp.Regexp, s string, fn func(m []string) string) string {
	var out strings.Builder
	last := 0

	for _, loc := range re.FindAllStringSubmatchIndex(s, -1) {
		out.WriteString(s[last:loc[0]])

		m := make([]string, len(loc)/2)
		for i := range m {
			if start := loc[2*i]; start >= 0 {
				m[i] = s[start:loc[2*i+1]]
			}
		}
		out.WriteString(fn(m))
		last = loc[1]
	}
	out.WriteString(s[last:])

	return out.String()
}
