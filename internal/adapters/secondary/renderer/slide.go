package renderer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fallinov/prez-app/internal/domain/entities"
)

var heroTagRe = regexp.MustCompile(`\[([^\]]+)\]`)

// heroParts extracts the subtitle and tag pills of a title slide. The subtitle
// is the first line that is neither a heading nor a line of [tags]; tags are
// collected from every line.
func heroParts(content string) (subtitle string, tags []string) {
	for _, line := range nonEmptyLines(content) {
		matches := heroTagRe.FindAllStringSubmatch(line, -1)
		for _, m := range matches {
			tags = append(tags, m[1])
		}
		if len(matches) == 0 && subtitle == "" && !strings.HasPrefix(line, "#") {
			subtitle = line
		}
	}
	return subtitle, tags
}

// renderSlide renders one slide at its position in the full deck. Position 0
// is always the hero slide, whatever its content.
func (r *DeckRenderer) renderSlide(p *contentParser, slide entities.Slide, position int) string {
	if position == 0 {
		return r.renderHero(p, slide)
	}
	return r.renderContent(p, slide, position)
}

func (r *DeckRenderer) renderHero(p *contentParser, slide entities.Slide) string {
	subtitle, tags := heroParts(slide.Content)

	var subtitleHTML string
	if subtitle != "" {
		subtitleHTML = `<p class="text-xl md:text-2xl text-white/90 mb-4 animate-fade-in-up delay-100">` + escapeHTML(subtitle) + `</p>`
	}

	var tagsHTML string
	if len(tags) > 0 {
		var pills strings.Builder
		for _, tag := range tags {
			pills.WriteString(`<span class="px-4 py-2 bg-white/20 rounded-full text-sm backdrop-blur-sm">` + escapeHTML(tag) + `</span>`)
		}
		tagsHTML = `<div class="flex flex-wrap gap-3 justify-center mt-8 animate-fade-in-up delay-300">
        ` + pills.String() + `
      </div>`
	}

	return `
    <section id="slide-1" class="slide flex items-center justify-center gradient-accent relative overflow-hidden">
        <div class="absolute inset-0 opacity-10">
            <div class="absolute top-20 left-20 w-64 h-64 bg-white rounded-full blur-3xl"></div>
            <div class="absolute bottom-20 right-20 w-96 h-96 bg-white rounded-full blur-3xl"></div>
        </div>
        <div class="text-center px-6 relative z-10">
            <h1 class="text-5xl md:text-7xl font-bold mb-6 animate-fade-in-up">` + formatTitle(slide.Title) + `</h1>
            ` + subtitleHTML + `
            ` + tagsHTML + `
            <div class="mt-16 animate-pulse-slow">
                <svg class="w-8 h-8 mx-auto" fill="none" stroke="currentColor" viewBox="0 0 24 24">
                    <path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M19 14l-7 7m0 0l-7-7m7 7V3"></path>
                </svg>
                <p class="text-sm text-white/80 mt-2">` + escapeHTML(p.labels.ScrollHint) + `</p>
            </div>
        </div>` + r.renderNotes(slide) + `
    </section>`
}

func (r *DeckRenderer) renderContent(p *contentParser, slide entities.Slide, position int) string {
	bg := "bg-slate-800"
	if position%2 == 0 {
		bg = "bg-slate-900"
	}

	return fmt.Sprintf(`
    <section id="slide-%d" class="slide flex items-center %s py-20">
        <div class="max-w-6xl mx-auto px-6 w-full">
            <span class="text-accent font-mono text-base mb-4 block">%02d / %s</span>
            <h2 class="text-4xl md:text-5xl font-bold mb-8">%s</h2>
            <div class="slide-content">
                %s
            </div>
        </div>%s
    </section>`,
		position+1, bg, position, escapeHTML(sectionLabel(slide.Title)),
		formatTitle(slide.Title), p.parse(slide.Content), r.renderNotes(slide))
}

func (r *DeckRenderer) renderNotes(slide entities.Slide) string {
	if !slide.HasNotes() {
		return ""
	}

	body := `<p>` + escapeHTML(slide.Notes) + `</p>`
	if r.notes != nil {
		body = r.notes.ToHTML(slide.Notes)
	}

	return `
        <aside class="speaker-notes">` + body + `</aside>`
}
