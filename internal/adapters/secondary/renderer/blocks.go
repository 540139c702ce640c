package renderer

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	introSidebarRe = regexp.MustCompile(`:::intro\n([\s\S]*?):::\s*\n\s*:::sidebar\s+(.+?)\n([\s\S]*?):::`)
	introRe        = regexp.MustCompile(`:::intro\n([\s\S]*?):::`)
	sidebarRe      = regexp.MustCompile(`:::sidebar\s+(.+?)\n([\s\S]*?):::`)
	cardsRe        = regexp.MustCompile(`:::cards\n([\s\S]*?):::`)
	compareRe      = regexp.MustCompile(`:::compare\n([\s\S]*?):::`)
	statsRe        = regexp.MustCompile(`:::stats\n([\s\S]*?):::`)
	stepsRe        = regexp.MustCompile(`:::steps\n([\s\S]*?):::`)
	pointsRe       = regexp.MustCompile(`:::points\n([\s\S]*?):::`)
	tipRe          = regexp.MustCompile(`:::tip\n([\s\S]*?):::`)

	// :::image source:::  or  :::image source\n:::  or  :::image source\ncaption\n:::
	imageRe = regexp.MustCompile(`:::image[ \t]+([^\n]+?)[ \t]*(?::::|\n(?:[ \t]*:::|([^\n]*?)[ \t]*(?:\n[ \t]*)?:::))`)
	videoRe = regexp.MustCompile(`:::video[ \t]+([^\n]+?)[ \t]*(?::::|\n[ \t]*:::)`)
)

var (
	sidebarItemRe = regexp.MustCompile(`^([✓✗])\s*\*\*(.+?)\*\*\s*[—–-]\s*(.+)$`)
	cardHeaderRe  = regexp.MustCompile(`^\[([^\]|]+)\|?(\w+)?\]\s*(.*)$`)
	cardGroupRe   = regexp.MustCompile(`\n\s*\n`)
	stepRe        = regexp.MustCompile(`^(\d+)\.\s*(.+)$`)
	pointRe       = regexp.MustCompile(`^(\S+)\s*\*\*(.+?)\*\*\s*[—–-]\s*(.+)$`)
	tipEmojiRe    = regexp.MustCompile(`^(?:✨|💡|🎯|⭐|🚀|✅|⚡|🔥)\s*`)
	statEmojiRe   = regexp.MustCompile(`^(?:[\x{1F300}-\x{1F9FF}]|[\x{2600}-\x{26FF}]|[\x{2700}-\x{27BF}]|[⭐⏱])\x{FE0F}?`)
	leadingIntRe  = regexp.MustCompile(`^[+-]?\d+`)
	youtubeRe     = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([a-zA-Z0-9_-]+)`)
	vimeoRe       = regexp.MustCompile(`vimeo\.com/(\d+)`)
)

// nonEmptyLines returns the lines of s that are not blank, trimmed
func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}

func (p *contentParser) renderTwoColumn(intro, sidebarTitle, sidebar string) string {
	return `
    <div class="grid md:grid-cols-2 gap-12 items-start mb-8">
        <div>` + renderIntroInner(intro) + `</div>
        ` + renderSidebarInner(sidebarTitle, sidebar) + `
    </div>`
}

func renderIntroInner(content string) string {
	var quote string
	var text strings.Builder

	for _, line := range nonEmptyLines(content) {
		if len(line) >= 2 && strings.HasPrefix(line, `"`) && strings.HasSuffix(line, `"`) {
			quote = `<blockquote class="text-xl text-slate-300 mb-6 leading-relaxed border-l-4 border-accent pl-6 italic">` + escapeHTML(line) + `</blockquote>`
			continue
		}
		text.WriteString(`<p class="text-lg text-slate-300 leading-relaxed mb-4">` + formatInline(line) + `</p>`)
	}

	return quote + text.String()
}

func (p *contentParser) renderIntro(content string) string {
	return `<div class="mb-8">` + renderIntroInner(content) + `</div>`
}

func renderSidebarInner(title, content string) string {
	var items strings.Builder

	for _, line := range nonEmptyLines(content) {
		bg := "bg-slate-800/50"
		if strings.HasPrefix(line, "✗") {
			bg = "bg-red-500/10"
		}

		m := sidebarItemRe.FindStringSubmatch(line)
		if m == nil {
			items.WriteString(`<div class="flex items-start gap-3 p-3 ` + bg + ` rounded-lg"><span>` + formatInline(line) + `</span></div>`)
			continue
		}

		icon, iconClass := "check", "text-green-400"
		if m[1] == "✗" {
			icon, iconClass = "x", "text-red-400"
		}

		items.WriteString(`
        <div class="flex items-start gap-3 p-3 ` + bg + ` rounded-lg">
            ` + lucideIcon(icon, "w-5 h-5 "+iconClass+" flex-shrink-0 mt-0.5") + `
            <div>
                <p class="font-medium">` + escapeHTML(m[2]) + `</p>
                <p class="text-sm text-slate-300">` + formatInline(m[3]) + `</p>
            </div>
        </div>`)
	}

	cleanTitle := strings.TrimSpace(strings.ReplaceAll(title, "**", ""))

	return `
    <div class="bg-slate-800/50 rounded-2xl p-6 border border-slate-700">
        <h3 class="text-lg font-semibold mb-4 text-red-400 flex items-center gap-2">
            ` + lucideIcon("alert-triangle", "w-5 h-5") + `
            ` + escapeHTML(cleanTitle) + `
        </h3>
        <div class="space-y-3">` + items.String() + `</div>
    </div>`
}

func (p *contentParser) renderSidebar(title, content string) string {
	return `<div class="mb-8">` + renderSidebarInner(title, content) + `</div>`
}

// renderCards renders blank-line separated card groups. Groups without a
// valid [Title|color] header are dropped; with no valid card nothing is rendered.
func (p *contentParser) renderCards(content string) string {
	var cards []string

	for _, group := range cardGroupRe.Split(content, -1) {
		lines := nonEmptyLines(group)
		if len(lines) == 0 {
			continue
		}

		m := cardHeaderRe.FindStringSubmatch(lines[0])
		if m == nil {
			p.logger.Debug("dropping card without header", "line", lines[0])
			continue
		}

		title, color, subtitle := m[1], m[2], m[3]
		scheme := schemeFor(color)

		icon, ok := cardIcons[foldCase(title)]
		if !ok {
			icon = "file"
		}

		var items strings.Builder
		for _, line := range lines[1:] {
			switch {
			case strings.HasPrefix(line, "✓"):
				items.WriteString(`<li class="flex items-center gap-2 text-sm text-slate-300">` + lucideIcon("check", "w-4 h-4 text-green-400") + ` ` + escapeHTML(strings.TrimSpace(strings.TrimPrefix(line, "✓"))) + `</li>`)
			case strings.HasPrefix(line, "✗"):
				items.WriteString(`<li class="flex items-center gap-2 text-sm text-slate-300">` + lucideIcon("x", "w-4 h-4 text-red-400") + ` ` + escapeHTML(strings.TrimSpace(strings.TrimPrefix(line, "✗"))) + `</li>`)
			default:
				items.WriteString(`<li class="text-sm text-slate-300">` + formatInline(line) + `</li>`)
			}
		}

		var subtitleHTML string
		if subtitle != "" {
			subtitleHTML = `<p class="text-slate-400 text-sm mb-2">` + formatInline(subtitle) + `</p>`
		}

		cards = append(cards, `
      <div class="`+scheme.bg+` p-5 rounded-2xl border `+scheme.border+` hover:border-accent/50 transition-colors">
          <div class="w-12 h-12 `+scheme.badge+` rounded-xl flex items-center justify-center mb-3">
              `+lucideIcon(icon, "w-6 h-6 "+scheme.text)+`
          </div>
          <h3 class="text-lg font-bold mb-2">`+escapeHTML(title)+`</h3>
          `+subtitleHTML+`
          <ul class="text-sm text-slate-300 space-y-1">`+items.String()+`</ul>
      </div>`)
	}

	if len(cards) == 0 {
		return ""
	}

	cols := "md:grid-cols-3"
	if len(cards) <= 2 {
		cols = "md:grid-cols-2"
	}

	return `<div class="grid ` + cols + ` gap-4 mb-8">` + strings.Join(cards, "") + `</div>`
}

// parseLeadingInt reads an optionally signed integer prefix, ignoring whatever follows it
func parseLeadingInt(s string) (int, bool) {
	n, err := strconv.Atoi(leadingIntRe.FindString(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// renderCompare renders label|value|percent|color lines as horizontal bars.
// Lines that do not parse are dropped, and with no bar left nothing is rendered.
func (p *contentParser) renderCompare(content string) string {
	var bars strings.Builder
	count := 0

	for _, line := range nonEmptyLines(content) {
		parts := strings.Split(line, "|")
		if len(parts) < 4 {
			p.logger.Debug("dropping compare line with too few fields", "line", line)
			continue
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		percent, ok := parseLeadingInt(parts[2])
		if !ok {
			p.logger.Debug("dropping compare line with non-numeric percent", "line", line)
			continue
		}
		percent = min(max(percent, 0), 100)

		barClass, textClass := "bg-green-500", "text-green-400"
		switch parts[3] {
		case "red":
			barClass, textClass = "bg-red-500", "text-red-400"
		case "yellow":
			barClass, textClass = "bg-yellow-500", "text-yellow-400"
		}

		count++
		bars.WriteString(`
      <div>
          <div class="flex justify-between text-sm mb-1">
              <span class="text-slate-300">` + escapeHTML(parts[0]) + `</span>
              <span class="` + textClass + ` font-bold">` + escapeHTML(parts[1]) + `</span>
          </div>
          <div class="w-full bg-slate-700 rounded-full h-4">
              <div class="` + barClass + ` h-4 rounded-full" style="width: ` + strconv.Itoa(percent) + `%"></div>
          </div>
      </div>`)
	}

	if count == 0 {
		return ""
	}

	return `
    <div class="bg-slate-800/50 p-6 rounded-2xl border border-slate-700 mb-8">
        <h3 class="text-lg font-bold mb-4">` + escapeHTML(p.labels.Compare) + `</h3>
        <div class="space-y-4">` + bars.String() + `</div>
    </div>`
}

// statIsNegative decides the tone of a stat line. A negative emoji always wins;
// a negative keyword only counts when nothing on the line reads as positive.
func statIsNegative(emoji, line string) bool {
	if negativeEmojis[emoji] {
		return true
	}
	folded := foldCase(line)
	if !containsAny(folded, negativeKeywords) {
		return false
	}
	return !positiveEmojis[emoji] && !containsAny(folded, positiveKeywords)
}

// splitStat separates "stat — description" on the first em-dash, or en-dash
func splitStat(s string) (stat, desc string) {
	before, after, found := strings.Cut(s, "—")
	if !found {
		before, after, _ = strings.Cut(s, "–")
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}

func (p *contentParser) renderStats(content string) string {
	var stats strings.Builder

	for _, line := range nonEmptyLines(content) {
		emoji := statEmojiRe.FindString(line)
		rest := strings.TrimSpace(line[len(emoji):])

		bg, text := "bg-green-500/10", "text-green-400"
		if statIsNegative(emoji, line) {
			bg, text = "bg-red-500/10", "text-red-400"
		}

		var icon string
		switch info, ok := iconForEmoji(emoji); {
		case ok:
			icon = lucideIcon(info.name, "w-8 h-8 "+info.color)
		case emoji != "":
			icon = `<span class="text-3xl">` + emoji + `</span>`
		default:
			icon = lucideIcon("info", "w-8 h-8 text-slate-300")
		}

		stat, desc := splitStat(rest)
		stats.WriteString(`
      <div class="` + bg + ` p-4 rounded-xl text-center">
          <div class="flex justify-center mb-2">` + icon + `</div>
          <p class="` + text + ` font-bold">` + formatInline(stat) + `</p>
          <p class="text-sm text-slate-300">` + escapeHTML(desc) + `</p>
      </div>`)
	}

	return `<div class="grid grid-cols-2 gap-4 mb-8">` + stats.String() + `</div>`
}

// renderSteps renders "N. text" lines with a numbered badge. Other lines keep
// their text as an un-numbered item.
func (p *contentParser) renderSteps(content string) string {
	var steps strings.Builder

	for _, line := range nonEmptyLines(content) {
		m := stepRe.FindStringSubmatch(line)
		if m == nil {
			p.logger.Debug("steps line without number", "line", line)
			steps.WriteString(`
      <li class="flex items-start gap-4">
          <span class="w-8 flex-shrink-0"></span>
          <span class="pt-1">` + formatInline(line) + `</span>
      </li>`)
			continue
		}

		steps.WriteString(`
      <li class="flex items-start gap-4">
          <span class="w-8 h-8 bg-accent/20 rounded-full flex items-center justify-center font-bold text-accent flex-shrink-0">` + m[1] + `</span>
          <span class="pt-1">` + formatInline(m[2]) + `</span>
      </li>`)
	}

	return `<ol class="space-y-4 mt-4 mb-8">` + steps.String() + `</ol>`
}

func (p *contentParser) renderPoints(content string) string {
	var points strings.Builder

	for _, line := range nonEmptyLines(content) {
		m := pointRe.FindStringSubmatch(line)
		if m == nil {
			points.WriteString(`<div class="p-4 bg-slate-800/50 rounded-xl border border-slate-700">` + formatInline(line) + `</div>`)
			continue
		}

		emoji, title, desc := m[1], m[2], m[3]
		glyph := `<span class="text-xl">` + escapeHTML(emoji) + `</span>`
		if info, ok := iconForEmoji(emoji); ok {
			glyph = lucideIcon(info.name, "w-5 h-5 "+info.color)
		}

		points.WriteString(`
        <div class="flex items-start gap-4 p-4 bg-slate-800/50 rounded-xl border border-slate-700">
            <div class="w-10 h-10 rounded-lg bg-slate-700/50 flex items-center justify-center flex-shrink-0">
                ` + glyph + `
            </div>
            <div>
                <p class="font-bold text-white">` + escapeHTML(title) + `</p>
                <p class="text-slate-300">` + formatInline(desc) + `</p>
            </div>
        </div>`)
	}

	return `<div class="space-y-3 mb-8">` + points.String() + `</div>`
}

func (p *contentParser) renderTip(content string) string {
	clean := tipEmojiRe.ReplaceAllString(strings.TrimSpace(content), "")

	return `
    <div class="bg-accent/10 border border-accent/30 p-4 rounded-2xl mt-6 mb-8 flex items-start gap-3">
        <div class="flex-shrink-0 mt-0.5">` + lucideIcon("lightbulb", "w-5 h-5 text-accent") + `</div>
        <p class="text-accent font-medium">` + formatInline(clean) + `</p>
    </div>`
}

// unsplashURL resolves search keywords through the Unsplash redirect service
func unsplashURL(keywords string) string {
	return "https://source.unsplash.com/1600x900/?" + strings.ReplaceAll(url.QueryEscape(keywords), "+", "%20")
}

func (p *contentParser) renderImage(source, caption string) string {
	var src, alt string
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		src, alt = source, "Image"
	} else {
		src, alt = unsplashURL(source), source
	}
	if caption != "" {
		alt = caption
	}

	var captionHTML string
	if caption != "" {
		captionHTML = `<figcaption class="text-center text-sm text-slate-400 mt-3">` + escapeHTML(caption) + `</figcaption>`
	}

	return `
    <figure class="mb-8">
        <div class="rounded-2xl overflow-hidden shadow-lg">
            <img src="` + escapeHTML(src) + `" alt="` + escapeHTML(alt) + `" class="w-full h-auto object-cover max-h-96" loading="lazy" />
        </div>
        ` + captionHTML + `
    </figure>`
}

// embedURL rewrites YouTube and Vimeo page URLs to their player URL
func embedURL(videoURL string) string {
	var embed string
	if m := youtubeRe.FindStringSubmatch(videoURL); m != nil {
		embed = "https://www.youtube.com/embed/" + m[1]
	}
	if m := vimeoRe.FindStringSubmatch(videoURL); m != nil {
		embed = "https://player.vimeo.com/video/" + m[1]
	}
	return embed
}

func (p *contentParser) renderVideo(videoURL string) string {
	embed := embedURL(videoURL)
	if embed == "" {
		label := lucideIcon("play-circle", "w-6 h-6") + "\n              " + escapeHTML(p.labels.WatchVideo)
		link := `<span class="text-accent flex items-center gap-2">` + label + `</span>`
		if safeHref(videoURL) {
			link = `<a href="` + escapeHTML(videoURL) + `" target="_blank" rel="noopener" class="text-accent hover:underline flex items-center gap-2">` + label + `</a>`
		}
		return `
    <div class="mb-8 p-4 bg-slate-800/50 rounded-2xl border border-slate-700">
        ` + link + `
    </div>`
	}

	return `
    <div class="mb-8">
        <div class="relative rounded-2xl overflow-hidden shadow-lg" style="padding-bottom: 56.25%;">
            <iframe
                src="` + embed + `"
                class="absolute inset-0 w-full h-full"
                frameborder="0"
                allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture"
                allowfullscreen
            ></iframe>
        </div>
    </div>`
}
