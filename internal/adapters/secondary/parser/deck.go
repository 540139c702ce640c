package parser

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/fallinov/prez-app/internal/domain/entities"
	"github.com/fallinov/prez-app/internal/domain/ports"
)

const (
	slideSeparator = "\n---\n"
	joinSeparator  = "\n\n---\n\n"
	notePrefix     = "Note:"
	codeFence      = "```"
	blockFence     = ":::"
)

var headingRe = regexp.MustCompile(`^#\s+(.+)`)

// DeckParser splits block-markdown decks into slides and joins them back
type DeckParser struct{}

// NewDeckParser creates a new deck parser
func NewDeckParser() *DeckParser {
	return &DeckParser{}
}

// Parse normalizes the deck text, reads optional frontmatter and splits the rest into slides
func (p *DeckParser) Parse(ctx context.Context, content []byte) (*ports.ParsedDeck, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parsing deck: %w", err)
	}

	normalized := norm.NFC.Bytes(content)
	normalized = []byte(normalizeNewlines(string(normalized)))

	fm, body, _ := extractFrontmatter(normalized)
	if fm.Palette != nil {
		if err := fm.Palette.Validate(); err != nil {
			return nil, fmt.Errorf("frontmatter palette: %w", err)
		}
	}

	markdown := strings.TrimSpace(string(body))

	return &ports.ParsedDeck{
		Frontmatter: fm,
		Markdown:    markdown,
		Slides:      p.Split(markdown),
	}, nil
}

// Split splits deck markdown on line-exact --- separators. Blank chunks are skipped.
func (p *DeckParser) Split(markdown string) []entities.Slide {
	texts := splitTexts(markdown)

	slides := make([]entities.Slide, 0, len(texts))
	for i, text := range texts {
		slides = append(slides, parseSlide(text, i))
	}

	return slides
}

// Join serializes slides so that Split(Join(s)) reproduces them
func (p *DeckParser) Join(slides []entities.Slide) string {
	parts := make([]string, 0, len(slides))
	for _, s := range slides {
		parts = append(parts, formatSlide(s))
	}
	return strings.Join(parts, joinSeparator)
}

// ReplaceSlide swaps the raw text of one slide and returns the rebuilt deck markdown
func (p *DeckParser) ReplaceSlide(markdown string, index int, text string) (string, error) {
	texts := splitTexts(markdown)
	if index < 0 || index >= len(texts) {
		return "", fmt.Errorf("%w: %d (deck has %d slides)", entities.ErrInvalidSlideIndex, index, len(texts))
	}

	replacement := strings.TrimSpace(normalizeNewlines(text))
	if replacement == "" {
		return "", fmt.Errorf("replacement for slide %d is empty", index+1)
	}

	texts[index] = replacement
	return strings.Join(texts, joinSeparator), nil
}

func splitTexts(markdown string) []string {
	chunks := strings.Split(normalizeNewlines(markdown), slideSeparator)

	texts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if strings.TrimSpace(chunk) != "" {
			texts = append(texts, chunk)
		}
	}
	return texts
}

// parseSlide recovers title, body and notes from one slide chunk
func parseSlide(text string, index int) entities.Slide {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	title := entities.FallbackTitle(index)
	if m := headingRe.FindStringSubmatch(lines[0]); m != nil && strings.TrimSpace(m[1]) != "" {
		title = strings.TrimSpace(m[1])
		lines = lines[1:]
	}

	body, notes := extractNotes(lines)
	content := strings.TrimSpace(strings.Join(body, "\n"))

	return entities.Slide{
		Index:   index,
		Title:   title,
		Content: content,
		Preview: entities.MakePreview(content),
		Notes:   notes,
	}
}

// extractNotes moves "Note:" lines out of the slide body. Lines inside a
// closed code fence or ::: block belong to that block and stay put.
func extractNotes(lines []string) ([]string, string) {
	var body, notes []string
	fenced := fencedLines(lines)

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if fenced[i] || !strings.HasPrefix(trimmed, notePrefix) {
			body = append(body, line)
			continue
		}
		if note := strings.TrimSpace(strings.TrimPrefix(trimmed, notePrefix)); note != "" {
			notes = append(notes, note)
		}
	}

	return body, strings.Join(notes, "\n\n")
}

// fencedLines marks every line between an opening fence and its closing
// marker, both included. Fences that are never closed mark nothing.
func fencedLines(lines []string) []bool {
	fenced := make([]bool, len(lines))

	for i := 0; i < len(lines); i++ {
		closes, ok := fenceCloser(strings.TrimSpace(lines[i]))
		if !ok {
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			if closes(strings.TrimSpace(lines[j])) {
				for k := i; k <= j; k++ {
					fenced[k] = true
				}
				i = j
				break
			}
		}
	}

	return fenced
}

// fenceCloser reports whether line opens a fence and returns the matcher for
// its closing line. One-line blocks such as ":::image src:::" open nothing.
func fenceCloser(line string) (func(string) bool, bool) {
	switch {
	case strings.HasPrefix(line, codeFence):
		return func(l string) bool { return strings.HasPrefix(l, codeFence) }, true
	case strings.HasPrefix(line, blockFence) && len(line) > len(blockFence) &&
		!strings.HasSuffix(line[len(blockFence):], blockFence):
		return func(l string) bool { return strings.HasSuffix(l, blockFence) }, true
	default:
		return nil, false
	}
}

func formatSlide(s entities.Slide) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(s.Title)

	if s.Content != "" {
		b.WriteString("\n\n")
		b.WriteString(s.Content)
	}

	for _, line := range strings.Split(s.Notes, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			b.WriteString("\n\n")
			b.WriteString(notePrefix)
			b.WriteString(" ")
			b.WriteString(line)
		}
	}

	return b.String()
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
