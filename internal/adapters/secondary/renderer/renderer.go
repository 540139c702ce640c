package renderer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/fallinov/prez-app/internal/adapters/secondary/palette"
	"github.com/fallinov/prez-app/internal/domain/entities"
	"github.com/fallinov/prez-app/internal/domain/ports"
)

// DeckRenderer implements ports.DeckRenderer. It holds no per-deck state and
// is safe for concurrent use.
type DeckRenderer struct {
	highlighter ports.CodeHighlighter
	notes       ports.NotesRenderer
	logger      *slog.Logger
}

// Option configures a DeckRenderer
type Option func(*DeckRenderer)

// WithHighlighter routes fenced code with a language tag through h
func WithHighlighter(h ports.CodeHighlighter) Option {
	return func(r *DeckRenderer) { r.highlighter = h }
}

// WithNotes renders speaker notes with n instead of as escaped text
func WithNotes(n ports.NotesRenderer) Option {
	return func(r *DeckRenderer) { r.notes = n }
}

// WithLogger sets the logger used for parse diagnostics
func WithLogger(l *slog.Logger) Option {
	return func(r *DeckRenderer) { r.logger = l }
}

// NewDeckRenderer creates a renderer
func NewDeckRenderer(opts ...Option) *DeckRenderer {
	r := &DeckRenderer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	return r
}

// Render renders a full document, or a single-slide preview document when
// opts.PreviewMode is set. Slides are classified by their position in the full
// deck, SlideStartIndex plus their index in opts.Slides.
func (r *DeckRenderer) Render(ctx context.Context, opts entities.RenderOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", fmt.Errorf("invalid render options: %w", err)
	}

	lang, l := resolveLanguage(opts.Language)
	p := &contentParser{highlighter: r.highlighter, labels: l, logger: r.logger}

	var slides strings.Builder
	hasNotes := false
	for i, slide := range opts.Slides {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		slides.WriteString(r.renderSlide(p, slide, opts.SlideStartIndex+i))
		slides.WriteString("\n")
		hasNotes = hasNotes || slide.HasNotes()
	}

	data := newDocumentData(opts.Title, lang, l, palette.Generate(opts.BaseColor, opts.Mode), opts.Palette)
	data.Preview = opts.PreviewMode
	data.Slides = template.HTML(slides.String()) // #nosec G203 - fragments are built from escaped text
	data.HasNotes = hasNotes
	if r.highlighter != nil {
		data.HighlightCSS = template.CSS(r.highlighter.CSS()) // #nosec G203 - generated by the highlighter
	}
	if !opts.PreviewMode {
		for i := range opts.Slides {
			data.Dots = append(data.Dots, opts.SlideStartIndex+i+1)
		}
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing document template: %w", err)
	}

	return buf.String(), nil
}
