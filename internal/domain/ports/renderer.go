package ports

import (
	"context"

	"github.com/fallinov/prez-app/internal/domain/entities"
)

// DeckRenderer turns a slide list and its render settings into one HTML document
type DeckRenderer interface {
	// Render returns a complete HTML document. Malformed block syntax never fails;
	// only call-contract violations return an error.
	Render(ctx context.Context, opts entities.RenderOptions) (string, error)
}

// CodeHighlighter colours the body of a fenced code block
type CodeHighlighter interface {
	// Highlight returns HTML for code tagged with lang. ok is false when the
	// highlighter has nothing better than the escaped text to offer.
	Highlight(lang, code string) (html string, ok bool)

	// CSS returns the stylesheet the highlighted markup depends on
	CSS() string
}

// NotesRenderer converts speaker notes to sanitized HTML
type NotesRenderer interface {
	ToHTML(notes string) string
}
