package highlight

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ChromaHighlighter highlights fenced code with chroma using CSS classes
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *html.Formatter
	logger    *slog.Logger

	mu         sync.RWMutex
	lexerCache map[string]chroma.Lexer
}

// NewChromaHighlighter creates a highlighter for the named chroma style.
// Unknown style names fall back to chroma's default style.
func NewChromaHighlighter(styleName string, logger *slog.Logger) *ChromaHighlighter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	return &ChromaHighlighter{
		style: style,
		formatter: html.New(
			html.WithClasses(true),
			html.PreventSurroundingPre(true),
			html.TabWidth(4),
		),
		logger:     logger,
		lexerCache: make(map[string]chroma.Lexer),
	}
}

// Highlight returns class-annotated HTML for code. Languages chroma does not
// know are reported as not ok so the caller keeps its own rendering.
func (h *ChromaHighlighter) Highlight(lang, code string) (string, bool) {
	lexer := h.getLexer(lang)
	if lexer == nil {
		return "", false
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		h.logger.Debug("tokenizing code failed", "language", lang, "error", err)
		return "", false
	}

	var out strings.Builder
	if err := h.formatter.Format(&out, h.style, iterator); err != nil {
		h.logger.Debug("formatting code failed", "language", lang, "error", err)
		return "", false
	}

	return out.String(), true
}

// CSS returns the stylesheet for the configured style
func (h *ChromaHighlighter) CSS() string {
	var css strings.Builder
	if err := h.formatter.WriteCSS(&css, h.style); err != nil {
		h.logger.Warn("generating highlight CSS failed", "error", err)
		return ""
	}
	return css.String()
}

func (h *ChromaHighlighter) getLexer(lang string) chroma.Lexer {
	h.mu.RLock()
	lexer, ok := h.lexerCache[lang]
	h.mu.RUnlock()

	if ok {
		return lexer
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Double-check after acquiring write lock
	if lexer, ok = h.lexerCache[lang]; ok {
		return lexer
	}

	lexer = lexers.Get(lang)
	if lexer != nil {
		lexer = chroma.Coalesce(lexer)
	}

	h.lexerCache[lang] = lexer
	return lexer
}
