package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fallinov/prez-app/internal/domain/entities"
	"github.com/fallinov/prez-app/internal/domain/ports"
)

// DeckSettings are the render settings a deck can be given from outside its source
type DeckSettings struct {
	Title     string
	BaseColor string
	Mode      entities.Mode
	Language  string
	Palette   *entities.PaletteOverride
}

// overlay returns s with every non-empty field of o applied on top
func (s DeckSettings) overlay(o DeckSettings) DeckSettings {
	if o.Title != "" {
		s.Title = o.Title
	}
	if o.BaseColor != "" {
		s.BaseColor = o.BaseColor
	}
	if o.Mode != "" {
		s.Mode = o.Mode
	}
	if o.Language != "" {
		s.Language = o.Language
	}
	if o.Palette != nil {
		s.Palette = o.Palette
	}
	return s
}

func settingsFromFrontmatter(fm ports.Frontmatter) DeckSettings {
	return DeckSettings{
		Title:     fm.Title,
		BaseColor: fm.BaseColor,
		Mode:      entities.Mode(fm.Mode),
		Language:  fm.Language,
		Palette:   fm.Palette,
	}
}

// RenderRequest describes one render of a deck file
type RenderRequest struct {
	// DeckPath is the block-markdown source
	DeckPath string

	// OutputPath receives the HTML document
	OutputPath string

	// Defaults come from configuration; deck frontmatter overrides them
	Defaults DeckSettings

	// Overrides come from explicit command line flags and win over frontmatter
	Overrides DeckSettings

	// Sidecar writes the JSON metadata next to the output
	Sidecar bool
}

// RenderResult reports what a render produced
type RenderResult struct {
	Deck       *entities.Deck
	OutputPath string
	Bytes      int
	Duration   time.Duration
}

// DeckService loads decks, renders them and keeps rendered output editable
type DeckService struct {
	parser   ports.DeckParser
	renderer ports.DeckRenderer
	repo     ports.DeckRepository
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

// NewDeckService creates a new deck service
func NewDeckService(
	parser ports.DeckParser,
	renderer ports.DeckRenderer,
	repo ports.DeckRepository,
	logger *slog.Logger,
) *DeckService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &DeckService{
		parser:   parser,
		renderer: renderer,
		repo:     repo,
		logger:   logger.With("service", "deck"),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Load reads and parses a deck file. Settings are layered defaults,
// then frontmatter, then overrides.
func (s *DeckService) Load(ctx context.Context, path string, defaults, overrides DeckSettings) (*entities.Deck, error) {
	if path == "" {
		return nil, errors.New("deck path cannot be empty")
	}

	content, err := s.repo.LoadMarkdown(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading deck: %w", err)
	}

	parsed, err := s.parser.Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("parsing deck: %w", err)
	}

	settings := defaults.
		overlay(settingsFromFrontmatter(parsed.Frontmatter)).
		overlay(overrides)

	mode, err := entities.ParseMode(string(settings.Mode))
	if err != nil {
		return nil, err
	}

	deck := &entities.Deck{
		ID:        s.newID(),
		Title:     strings.TrimSpace(settings.Title),
		Markdown:  parsed.Markdown,
		BaseColor: settings.BaseColor,
		Mode:      mode,
		Language:  settings.Language,
		Palette:   settings.Palette,
		CreatedAt: s.now(),
		Slides:    parsed.Slides,
	}

	if deck.Title == "" && len(deck.Slides) > 0 {
		deck.Title = stripMarkup(deck.Slides[0].Title)
	}

	if err := deck.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deck %s: %w", path, err)
	}

	s.checkBaseColor(deck.BaseColor)

	return deck, nil
}

// Render loads a deck file, renders it and writes the output
func (s *DeckService) Render(ctx context.Context, req RenderRequest) (*RenderResult, error) {
	if req.OutputPath == "" {
		return nil, errors.New("output path cannot be empty")
	}

	start := s.now()

	deck, err := s.Load(ctx, req.DeckPath, req.Defaults, req.Overrides)
	if err != nil {
		return nil, err
	}

	// Keep the identity of a deck that was rendered to this path before
	if previous, err := s.repo.LoadMetadata(ctx, req.OutputPath); err == nil {
		deck.ID = previous.ID
		deck.CreatedAt = previous.CreatedAt
	} else {
		s.logger.Debug("no previous metadata", slog.String("path", req.OutputPath), slog.String("reason", err.Error()))
	}

	size, err := s.persist(ctx, req.OutputPath, deck, req.Sidecar)
	if err != nil {
		return nil, err
	}

	result := &RenderResult{
		Deck:       deck,
		OutputPath: req.OutputPath,
		Bytes:      size,
		Duration:   s.now().Sub(start),
	}

	s.logger.Info("deck rendered",
		slog.String("deck", req.DeckPath),
		slog.String("output", req.OutputPath),
		slog.Int("slides", deck.SlideCount()),
		slog.Int("bytes", size),
	)

	return result, nil
}

// Preview renders one slide as a standalone document at its true deck position
func (s *DeckService) Preview(ctx context.Context, path string, index int, defaults, overrides DeckSettings) (string, error) {
	deck, err := s.Load(ctx, path, defaults, overrides)
	if err != nil {
		return "", err
	}

	slide, err := deck.GetSlideByIndex(index)
	if err != nil {
		return "", err
	}

	opts := deck.RenderOptions()
	opts.Slides = []entities.Slide{*slide}
	opts.PreviewMode = true
	opts.SlideStartIndex = index

	html, err := s.renderer.Render(ctx, opts)
	if err != nil {
		return "", fmt.Errorf("rendering slide %d: %w", index+1, err)
	}

	return html, nil
}

// Slides lists the slides of a deck file
func (s *DeckService) Slides(ctx context.Context, path string) ([]entities.Slide, error) {
	content, err := s.repo.LoadMarkdown(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading deck: %w", err)
	}

	parsed, err := s.parser.Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("parsing deck: %w", err)
	}

	return parsed.Slides, nil
}

// ReplaceSlide swaps the raw text of one slide of a rendered deck, then
// re-renders and persists it
func (s *DeckService) ReplaceSlide(ctx context.Context, htmlPath string, index int, text string) (*entities.Deck, error) {
	deck, err := s.loadRendered(ctx, htmlPath)
	if err != nil {
		return nil, err
	}

	markdown, err := s.parser.ReplaceSlide(deck.Markdown, index, text)
	if err != nil {
		return nil, fmt.Errorf("replacing slide: %w", err)
	}

	deck.Markdown = markdown
	deck.Slides = s.parser.Split(markdown)

	if err := deck.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deck after replacing slide %d: %w", index+1, err)
	}

	if _, err := s.persist(ctx, htmlPath, deck, true); err != nil {
		return nil, err
	}

	s.logger.Info("slide replaced", slog.String("output", htmlPath), slog.Int("slide", index+1))

	return deck, nil
}

// UpdatePalette replaces the palette override of a rendered deck. A nil
// override goes back to the palette derived from the base colour.
func (s *DeckService) UpdatePalette(ctx context.Context, htmlPath string, override *entities.PaletteOverride) (*entities.Deck, error) {
	if override != nil {
		if err := override.Validate(); err != nil {
			return nil, fmt.Errorf("palette override: %w", err)
		}
	}

	deck, err := s.loadRendered(ctx, htmlPath)
	if err != nil {
		return nil, err
	}

	deck.Palette = override
	deck.Slides = s.parser.Split(deck.Markdown)

	if _, err := s.persist(ctx, htmlPath, deck, true); err != nil {
		return nil, err
	}

	s.logger.Info("palette updated", slog.String("output", htmlPath), slog.Bool("override", override != nil))

	return deck, nil
}

// Recolor sets a new base colour on a rendered deck and drops any palette override
func (s *DeckService) Recolor(ctx context.Context, htmlPath string, baseColor string) (*entities.Deck, error) {
	if !entities.IsHexColor(baseColor) {
		return nil, &entities.ColorError{Field: "base_color", Value: baseColor}
	}

	deck, err := s.loadRendered(ctx, htmlPath)
	if err != nil {
		return nil, err
	}

	deck.BaseColor = baseColor
	deck.Palette = nil
	deck.Slides = s.parser.Split(deck.Markdown)

	if _, err := s.persist(ctx, htmlPath, deck, true); err != nil {
		return nil, err
	}

	s.logger.Info("base color updated", slog.String("output", htmlPath), slog.String("color", baseColor))

	return deck, nil
}

// loadRendered reads the metadata of a previously rendered deck
func (s *DeckService) loadRendered(ctx context.Context, htmlPath string) (*entities.Deck, error) {
	deck, err := s.repo.LoadMetadata(ctx, htmlPath)
	if err != nil {
		return nil, fmt.Errorf("loading metadata: %w", err)
	}

	if strings.TrimSpace(deck.Markdown) == "" {
		return nil, fmt.Errorf("metadata for %s has no markdown source", htmlPath)
	}

	return deck, nil
}

// persist renders the deck and writes the document and, when asked, its sidecar
func (s *DeckService) persist(ctx context.Context, htmlPath string, deck *entities.Deck, sidecar bool) (int, error) {
	html, err := s.renderer.Render(ctx, deck.RenderOptions())
	if err != nil {
		return 0, fmt.Errorf("rendering deck: %w", err)
	}

	if err := s.repo.SaveHTML(ctx, htmlPath, html); err != nil {
		return 0, fmt.Errorf("saving HTML: %w", err)
	}

	if sidecar {
		if err := s.repo.SaveMetadata(ctx, htmlPath, deck); err != nil {
			return 0, fmt.Errorf("saving metadata: %w", err)
		}
	}

	return len(html), nil
}

// checkBaseColor warns about a base colour the palette engine will treat as black
func (s *DeckService) checkBaseColor(color string) {
	if entities.IsHexTriplet(color) {
		return
	}
	s.logger.Warn("malformed base color, using black",
		slog.String("color", color),
		slog.String("expected", "#RRGGBB"),
	)
}

func stripMarkup(title string) string {
	return strings.TrimSpace(strings.ReplaceAll(title, "**", ""))
}
