package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fallinov/prez-app/internal/domain/entities"
	"github.com/fallinov/prez-app/internal/domain/ports"
	"github.com/fallinov/prez-app/internal/test/builders"
)

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

type deckFixture struct {
	parser   *MockDeckParser
	renderer *MockDeckRenderer
	repo     *MockDeckRepository
	logs     *bytes.Buffer
	service  *DeckService
}

func newDeckFixture() *deckFixture {
	f := &deckFixture{
		parser:   &MockDeckParser{},
		renderer: &MockDeckRenderer{},
		repo:     &MockDeckRepository{},
		logs:     &bytes.Buffer{},
	}

	logger := slog.New(slog.NewTextHandler(f.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f.service = NewDeckService(f.parser, f.renderer, f.repo, logger)
	f.service.now = func() time.Time { return fixedNow }
	f.service.newID = func() string { return "deck-id" }

	return f
}

func (f *deckFixture) expectDeckFile(path string, parsed *ports.ParsedDeck) {
	content := []byte("raw " + path)
	f.repo.On("LoadMarkdown", mock.Anything, path).Return(content, nil)
	f.parser.On("Parse", mock.Anything, content).Return(parsed, nil)
}

func parsedDeck(fm ports.Frontmatter, n int) *ports.ParsedDeck {
	return &ports.ParsedDeck{
		Frontmatter: fm,
		Markdown:    "markdown",
		Slides:      builders.NewSlideListBuilder().WithCount(n).Build(),
	}
}

var testDefaults = DeckSettings{
	Title:     "Défaut",
	BaseColor: "#3b82f6",
	Mode:      entities.ModeDark,
	Language:  "fr",
}

func TestDeckService_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("layers defaults, frontmatter and overrides", func(t *testing.T) {
		f := newDeckFixture()
		f.expectDeckFile("deck.md", parsedDeck(ports.Frontmatter{Title: "Images", Mode: "light", BaseColor: "#10b981"}, 2))

		deck, err := f.service.Load(ctx, "deck.md", testDefaults, DeckSettings{BaseColor: "#ef4444"})
		require.NoError(t, err)

		assert.Equal(t, "deck-id", deck.ID)
		assert.Equal(t, "Images", deck.Title)
		assert.Equal(t, entities.ModeLight, deck.Mode)
		assert.Equal(t, "#ef4444", deck.BaseColor)
		assert.Equal(t, "fr", deck.Language)
		assert.Equal(t, "markdown", deck.Markdown)
		assert.Equal(t, fixedNow, deck.CreatedAt)
		assert.Len(t, deck.Slides, 2)
	})

	t.Run("title falls back to the first slide", func(t *testing.T) {
		f := newDeckFixture()
		parsed := parsedDeck(ports.Frontmatter{}, 1)
		parsed.Slides[0].Title = "Les images sur le **web**"
		f.expectDeckFile("deck.md", parsed)

		deck, err := f.service.Load(ctx, "deck.md", DeckSettings{BaseColor: "#3b82f6"}, DeckSettings{})
		require.NoError(t, err)
		assert.Equal(t, "Les images sur le web", deck.Title)
	})

	t.Run("warns about a malformed base color", func(t *testing.T) {
		f := newDeckFixture()
		f.expectDeckFile("deck.md", parsedDeck(ports.Frontmatter{BaseColor: "bleu"}, 1))

		deck, err := f.service.Load(ctx, "deck.md", testDefaults, DeckSettings{})
		require.NoError(t, err)

		assert.Equal(t, "bleu", deck.BaseColor)
		assert.Contains(t, f.logs.String(), "malformed base color")
		assert.Contains(t, f.logs.String(), "color=bleu")
	})

	t.Run("accepts a base color without #", func(t *testing.T) {
		f := newDeckFixture()
		f.expectDeckFile("deck.md", parsedDeck(ports.Frontmatter{BaseColor: "3b82f6"}, 1))

		_, err := f.service.Load(ctx, "deck.md", testDefaults, DeckSettings{})
		require.NoError(t, err)
		assert.NotContains(t, f.logs.String(), "malformed base color")
	})

	t.Run("empty path", func(t *testing.T) {
		f := newDeckFixture()

		_, err := f.service.Load(ctx, "", testDefaults, DeckSettings{})
		assert.Error(t, err)
	})

	t.Run("repository error", func(t *testing.T) {
		f := newDeckFixture()
		f.repo.On("LoadMarkdown", mock.Anything, "missing.md").Return(nil, errors.New("no such file"))

		_, err := f.service.Load(ctx, "missing.md", testDefaults, DeckSettings{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading deck")
	})

	t.Run("parser error", func(t *testing.T) {
		f := newDeckFixture()
		f.repo.On("LoadMarkdown", mock.Anything, "deck.md").Return([]byte("x"), nil)
		f.parser.On("Parse", mock.Anything, []byte("x")).Return(nil, errors.New("bad palette"))

		_, err := f.service.Load(ctx, "deck.md", testDefaults, DeckSettings{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing deck")
	})

	t.Run("invalid mode", func(t *testing.T) {
		f := newDeckFixture()
		f.expectDeckFile("deck.md", parsedDeck(ports.Frontmatter{Mode: "sepia"}, 1))

		_, err := f.service.Load(ctx, "deck.md", testDefaults, DeckSettings{})
		assert.ErrorIs(t, err, entities.ErrInvalidMode)
	})

	t.Run("empty deck", func(t *testing.T) {
		f := newDeckFixture()
		f.expectDeckFile("deck.md", parsedDeck(ports.Frontmatter{}, 0))

		_, err := f.service.Load(ctx, "deck.md", testDefaults, DeckSettings{})
		assert.ErrorIs(t, err, entities.ErrNoSlides)
	})
}

func TestDeckService_Render(t *testing.T) {
	ctx := context.Background()

	request := RenderRequest{
		DeckPath:   "deck.md",
		OutputPath: "out/deck.html",
		Defaults:   testDefaults,
		Sidecar:    true,
	}

	t.Run("renders and persists a new deck", func(t *testing.T) {
		f := newDeckFixture()
		f.expectDeckFile("deck.md", parsedDeck(ports.Frontmatter{}, 3))
		f.repo.On("LoadMetadata", mock.Anything, "out/deck.html").Return(nil, errors.New("not found"))
		f.renderer.On("Render", mock.Anything, mock.MatchedBy(func(o entities.RenderOptions) bool {
			return o.Title == "Défaut" && len(o.Slides) == 3 && !o.PreviewMode && o.SlideStartIndex == 0
		})).Return("<html></html>", nil)
		f.repo.On("SaveHTML", mock.Anything, "out/deck.html", "<html></html>").Return(nil)
		f.repo.On("SaveMetadata", mock.Anything, "out/deck.html", mock.MatchedBy(func(d *entities.Deck) bool {
			return d.ID == "deck-id"
		})).Return(nil)

		result, err := f.service.Render(ctx, request)
		require.NoError(t, err)

		assert.Equal(t, "out/deck.html", result.OutputPath)
		assert.Equal(t, len("<html></html>"), result.Bytes)
		assert.Equal(t, 3, result.Deck.SlideCount())
		f.repo.AssertExpectations(t)
		f.renderer.AssertExpectations(t)
	})

	t.Run("keeps the identity of a previous render", func(t *testing.T) {
		f := newDeckFixture()
		created := fixedNow.Add(-48 * time.Hour)
		f.expectDeckFile("deck.md", parsedDeck(ports.Frontmatter{}, 1))
		f.repo.On("LoadMetadata", mock.Anything, "out/deck.html").Return(&entities.Deck{ID: "old-id", CreatedAt: created}, nil)
		f.renderer.On("Render", mock.Anything, mock.Anything).Return("<html/>", nil)
		f.repo.On("SaveHTML", mock.Anything, "out/deck.html", "<html/>").Return(nil)
		f.repo.On("SaveMetadata", mock.Anything, "out/deck.html", mock.Anything).Return(nil)

		result, err := f.service.Render(ctx, request)
		require.NoError(t, err)

		assert.Equal(t, "old-id", result.Deck.ID)
		assert.Equal(t, created, result.Deck.CreatedAt)
	})

	t.Run("sidecar disabled", func(t *testing.T) {
		f := newDeckFixture()
		f.expectDeckFile("deck.md", parsedDeck(ports.Frontmatter{}, 1))
		f.repo.On("LoadMetadata", mock.Anything, "out/deck.html").Return(nil, errors.New("not found"))
		f.renderer.On("Render", mock.Anything, mock.Anything).Return("<html/>", nil)
		f.repo.On("SaveHTML", mock.Anything, "out/deck.html", "<html/>").Return(nil)

		req := request
		req.Sidecar = false

		_, err := f.service.Render(ctx, req)
		require.NoError(t, err)
		f.repo.AssertNotCalled(t, "SaveMetadata", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("render error stops before writing", func(t *testing.T) {
		f := newDeckFixture()
		f.expectDeckFile("deck.md", parsedDeck(ports.Frontmatter{}, 1))
		f.repo.On("LoadMetadata", mock.Anything, "out/deck.html").Return(nil, errors.New("not found"))
		f.renderer.On("Render", mock.Anything, mock.Anything).Return("", entities.ErrMissingTitle)

		_, err := f.service.Render(ctx, request)
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrMissingTitle)
		f.repo.AssertNotCalled(t, "SaveHTML", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("write error", func(t *testing.T) {
		f := newDeckFixture()
		f.expectDeckFile("deck.md", parsedDeck(ports.Frontmatter{}, 1))
		f.repo.On("LoadMetadata", mock.Anything, "out/deck.html").Return(nil, errors.New("not found"))
		f.renderer.On("Render", mock.Anything, mock.Anything).Return("<html/>", nil)
		f.repo.On("SaveHTML", mock.Anything, "out/deck.html", "<html/>").Return(errors.New("disk full"))

		_, err := f.service.Render(ctx, request)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "saving HTML")
	})

	t.Run("missing output path", func(t *testing.T) {
		f := newDeckFixture()

		req := request
		req.OutputPath = ""

		_, err := f.service.Render(ctx, req)
		assert.Error(t, err)
	})
}

func TestDeckService_Preview(t *testing.T) {
	ctx := context.Background()

	t.Run("renders one slide at its deck position", func(t *testing.T) {
		f := newDeckFixture()
		f.expectDeckFile("deck.md", parsedDeck(ports.Frontmatter{}, 4))
		f.renderer.On("Render", mock.Anything, mock.MatchedBy(func(o entities.RenderOptions) bool {
			return o.PreviewMode && o.SlideStartIndex == 2 && len(o.Slides) == 1 && o.Slides[0].Title == "Slide 3"
		})).Return("<preview/>", nil)

		html, err := f.service.Preview(ctx, "deck.md", 2, testDefaults, DeckSettings{})
		require.NoError(t, err)
		assert.Equal(t, "<preview/>", html)
	})

	t.Run("index out of range", func(t *testing.T) {
		f := newDeckFixture()
		f.expectDeckFile("deck.md", parsedDeck(ports.Frontmatter{}, 2))

		_, err := f.service.Preview(ctx, "deck.md", 2, testDefaults, DeckSettings{})
		assert.ErrorIs(t, err, entities.ErrInvalidSlideIndex)
	})
}

func TestDeckService_Slides(t *testing.T) {
	f := newDeckFixture()
	f.expectDeckFile("deck.md", parsedDeck(ports.Frontmatter{}, 3))

	slides, err := f.service.Slides(context.Background(), "deck.md")
	require.NoError(t, err)
	assert.Len(t, slides, 3)
}

func storedDeck() *entities.Deck {
	return builders.NewDeckBuilder().
		WithID("stored-id").
		WithTitle("Images").
		WithMarkdown("# A\n---\n# B").
		Build()
}

func TestDeckService_ReplaceSlide(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces, re-renders and persists", func(t *testing.T) {
		f := newDeckFixture()
		newSlides := builders.NewSlideListBuilder().WithCount(2).Build()

		f.repo.On("LoadMetadata", mock.Anything, "deck.html").Return(storedDeck(), nil)
		f.parser.On("ReplaceSlide", "# A\n---\n# B", 1, "# B2").Return("# A\n\n---\n\n# B2", nil)
		f.parser.On("Split", "# A\n\n---\n\n# B2").Return(newSlides)
		f.renderer.On("Render", mock.Anything, mock.Anything).Return("<html/>", nil)
		f.repo.On("SaveHTML", mock.Anything, "deck.html", "<html/>").Return(nil)
		f.repo.On("SaveMetadata", mock.Anything, "deck.html", mock.MatchedBy(func(d *entities.Deck) bool {
			return d.ID == "stored-id" && d.Markdown == "# A\n\n---\n\n# B2"
		})).Return(nil)

		deck, err := f.service.ReplaceSlide(ctx, "deck.html", 1, "# B2")
		require.NoError(t, err)

		assert.Equal(t, newSlides, deck.Slides)
		f.repo.AssertExpectations(t)
	})

	t.Run("invalid index", func(t *testing.T) {
		f := newDeckFixture()
		f.repo.On("LoadMetadata", mock.Anything, "deck.html").Return(storedDeck(), nil)
		f.parser.On("ReplaceSlide", mock.Anything, 5, mock.Anything).Return("", entities.ErrInvalidSlideIndex)

		_, err := f.service.ReplaceSlide(ctx, "deck.html", 5, "# X")
		assert.ErrorIs(t, err, entities.ErrInvalidSlideIndex)
		f.renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
	})

	t.Run("metadata without markdown", func(t *testing.T) {
		f := newDeckFixture()
		f.repo.On("LoadMetadata", mock.Anything, "deck.html").Return(&entities.Deck{Title: "x"}, nil)

		_, err := f.service.ReplaceSlide(ctx, "deck.html", 0, "# X")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no markdown source")
	})
}

func TestDeckService_UpdatePalette(t *testing.T) {
	ctx := context.Background()
	override := &entities.PaletteOverride{
		Accent:         "#111111",
		AccentContrast: "#ffffff",
		AccentLight:    "#222222",
		AccentDark:     "#000000",
		TextHighlight:  "#333333",
	}

	t.Run("applies override", func(t *testing.T) {
		f := newDeckFixture()
		f.repo.On("LoadMetadata", mock.Anything, "deck.html").Return(storedDeck(), nil)
		f.parser.On("Split", "# A\n---\n# B").Return(builders.NewSlideListBuilder().WithCount(2).Build())
		f.renderer.On("Render", mock.Anything, mock.MatchedBy(func(o entities.RenderOptions) bool {
			return o.Palette == override
		})).Return("<html/>", nil)
		f.repo.On("SaveHTML", mock.Anything, "deck.html", "<html/>").Return(nil)
		f.repo.On("SaveMetadata", mock.Anything, "deck.html", mock.Anything).Return(nil)

		deck, err := f.service.UpdatePalette(ctx, "deck.html", override)
		require.NoError(t, err)
		assert.Equal(t, override, deck.Palette)
	})

	t.Run("rejects malformed override without touching files", func(t *testing.T) {
		f := newDeckFixture()
		bad := *override
		bad.TextHighlight = "yellow"

		_, err := f.service.UpdatePalette(ctx, "deck.html", &bad)

		var colorErr *entities.ColorError
		require.ErrorAs(t, err, &colorErr)
		assert.Equal(t, "textHighlight", colorErr.Field)
		f.repo.AssertNotCalled(t, "LoadMetadata", mock.Anything, mock.Anything)
	})
}

func TestDeckService_Recolor(t *testing.T) {
	ctx := context.Background()

	t.Run("sets base color and clears override", func(t *testing.T) {
		f := newDeckFixture()
		stored := storedDeck()
		stored.Palette = &entities.PaletteOverride{Accent: "#111111"}

		f.repo.On("LoadMetadata", mock.Anything, "deck.html").Return(stored, nil)
		f.parser.On("Split", mock.Anything).Return(builders.NewSlideListBuilder().WithCount(2).Build())
		f.renderer.On("Render", mock.Anything, mock.MatchedBy(func(o entities.RenderOptions) bool {
			return o.BaseColor == "#f97316" && o.Palette == nil
		})).Return("<html/>", nil)
		f.repo.On("SaveHTML", mock.Anything, "deck.html", "<html/>").Return(nil)
		f.repo.On("SaveMetadata", mock.Anything, "deck.html", mock.Anything).Return(nil)

		deck, err := f.service.Recolor(ctx, "deck.html", "#f97316")
		require.NoError(t, err)
		assert.Nil(t, deck.Palette)
	})

	t.Run("rejects malformed color", func(t *testing.T) {
		f := newDeckFixture()

		_, err := f.service.Recolor(ctx, "deck.html", "orange")

		var colorErr *entities.ColorError
		assert.ErrorAs(t, err, &colorErr)
	})
}
