package builders

import (
	"strconv"
	"time"

	"github.com/fallinov/prez-app/internal/domain/entities"
)

// DeckBuilder helps build Deck entities for testing
type DeckBuilder struct {
	deck *entities.Deck
}

// NewDeckBuilder creates a new deck builder with sensible defaults
func NewDeckBuilder() *DeckBuilder {
	return &DeckBuilder{
		deck: &entities.Deck{
			ID:        "00000000-0000-4000-8000-000000000001",
			Title:     "Test Deck",
			BaseColor: "#3b82f6",
			Mode:      entities.ModeDark,
			Language:  entities.DefaultLanguage,
			CreatedAt: time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC),
			Slides:    []entities.Slide{},
		},
	}
}

// WithID sets the deck ID
func (b *DeckBuilder) WithID(id string) *DeckBuilder {
	b.deck.ID = id
	return b
}

// WithTitle sets the deck title
func (b *DeckBuilder) WithTitle(title string) *DeckBuilder {
	b.deck.Title = title
	return b
}

// WithMarkdown sets the deck source
func (b *DeckBuilder) WithMarkdown(markdown string) *DeckBuilder {
	b.deck.Markdown = markdown
	return b
}

// WithBaseColor sets the base colour
func (b *DeckBuilder) WithBaseColor(color string) *DeckBuilder {
	b.deck.BaseColor = color
	return b
}

// WithMode sets the base theme
func (b *DeckBuilder) WithMode(mode entities.Mode) *DeckBuilder {
	b.deck.Mode = mode
	return b
}

// WithPalette sets the palette override
func (b *DeckBuilder) WithPalette(p *entities.PaletteOverride) *DeckBuilder {
	b.deck.Palette = p
	return b
}

// WithSlides sets the deck slides
func (b *DeckBuilder) WithSlides(slides []entities.Slide) *DeckBuilder {
	b.deck.Slides = slides
	return b
}

// WithSlideCount adds the specified number of default slides
func (b *DeckBuilder) WithSlideCount(count int) *DeckBuilder {
	b.deck.Slides = append(b.deck.Slides, NewSlideListBuilder().WithCount(count).Build()...)
	return b
}

// Build creates the final Deck entity
func (b *DeckBuilder) Build() *entities.Deck {
	d := *b.deck
	d.Slides = append([]entities.Slide{}, b.deck.Slides...)
	if b.deck.Palette != nil {
		p := *b.deck.Palette
		d.Palette = &p
	}
	return &d
}

// SlideBuilder helps build Slide entities for testing
type SlideBuilder struct {
	slide entities.Slide
}

// NewSlideBuilder creates a new slide builder with sensible defaults
func NewSlideBuilder() *SlideBuilder {
	return &SlideBuilder{
		slide: entities.Slide{
			Index:   0,
			Title:   "Test Slide",
			Content: "Test content",
			Preview: "Test content",
		},
	}
}

// WithIndex sets the slide index
func (b *SlideBuilder) WithIndex(index int) *SlideBuilder {
	b.slide.Index = index
	return b
}

// WithTitle sets the slide title
func (b *SlideBuilder) WithTitle(title string) *SlideBuilder {
	b.slide.Title = title
	return b
}

// WithContent sets the slide content and its preview
func (b *SlideBuilder) WithContent(content string) *SlideBuilder {
	b.slide.Content = content
	b.slide.Preview = entities.MakePreview(content)
	return b
}

// WithNotes sets the speaker notes
func (b *SlideBuilder) WithNotes(notes string) *SlideBuilder {
	b.slide.Notes = notes
	return b
}

// Build creates the final Slide entity
func (b *SlideBuilder) Build() entities.Slide {
	return b.slide
}

// SlideListBuilder builds an ordered run of slides
type SlideListBuilder struct {
	count int
}

// NewSlideListBuilder creates a slide list builder
func NewSlideListBuilder() *SlideListBuilder {
	return &SlideListBuilder{count: 1}
}

// WithCount sets how many slides to build
func (b *SlideListBuilder) WithCount(count int) *SlideListBuilder {
	b.count = count
	return b
}

// Build creates slides titled "Slide 1".."Slide N" with simple content
func (b *SlideListBuilder) Build() []entities.Slide {
	slides := make([]entities.Slide, 0, b.count)
	for i := 0; i < b.count; i++ {
		n := strconv.Itoa(i + 1)
		slides = append(slides, NewSlideBuilder().
			WithIndex(i).
			WithTitle("Slide "+n).
			WithContent("Content of slide "+n).
			Build())
	}
	return slides
}

// MinimalDeck creates a deck with one slide
func MinimalDeck() *entities.Deck {
	return NewDeckBuilder().
		WithTitle("Minimal").
		WithSlideCount(1).
		Build()
}

// SampleMarkdown is a small deck that exercises the block dialect
const SampleMarkdown = `# Les images sur le **web**

Optimiser sans perdre en qualité

[WebP] [AVIF]

---

# Formats — comparer

:::cards
[JPG|yellow] Photos
✓ Léger

[PNG|blue] Transparence
✓ Sans perte
:::

Note: Insister sur la transparence

---

# Poids — en chiffres

:::compare
JPG|180 Ko|40|yellow
PNG|450 Ko|100|red
:::`
