package ports

import (
	"context"

	"github.com/fallinov/prez-app/internal/domain/entities"
)

// DeckParser implements the slide-list serialization contract
type DeckParser interface {
	// Parse reads optional frontmatter and splits the remaining markdown into slides
	Parse(ctx context.Context, content []byte) (*ParsedDeck, error)

	// Split splits deck markdown on line-exact --- separators
	Split(markdown string) []entities.Slide

	// Join serializes slides back into deck markdown
	Join(slides []entities.Slide) string

	// ReplaceSlide swaps the raw text of the slide at index and returns the rebuilt markdown
	ReplaceSlide(markdown string, index int, text string) (string, error)
}

// ParsedDeck is the result of parsing a deck file
type ParsedDeck struct {
	Frontmatter Frontmatter
	Markdown    string
	Slides      []entities.Slide
}

// Frontmatter holds the render settings a deck may declare about itself
type Frontmatter struct {
	Title     string                    `yaml:"title"`
	BaseColor string                    `yaml:"base_color"`
	Mode      string                    `yaml:"mode"`
	Language  string                    `yaml:"language"`
	Palette   *entities.PaletteOverride `yaml:"palette"`
}
