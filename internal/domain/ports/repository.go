package ports

import (
	"context"

	"github.com/fallinov/prez-app/internal/domain/entities"
)

// DeckRepository reads deck sources and persists rendered output
type DeckRepository interface {
	// LoadMarkdown reads a deck source file
	LoadMarkdown(ctx context.Context, path string) ([]byte, error)

	// SaveHTML writes a rendered document
	SaveHTML(ctx context.Context, path string, html string) error

	// SaveMetadata writes the JSON sidecar that lets a rendered deck be re-rendered
	SaveMetadata(ctx context.Context, htmlPath string, deck *entities.Deck) error

	// LoadMetadata reads the JSON sidecar written next to htmlPath
	LoadMetadata(ctx context.Context, htmlPath string) (*entities.Deck, error)
}
