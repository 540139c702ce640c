package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fallinov/prez-app/internal/domain/entities"
	"github.com/fallinov/prez-app/internal/domain/ports"
)

// ErrMetadataNotFound is returned when a rendered deck has no sidecar
var ErrMetadataNotFound = errors.New("deck metadata not found")

// FileSystem stores deck sources, rendered HTML and metadata sidecars on disk
type FileSystem struct{}

// NewFileSystem creates a filesystem deck repository
func NewFileSystem() *FileSystem {
	return &FileSystem{}
}

// LoadMarkdown reads a deck source file
func (r *FileSystem) LoadMarkdown(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) // #nosec G304 - path is supplied by the user on the command line
	if err != nil {
		return nil, fmt.Errorf("reading deck %s: %w", path, err)
	}
	return data, nil
}

// SaveHTML writes the rendered document, creating the parent directory
func (r *FileSystem) SaveHTML(ctx context.Context, path string, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeFile(path, []byte(html))
}

// SaveMetadata writes the JSON sidecar that lets a rendered deck be edited later
func (r *FileSystem) SaveMetadata(ctx context.Context, htmlPath string, deck *entities.Deck) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if deck == nil {
		return errors.New("deck cannot be nil")
	}

	data, err := json.MarshalIndent(deck, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}

	return writeFile(MetadataPath(htmlPath), append(data, '\n'))
}

// LoadMetadata reads the JSON sidecar of a rendered deck. Slides are not
// stored; callers split Markdown again.
func (r *FileSystem) LoadMetadata(ctx context.Context, htmlPath string) (*entities.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := MetadataPath(htmlPath)
	data, err := os.ReadFile(path) // #nosec G304 - derived from the user supplied output path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMetadataNotFound, path)
		}
		return nil, fmt.Errorf("reading metadata %s: %w", path, err)
	}

	var deck entities.Deck
	if err := json.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("decoding metadata %s: %w", path, err)
	}

	return &deck, nil
}

// MetadataPath returns the sidecar path for a rendered document: deck.html -> deck.json
func MetadataPath(htmlPath string) string {
	ext := filepath.Ext(htmlPath)
	if strings.EqualFold(ext, ".html") || strings.EqualFold(ext, ".htm") {
		return strings.TrimSuffix(htmlPath, ext) + ".json"
	}
	return htmlPath + ".json"
}

// writeFile writes through a temporary file in the same directory so readers
// never see a partial document
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".prez-*")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Ensure FileSystem implements ports.DeckRepository
var _ ports.DeckRepository = (*FileSystem)(nil)
