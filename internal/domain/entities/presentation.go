package entities

import (
	"fmt"
	"time"
)

// Deck represents a complete slide deck with the settings it was rendered with
type Deck struct {
	// ID is a unique identifier for the deck
	ID string `json:"id,omitempty"`

	// Title is the document title
	Title string `json:"title"`

	// Markdown is the full block-markdown source the slides were split from
	Markdown string `json:"markdown"`

	// BaseColor seeds the derived palette
	BaseColor string `json:"baseColor"`

	// Mode is the dark or light base theme
	Mode Mode `json:"mode"`

	// Language is the document language
	Language string `json:"language,omitempty"`

	// Palette is the optional five colour override
	Palette *PaletteOverride `json:"palette"`

	// CreatedAt is when the deck was first rendered
	CreatedAt time.Time `json:"createdAt"`

	// Slides contains all slides in order
	Slides []Slide `json:"-"`
}

// Validate ensures the deck has valid required fields
func (d *Deck) Validate() error {
	if d.Title == "" {
		return ErrMissingTitle
	}

	if len(d.Slides) == 0 {
		return ErrNoSlides
	}

	for i, slide := range d.Slides {
		if err := slide.Validate(); err != nil {
			return fmt.Errorf("slide %d validation failed: %w", i+1, err)
		}
	}

	if d.Palette != nil {
		if err := d.Palette.Validate(); err != nil {
			return fmt.Errorf("palette override: %w", err)
		}
	}

	return nil
}

// GetSlideByIndex returns a slide by its index (0-based)
func (d *Deck) GetSlideByIndex(index int) (*Slide, error) {
	if index < 0 || index >= len(d.Slides) {
		return nil, fmt.Errorf("%w: %d (0-%d)", ErrInvalidSlideIndex, index, len(d.Slides)-1)
	}
	return &d.Slides[index], nil
}

// SlideCount returns the total number of slides
func (d *Deck) SlideCount() int {
	return len(d.Slides)
}

// RenderOptions builds the render call for the whole deck
func (d *Deck) RenderOptions() RenderOptions {
	return RenderOptions{
		Title:     d.Title,
		Slides:    d.Slides,
		BaseColor: d.BaseColor,
		Mode:      d.Mode,
		Palette:   d.Palette,
		Language:  d.Language,
	}
}
