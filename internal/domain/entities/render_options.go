package entities

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultLanguage is the document language used when none is configured
const DefaultLanguage = "fr"

// RenderOptions carries everything a single render call needs
type RenderOptions struct {
	// Title is the document title
	Title string

	// Slides are rendered in order
	Slides []Slide

	// BaseColor seeds the derived palette (#RRGGBB; malformed values fall back to black)
	BaseColor string

	// Mode selects the dark or light base theme
	Mode Mode

	// Palette replaces the derived accent colours when set
	Palette *PaletteOverride

	// PreviewMode renders a standalone document without navigation or footer
	PreviewMode bool

	// SlideStartIndex is the deck position of Slides[0]; it decides hero vs content
	SlideStartIndex int

	// Language is the BCP 47 tag used for <html lang> and interface labels
	Language string
}

// Validate checks the call contract and fills defaults for optional fields
func (o *RenderOptions) Validate() error {
	if len(o.Slides) == 0 {
		return ErrNoSlides
	}

	if strings.TrimSpace(o.Title) == "" {
		return ErrMissingTitle
	}

	mode, err := ParseMode(string(o.Mode))
	if err != nil {
		return err
	}
	o.Mode = mode

	if o.SlideStartIndex < 0 {
		return fmt.Errorf("%w: start index %d", ErrInvalidSlideIndex, o.SlideStartIndex)
	}

	if o.Palette != nil {
		if err := o.Palette.Validate(); err != nil {
			return fmt.Errorf("palette override: %w", err)
		}
	}

	o.Slides = withFallbackTitles(o.Slides)
	for i := range o.Slides {
		if err := o.Slides[i].Validate(); err != nil {
			return fmt.Errorf("slide %d validation failed: %w", i+1, err)
		}
	}

	if o.Language == "" {
		o.Language = DefaultLanguage
	}

	return nil
}

// withFallbackTitles gives untitled slides their placeholder title. The
// slice is copied before the first change so the caller's slides are untouched.
func withFallbackTitles(slides []Slide) []Slide {
	out := slides
	copied := false

	for i, s := range slides {
		if strings.TrimSpace(s.Title) != "" {
			continue
		}
		if !copied {
			out = slices.Clone(slides)
			copied = true
		}
		out[i].Title = FallbackTitle(s.Index)
	}

	return out
}
