package entities

import (
	"errors"
	"strconv"
	"strings"
)

// PreviewLength is the number of runes kept in a slide preview
const PreviewLength = 100

// Slide represents a single slide in a deck
type Slide struct {
	// Index is the slide position in the deck (0-based)
	Index int `json:"index"`

	// Title is recovered from the leading "# " heading or generated
	Title string `json:"title"`

	// Content is the raw block-markdown body of the slide, title line excluded
	Content string `json:"content"`

	// Preview is a short plain excerpt of Content
	Preview string `json:"preview"`

	// Notes contains speaker notes for this slide
	Notes string `json:"notes,omitempty"`
}

// Validate ensures the slide can be rendered
func (s *Slide) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return errors.New("slide title cannot be empty")
	}

	if s.Index < 0 {
		return errors.New("slide index must be non-negative")
	}

	return nil
}

// HasNotes returns true if the slide has speaker notes
func (s *Slide) HasNotes() bool {
	return strings.TrimSpace(s.Notes) != ""
}

// FallbackTitle is the placeholder title used when a slide has no heading
func FallbackTitle(index int) string {
	return "Slide " + strconv.Itoa(index+1)
}

// MakePreview truncates content to PreviewLength runes, appending "..." when cut
func MakePreview(content string) string {
	runes := []rune(content)
	if len(runes) <= PreviewLength {
		return content
	}
	return string(runes[:PreviewLength]) + "..."
}
