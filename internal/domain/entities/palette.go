package entities

import (
	"fmt"
	"regexp"
	"strings"
)

// Mode selects the light or dark base theme of a deck
type Mode string

const (
	ModeDark  Mode = "dark"
	ModeLight Mode = "light"
)

// ParseMode converts a user supplied string to a Mode. Empty means dark.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeDark:
		return ModeDark, nil
	case ModeLight:
		return ModeLight, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Palette is the colour set derived from a single base colour
type Palette struct {
	Background  string `json:"background"`
	Text        string `json:"text"`
	Accent      string `json:"accent"`
	AccentLight string `json:"accentLight"`
	AccentDark  string `json:"accentDark"`
}

// PaletteOverride is an externally supplied five colour set that replaces
// the derived accent colours
type PaletteOverride struct {
	Accent         string `json:"accent" yaml:"accent"`
	AccentContrast string `json:"accentContrast" yaml:"accentContrast"`
	AccentLight    string `json:"accentLight" yaml:"accentLight"`
	AccentDark     string `json:"accentDark" yaml:"accentDark"`
	TextHighlight  string `json:"textHighlight" yaml:"textHighlight"`
}

var (
	strictHexRe  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	tripletHexRe = regexp.MustCompile(`(?i)^#?[0-9a-f]{6}$`)
)

// IsHexColor reports whether s is a #RRGGBB colour
func IsHexColor(s string) bool {
	return strictHexRe.MatchString(s)
}

// IsHexTriplet reports whether s is a six digit hex colour, with or without
// the leading #. The palette engine reads anything else as black.
func IsHexTriplet(s string) bool {
	return tripletHexRe.MatchString(s)
}

// Validate checks that every colour of the override is a #RRGGBB value
func (p *PaletteOverride) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"accent", p.Accent},
		{"accentContrast", p.AccentContrast},
		{"accentLight", p.AccentLight},
		{"accentDark", p.AccentDark},
		{"textHighlight", p.TextHighlight},
	}

	for _, f := range fields {
		if !IsHexColor(f.value) {
			return &ColorError{Field: f.name, Value: f.value}
		}
	}

	return nil
}
