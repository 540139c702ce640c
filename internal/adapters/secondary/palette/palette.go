package palette

import (
	"github.com/fallinov/prez-app/internal/domain/entities"
)

// WCAG AA thresholds
const (
	MinTextContrast   = 4.5
	MinAccentContrast = 3.0
)

const (
	correctionStep = 20
	variantStep    = 15
)

// Fixed background and text colours per mode
const (
	DarkBackground  = "#0f172a"
	DarkText        = "#f1f5f9"
	LightBackground = "#f8fafc"
	LightText       = "#0f172a"
)

// Generate derives an accessible palette from one base colour.
//
// When the base colour lacks MinTextContrast against the mode background it is
// corrected once by a fixed step: lightened in dark mode, darkened in light
// mode. The correction is not repeated, so the result can still fall short.
func Generate(baseColor string, mode entities.Mode) entities.Palette {
	base, _ := Normalize(baseColor)

	p := entities.Palette{
		Background: DarkBackground,
		Text:       DarkText,
	}
	if mode == entities.ModeLight {
		p.Background = LightBackground
		p.Text = LightText
	}

	p.Accent = base
	if ContrastRatio(p.Accent, p.Background) < MinTextContrast {
		if mode == entities.ModeLight {
			p.Accent = Darken(base, correctionStep)
		} else {
			p.Accent = Lighten(base, correctionStep)
		}
	}

	p.AccentLight = Lighten(p.Accent, variantStep)
	p.AccentDark = Darken(p.Accent, variantStep)

	return p
}

// Validate reports whether text and accent both meet their contrast thresholds
func Validate(p entities.Palette) bool {
	r := Check(p)
	return r.TextContrast >= MinTextContrast && r.AccentContrast >= MinAccentContrast
}

// Report holds the measured contrast of a palette
type Report struct {
	TextContrast   float64
	AccentContrast float64
}

// Check measures text and accent contrast against the background
func Check(p entities.Palette) Report {
	return Report{
		TextContrast:   ContrastRatio(p.Text, p.Background),
		AccentContrast: ContrastRatio(p.Accent, p.Background),
	}
}

// ContrastOn picks white or slate text for use on top of accent, whichever reads better
func ContrastOn(accent string) string {
	if ContrastRatio("#ffffff", accent) >= ContrastRatio(DarkBackground, accent) {
		return "#ffffff"
	}
	return DarkBackground
}
