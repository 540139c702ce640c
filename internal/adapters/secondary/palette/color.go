package palette

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var hexRe = regexp.MustCompile(`(?i)^#?([a-f\d]{2})([a-f\d]{2})([a-f\d]{2})$`)

// RGB is one colour with channels in 0..255
type RGB struct {
	R, G, B float64
}

// ParseHex parses #rrggbb (the leading # is optional). ok is false for anything else.
func ParseHex(hex string) (RGB, bool) {
	m := hexRe.FindStringSubmatch(hex)
	if m == nil {
		return RGB{}, false
	}

	channel := func(s string) float64 {
		v, _ := strconv.ParseUint(s, 16, 8)
		return float64(v)
	}

	return RGB{R: channel(m[1]), G: channel(m[2]), B: channel(m[3])}, true
}

// HexToRGB is the lenient variant of ParseHex: malformed input is black.
func HexToRGB(hex string) RGB {
	c, _ := ParseHex(hex)
	return c
}

// Hex formats the colour as lower-case #rrggbb, rounding and clamping each channel
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", clampChannel(c.R), clampChannel(c.G), clampChannel(c.B))
}

func clampChannel(v float64) int {
	return int(math.Round(math.Max(0, math.Min(255, v))))
}

// Normalize returns hex as #rrggbb. Well-formed #RRGGBB input is returned
// unchanged; malformed input resolves to black and ok is false.
func Normalize(hex string) (string, bool) {
	c, ok := ParseHex(hex)
	if ok && hex[0] == '#' {
		return hex, true
	}
	return c.Hex(), ok
}

// Luminance returns the WCAG relative luminance of hex
func Luminance(hex string) float64 {
	c := HexToRGB(hex)
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B)
}

func linearize(channel float64) float64 {
	c := channel / 255
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// ContrastRatio returns the WCAG contrast ratio between two colours, from 1 to 21
func ContrastRatio(a, b string) float64 {
	la, lb := Luminance(a), Luminance(b)
	lighter, darker := math.Max(la, lb), math.Min(la, lb)
	return (lighter + 0.05) / (darker + 0.05)
}

// Lighten moves each channel pct percent of the way toward 255
func Lighten(hex string, pct float64) string {
	c := HexToRGB(hex)
	f := pct / 100
	return RGB{
		R: c.R + (255-c.R)*f,
		G: c.G + (255-c.G)*f,
		B: c.B + (255-c.B)*f,
	}.Hex()
}

// Darken moves each channel pct percent of the way toward 0
func Darken(hex string, pct float64) string {
	c := HexToRGB(hex)
	f := 1 - pct/100
	return RGB{R: c.R * f, G: c.G * f, B: c.B * f}.Hex()
}
