package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fallinov/prez-app/internal/adapters/secondary/palette"
	"github.com/fallinov/prez-app/internal/domain/entities"
)

var paletteCmd = &cobra.Command{
	Use:   "palette <#RRGGBB>",
	Short: "Show the palette derived from a base colour",
	Long: `Show the background, text and accent colours derived from a base
colour, with their WCAG contrast ratios.

Example:
  prez palette "#3b82f6"
  prez palette 10b981 --mode light`,
	Args: cobra.ExactArgs(1),
	RunE: runPalette,
}

func init() {
	rootCmd.AddCommand(paletteCmd)

	paletteCmd.Flags().String("mode", "dark", "Base theme: dark or light")
}

func runPalette(cmd *cobra.Command, args []string) error {
	base, ok := palette.Normalize(args[0])
	if !ok {
		return &entities.ColorError{Field: "base_color", Value: args[0]}
	}

	modeFlag, _ := cmd.Flags().GetString("mode")
	mode, err := entities.ParseMode(modeFlag)
	if err != nil {
		return err
	}

	p := palette.Generate(base, mode)
	printPalette(cmd.OutOrStdout(), base, mode, p)

	return nil
}

func printPalette(w io.Writer, base string, mode entities.Mode, p entities.Palette) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "Palette for %s (%s)\n\n", base, mode)

	rows := []struct {
		name  string
		value string
	}{
		{"background", p.Background},
		{"text", p.Text},
		{"accent", p.Accent},
		{"accentLight", p.AccentLight},
		{"accentDark", p.AccentDark},
		{"accentContrast", palette.ContrastOn(p.Accent)},
	}

	for _, r := range rows {
		fmt.Fprintf(w, "  %s %-15s %s\n", swatch(r.value), r.name, r.value)
	}

	report := palette.Check(p)
	fmt.Fprintln(w)
	printRatio(w, "text", report.TextContrast, palette.MinTextContrast)
	printRatio(w, "accent", report.AccentContrast, palette.MinAccentContrast)
}

// swatch is a block of the colour itself; plain spaces when colour output is off
func swatch(hex string) string {
	c := palette.HexToRGB(hex)
	return color.BgRGB(int(c.R), int(c.G), int(c.B)).Sprint("    ")
}

func printRatio(w io.Writer, name string, ratio, min float64) {
	fmt.Fprintf(w, "  %-7s contrast %5.2f:1  ", name, ratio)
	if ratio >= min {
		color.New(color.FgGreen).Fprintf(w, "✓ AA (>= %.1f)\n", min)
		return
	}
	color.New(color.FgRed).Fprintf(w, "✗ below AA (%.1f)\n", min)
}
