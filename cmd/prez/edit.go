package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fallinov/prez-app/internal/domain/entities"
)

var replaceSlideCmd = &cobra.Command{
	Use:   "replace-slide <deck.html>",
	Short: "Replace one slide of a rendered deck",
	Long: `Replace the raw text of one slide of a deck rendered with its JSON
sidecar, then re-render the document in place.

Example:
  prez replace-slide cours.html --slide 2 --from nouvelle.md
  pbpaste | prez replace-slide cours.html --slide 2 --from -`,
	Args: cobra.ExactArgs(1),
	RunE: runReplaceSlide,
}

var setPaletteCmd = &cobra.Command{
	Use:   "set-palette <deck.html>",
	Short: "Change the colours of a rendered deck",
	Long: `Apply a five colour palette override, a new base colour, or go back
to the palette derived from the base colour, then re-render in place.

Example:
  prez set-palette cours.html --palette brand.yaml
  prez set-palette cours.html --color "#f97316"
  prez set-palette cours.html --reset`,
	Args: cobra.ExactArgs(1),
	RunE: runSetPalette,
}

func init() {
	rootCmd.AddCommand(replaceSlideCmd)
	rootCmd.AddCommand(setPaletteCmd)

	replaceSlideCmd.Flags().IntP("slide", "s", 0, "Slide number, starting at 1")
	replaceSlideCmd.Flags().String("from", "", "File with the new slide text, or - for stdin")
	_ = replaceSlideCmd.MarkFlagRequired("slide")
	_ = replaceSlideCmd.MarkFlagRequired("from")

	setPaletteCmd.Flags().String("palette", "", "YAML file with a five colour palette override")
	setPaletteCmd.Flags().String("color", "", "New base colour as #RRGGBB; drops any override")
	setPaletteCmd.Flags().Bool("reset", false, "Remove the palette override")
	setPaletteCmd.MarkFlagsMutuallyExclusive("palette", "color", "reset")
	setPaletteCmd.MarkFlagsOneRequired("palette", "color", "reset")
}

func runReplaceSlide(cmd *cobra.Command, args []string) error {
	htmlPath := args[0]

	slide, _ := cmd.Flags().GetInt("slide")
	if slide < 1 {
		return errors.New("slide number must be at least 1")
	}

	from, _ := cmd.Flags().GetString("from")
	text, err := readSlideText(cmd.InOrStdin(), from)
	if err != nil {
		return err
	}

	a, err := newApp(cmd, filepath.Dir(htmlPath))
	if err != nil {
		return err
	}
	defer a.close()

	deck, err := a.decks.ReplaceSlide(cmd.Context(), htmlPath, slide-1, text)
	if err != nil {
		return err
	}

	printUpdated(cmd.OutOrStdout(), htmlPath, deck)
	return nil
}

// readSlideText reads replacement text from a file, or stdin when from is "-"
func readSlideText(stdin io.Reader, from string) (string, error) {
	var (
		data []byte
		err  error
	)

	if from == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(from) // #nosec G304 - user supplied slide file
	}
	if err != nil {
		return "", fmt.Errorf("reading slide text: %w", err)
	}

	return string(data), nil
}

func runSetPalette(cmd *cobra.Command, args []string) error {
	htmlPath := args[0]

	a, err := newApp(cmd, filepath.Dir(htmlPath))
	if err != nil {
		return err
	}
	defer a.close()

	var deck *entities.Deck

	switch {
	case cmd.Flags().Changed("color"):
		baseColor, _ := cmd.Flags().GetString("color")
		deck, err = a.decks.Recolor(cmd.Context(), htmlPath, baseColor)

	case cmd.Flags().Changed("palette"):
		path, _ := cmd.Flags().GetString("palette")
		override, readErr := readPaletteFile(path)
		if readErr != nil {
			return readErr
		}
		deck, err = a.decks.UpdatePalette(cmd.Context(), htmlPath, override)

	default:
		deck, err = a.decks.UpdatePalette(cmd.Context(), htmlPath, nil)
	}
	if err != nil {
		return err
	}

	printUpdated(cmd.OutOrStdout(), htmlPath, deck)
	return nil
}

func printUpdated(w io.Writer, htmlPath string, deck *entities.Deck) {
	color.New(color.FgGreen).Fprint(w, "✓ ")
	fmt.Fprintf(w, "%s updated (%d slides)\n", htmlPath, deck.SlideCount())
}
