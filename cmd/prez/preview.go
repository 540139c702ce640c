package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fallinov/prez-app/internal/adapters/secondary/repository"
)

var previewCmd = &cobra.Command{
	Use:   "preview <deck.md>",
	Short: "Render a single slide as a standalone document",
	Long: `Render one slide without navigation or footer. The slide keeps the
layout it has in the full deck, so slide 1 is rendered as the hero.

Without --output the document is written to stdout.

Example:
  prez preview cours.md --slide 3 > slide3.html`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().IntP("slide", "s", 1, "Slide number, starting at 1")
	previewCmd.Flags().StringP("output", "o", "", "Output HTML file (default: stdout)")
	addSettingsFlags(previewCmd)
	previewCmd.Flags().String("highlight", "", "Code highlighting engine: builtin or chroma (overrides config)")
	previewCmd.Flags().String("style", "", "Chroma style name (overrides config)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	deckPath := args[0]

	slide, _ := cmd.Flags().GetInt("slide")
	if slide < 1 {
		return errors.New("slide number must be at least 1")
	}

	a, err := newApp(cmd, filepath.Dir(deckPath))
	if err != nil {
		return err
	}
	defer a.close()

	overrides, err := overrideSettings(cmd)
	if err != nil {
		return err
	}

	html, err := a.decks.Preview(cmd.Context(), deckPath, slide-1, defaultSettings(a.cfg), overrides)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), html)
		return err
	}

	return repository.NewFileSystem().SaveHTML(cmd.Context(), output, html)
}
