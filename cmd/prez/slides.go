package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fallinov/prez-app/internal/domain/entities"
)

var slidesCmd = &cobra.Command{
	Use:   "slides <deck.md>",
	Short: "List the slides of a deck",
	Args:  cobra.ExactArgs(1),
	RunE:  runSlides,
}

func init() {
	rootCmd.AddCommand(slidesCmd)

	slidesCmd.Flags().Bool("json", false, "Output as JSON")
}

func runSlides(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, filepath.Dir(args[0]))
	if err != nil {
		return err
	}
	defer a.close()

	slides, err := a.decks.Slides(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return outputSlidesJSON(cmd, slides)
	}

	return outputSlidesTable(cmd, slides)
}

func outputSlidesJSON(cmd *cobra.Command, slides []entities.Slide) error {
	output := struct {
		Slides []entities.Slide `json:"slides"`
		Count  int              `json:"count"`
	}{
		Slides: slides,
		Count:  len(slides),
	}

	jsonData, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return err
}

func outputSlidesTable(cmd *cobra.Command, slides []entities.Slide) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTITLE\tNOTES\tPREVIEW")

	for _, s := range slides {
		notes := ""
		if s.HasNotes() {
			notes = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Index+1, s.Title, notes, oneLine(s.Preview, 50))
	}

	return w.Flush()
}

// oneLine flattens s and cuts it to max runes
func oneLine(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
