package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fallinov/prez-app/internal/adapters/secondary/browser"
	"github.com/fallinov/prez-app/internal/adapters/secondary/monitoring"
	"github.com/fallinov/prez-app/internal/adapters/secondary/watcher"
	"github.com/fallinov/prez-app/internal/domain/services"
)

var renderCmd = &cobra.Command{
	Use:   "render <deck.md>",
	Short: "Render a deck to a standalone HTML document",
	Long: `Render a block-markdown deck to one self-contained HTML file.

Settings are resolved from the configuration files, then the deck
frontmatter, then the flags given here.

Example:
  prez render cours.md
  prez render cours.md -o public/index.html --color "#10b981" --mode light
  prez render cours.md --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("output", "o", "", "Output HTML file (default: <deck>.html)")
	addSettingsFlags(renderCmd)
	renderCmd.Flags().String("highlight", "", "Code highlighting engine: builtin or chroma (overrides config)")
	renderCmd.Flags().String("style", "", "Chroma style name (overrides config)")
	renderCmd.Flags().Bool("no-sidecar", false, "Do not write the JSON metadata file")
	renderCmd.Flags().BoolP("watch", "w", false, "Re-render whenever the deck changes")
	renderCmd.Flags().Bool("open", false, "Open the rendered document in the browser")
}

// addSettingsFlags registers the per-deck render settings
func addSettingsFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Document title (overrides frontmatter)")
	cmd.Flags().String("color", "", "Base colour as #RRGGBB (overrides frontmatter)")
	cmd.Flags().String("mode", "", "Base theme: dark or light (overrides frontmatter)")
	cmd.Flags().String("lang", "", "Document language, e.g. fr or en (overrides frontmatter)")
	cmd.Flags().String("palette", "", "YAML file with a five colour palette override")
}

func runRender(cmd *cobra.Command, args []string) error {
	deckPath := args[0]

	a, err := newApp(cmd, filepath.Dir(deckPath))
	if err != nil {
		return err
	}
	defer a.close()

	overrides, err := overrideSettings(cmd)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = defaultOutputPath(deckPath)
	}

	req := services.RenderRequest{
		DeckPath:   deckPath,
		OutputPath: output,
		Defaults:   defaultSettings(a.cfg),
		Overrides:  overrides,
		Sidecar:    a.cfg.Output.SidecarEnabled(),
	}

	result, err := a.decks.Render(cmd.Context(), req)
	if err != nil {
		return err
	}
	printRenderResult(cmd.OutOrStdout(), result)

	if open, _ := cmd.Flags().GetBool("open"); open {
		if err := browser.NewOpener().Open(cmd.Context(), output); err != nil {
			a.logger.Warn("could not open browser", slog.String("error", err.Error()))
		}
	}

	watch, _ := cmd.Flags().GetBool("watch")
	if !watch {
		return nil
	}

	return watchDeck(cmd, a, req)
}

// watchDeck re-renders req until the command context is cancelled
func watchDeck(cmd *cobra.Command, a *app, req services.RenderRequest) error {
	w := watcher.NewPollingWatcher(a.cfg.Watcher.GetInterval(), a.cfg.Watcher.GetDebounce(), a.logger)
	live := services.NewLiveRenderService(w, a.decks, a.logger)
	stats := monitoring.NewRenderStats()

	out := cmd.OutOrStdout()
	notify := func(result *services.RenderResult, err error) {
		if err != nil {
			stats.RecordFailure(err)
			color.New(color.FgRed).Fprintf(out, "✗ %v\n", err)
			return
		}
		stats.RecordRender(result.Duration)
		printRenderResult(out, result)
	}

	if err := live.Start(cmd.Context(), req, notify); err != nil {
		return err
	}
	color.New(color.FgCyan).Fprintf(out, "Watching %s (Ctrl+C to stop)\n", req.DeckPath)

	<-cmd.Context().Done()

	if err := live.Stop(); err != nil {
		return fmt.Errorf("stopping live render: %w", err)
	}
	printWatchSummary(out, stats.Snapshot())

	return w.Stop()
}

func printWatchSummary(w io.Writer, s monitoring.Snapshot) {
	fmt.Fprintf(w, "Stopped after %s: %d renders, %d failed",
		s.Uptime.Round(time.Second), s.Renders, s.Failures)
	if s.Renders > 0 {
		fmt.Fprintf(w, ", avg %s, slowest %s",
			s.Average.Round(time.Millisecond), s.Slowest.Round(time.Millisecond))
	}
	fmt.Fprintln(w)

	if s.LastFailed {
		color.New(color.FgYellow).Fprintf(w, "Last render failed: %s\n", s.LastError)
	}
}

func printRenderResult(w io.Writer, result *services.RenderResult) {
	green := color.New(color.FgGreen)
	green.Fprint(w, "✓ ")
	fmt.Fprintf(w, "%s: %d slides, %d bytes in %s\n",
		result.OutputPath,
		result.Deck.SlideCount(),
		result.Bytes,
		result.Duration.Round(time.Millisecond),
	)
}
