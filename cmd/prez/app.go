package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fallinov/prez-app/internal/adapters/secondary/config"
	"github.com/fallinov/prez-app/internal/adapters/secondary/highlight"
	"github.com/fallinov/prez-app/internal/adapters/secondary/logging"
	"github.com/fallinov/prez-app/internal/adapters/secondary/notes"
	"github.com/fallinov/prez-app/internal/adapters/secondary/parser"
	"github.com/fallinov/prez-app/internal/adapters/secondary/renderer"
	"github.com/fallinov/prez-app/internal/adapters/secondary/repository"
	"github.com/fallinov/prez-app/internal/domain/entities"
	"github.com/fallinov/prez-app/internal/domain/services"
)

// configFlags are the flags that change configuration. Per-deck settings
// flags are applied after frontmatter instead, see overrideSettings.
var configFlags = []string{"highlight", "style", "no-sidecar", "verbose"}

// app is everything a command needs once configuration is resolved
type app struct {
	cfg    *entities.Config
	logger *slog.Logger
	decks  *services.DeckService
	close  func() error
}

// newApp resolves configuration for a deck in dir and wires the deck service
func newApp(cmd *cobra.Command, dir string) (*app, error) {
	resolved, err := loadConfig(cmd, dir)
	if err != nil {
		return nil, err
	}
	cfg := resolved.Config

	logger, closeLog, err := logging.New(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}
	logger.Debug("configuration resolved", slog.Any("sources", resolved.Sources))

	return &app{
		cfg:    cfg,
		logger: logger,
		decks:  newDeckService(cfg, logger),
		close:  closeLog,
	}, nil
}

// loadConfig layers defaults, global and local config files, env and flags
func loadConfig(cmd *cobra.Command, dir string) (*services.ResolvedConfig, error) {
	loader := config.NewTOMLLoader()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loader = config.NewTOMLLoaderWithPath(path)
	}

	svc := services.NewConfigService(loader, config.NewConfigMerger())

	resolved, err := svc.Resolve(cmd.Context(), dir, changedFlags(cmd, configFlags...))
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	return resolved, nil
}

// changedFlags collects the values of the named flags the user actually set
func changedFlags(cmd *cobra.Command, names ...string) map[string]interface{} {
	flags := make(map[string]interface{})

	for _, name := range names {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}

		switch f.Value.Type() {
		case "bool":
			v, _ := cmd.Flags().GetBool(name)
			flags[name] = v
		default:
			flags[name] = f.Value.String()
		}
	}

	return flags
}

func newDeckService(cfg *entities.Config, logger *slog.Logger) *services.DeckService {
	opts := []renderer.Option{
		renderer.WithNotes(notes.NewRenderer()),
		renderer.WithLogger(logger),
	}

	if cfg.Highlight.Engine == entities.HighlightChroma {
		opts = append(opts, renderer.WithHighlighter(
			highlight.NewChromaHighlighter(cfg.Highlight.GetStyle(), logger),
		))
	}

	return services.NewDeckService(
		parser.NewDeckParser(),
		renderer.NewDeckRenderer(opts...),
		repository.NewFileSystem(),
		logger,
	)
}

// defaultSettings turns the render section of the config into deck defaults
func defaultSettings(cfg *entities.Config) services.DeckSettings {
	return services.DeckSettings{
		Title:     cfg.Render.Title,
		BaseColor: cfg.Render.BaseColor,
		Mode:      entities.Mode(cfg.Render.Mode),
		Language:  cfg.Render.Language,
	}
}

// overrideSettings collects the render settings given explicitly on the command line
func overrideSettings(cmd *cobra.Command) (services.DeckSettings, error) {
	var s services.DeckSettings

	if cmd.Flags().Changed("title") {
		s.Title, _ = cmd.Flags().GetString("title")
	}
	if cmd.Flags().Changed("color") {
		s.BaseColor, _ = cmd.Flags().GetString("color")
	}
	if cmd.Flags().Changed("mode") {
		mode, _ := cmd.Flags().GetString("mode")
		s.Mode = entities.Mode(mode)
	}
	if cmd.Flags().Changed("lang") {
		s.Language, _ = cmd.Flags().GetString("lang")
	}
	if cmd.Flags().Changed("palette") {
		path, _ := cmd.Flags().GetString("palette")
		override, err := readPaletteFile(path)
		if err != nil {
			return s, err
		}
		s.Palette = override
	}

	return s, nil
}

// readPaletteFile reads a five colour override from a YAML file
func readPaletteFile(path string) (*entities.PaletteOverride, error) {
	data, err := os.ReadFile(path) // #nosec G304 - user supplied palette file
	if err != nil {
		return nil, fmt.Errorf("reading palette file: %w", err)
	}

	var override entities.PaletteOverride
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parsing palette file %s: %w", path, err)
	}

	if err := override.Validate(); err != nil {
		return nil, fmt.Errorf("palette file %s: %w", path, err)
	}

	return &override, nil
}

// defaultOutputPath places the HTML next to the deck with the same base name
func defaultOutputPath(deckPath string) string {
	ext := filepath.Ext(deckPath)
	return strings.TrimSuffix(deckPath, ext) + ".html"
}
