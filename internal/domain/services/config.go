package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fallinov/prez-app/internal/domain/entities"
	"github.com/fallinov/prez-app/internal/domain/ports"
)

// Configuration layers, lowest precedence first
const (
	SourceDefaults = "defaults"
	SourceEnv      = "env"
	SourceFlags    = "flags"
)

// ResolvedConfig is an effective configuration and the layers it was built from
type ResolvedConfig struct {
	Config *entities.Config

	// Sources lists the layers that contributed, lowest precedence first.
	// Config files appear as their path.
	Sources []string
}

// ConfigService resolves the effective configuration for a deck directory
type ConfigService struct {
	loader ports.ConfigLoader
	merger ports.ConfigMerger
}

// NewConfigService creates a new configuration service
func NewConfigService(loader ports.ConfigLoader, merger ports.ConfigMerger) *ConfigService {
	return &ConfigService{
		loader: loader,
		merger: merger,
	}
}

// LoadConfig returns the effective configuration for decks in dir
func (s *ConfigService) LoadConfig(ctx context.Context, dir string, flags map[string]interface{}) (*entities.Config, error) {
	resolved, err := s.Resolve(ctx, dir, flags)
	if err != nil {
		return nil, err
	}
	return resolved.Config, nil
}

// Resolve layers defaults, the global file, dir's prez.toml, PREZ_* variables
// and flags, then validates the result
func (s *ConfigService) Resolve(ctx context.Context, dir string, flags map[string]interface{}) (*ResolvedConfig, error) {
	layers := []*entities.Config{s.GetDefaultConfig()}
	sources := []string{SourceDefaults}

	global, err := s.loader.LoadGlobal(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}
	if global != nil {
		layers = append(layers, global)
		sources = append(sources, s.loader.GetGlobalPath())
	}

	if dir == "" {
		dir = "."
	}

	local, err := s.loader.LoadLocal(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("loading local config: %w", err)
	}
	if local != nil {
		layers = append(layers, local)
		sources = append(sources, s.loader.GetLocalPath(dir))
	}

	cfg := s.merger.ApplyEnvVars(s.merger.Merge(layers...))
	sources = append(sources, SourceEnv)

	if len(flags) > 0 {
		cfg = s.merger.ApplyFlags(cfg, flags)
		sources = append(sources, SourceFlags)
	}

	if err := s.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("final config validation: %w", err)
	}

	return &ResolvedConfig{Config: cfg, Sources: sources}, nil
}

// GetDefaultConfig returns the default configuration
func (s *ConfigService) GetDefaultConfig() *entities.Config {
	return s.merger.Merge()
}

// ValidateConfig validates a configuration
func (s *ConfigService) ValidateConfig(config *entities.Config) error {
	if config == nil {
		return errors.New("config cannot be nil")
	}

	return config.Validate()
}

// CreateGlobalConfig writes the defaults to the global configuration file
func (s *ConfigService) CreateGlobalConfig(ctx context.Context) error {
	return s.loader.CreateDefaults(ctx, s.loader.GetGlobalPath())
}

var _ ports.ConfigService = (*ConfigService)(nil)
