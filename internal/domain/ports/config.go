package ports

import (
	"context"

	"github.com/fallinov/prez-app/internal/domain/entities"
)

// ConfigLoader loads TOML configuration files
type ConfigLoader interface {
	// LoadGlobal loads ~/.config/prez/config.toml; a missing file yields (nil, nil)
	LoadGlobal(ctx context.Context) (*entities.Config, error)

	// LoadLocal loads prez.toml from dir; a missing file yields (nil, nil)
	LoadLocal(ctx context.Context, dir string) (*entities.Config, error)

	// CreateDefaults writes a default configuration file to path
	CreateDefaults(ctx context.Context, path string) error

	GetGlobalPath() string
	GetLocalPath(dir string) string
}

// ConfigMerger layers configurations
type ConfigMerger interface {
	// Merge merges configurations with later configs taking precedence
	Merge(configs ...*entities.Config) *entities.Config

	// ApplyFlags applies CLI flag overrides
	ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config

	// ApplyEnvVars applies PREZ_* environment overrides
	ApplyEnvVars(config *entities.Config) *entities.Config
}

// ConfigService resolves the effective configuration
type ConfigService interface {
	LoadConfig(ctx context.Context, workingDir string, flags map[string]interface{}) (*entities.Config, error)
	GetDefaultConfig() *entities.Config
	ValidateConfig(config *entities.Config) error
	CreateGlobalConfig(ctx context.Context) error
}
