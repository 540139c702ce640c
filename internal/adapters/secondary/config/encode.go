package config

import (
	"io"

	"github.com/BurntSushi/toml"

	"github.com/fallinov/prez-app/internal/domain/entities"
)

// Encode writes a configuration as indented TOML
func Encode(w io.Writer, config *entities.Config) error {
	encoder := toml.NewEncoder(w)
	encoder.Indent = "  "
	return encoder.Encode(config)
}
