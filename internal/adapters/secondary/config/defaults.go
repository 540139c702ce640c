package config

import (
	"os"
	"strconv"

	"github.com/fallinov/prez-app/internal/domain/entities"
)

// Default render settings
const (
	DefaultBaseColor = "#3b82f6"
	DefaultMode      = "dark"
)

// GetDefaultConfig returns the default configuration with environment overrides
func GetDefaultConfig() *entities.Config {
	sidecar := getEnvBoolOrDefault("PREZ_SIDECAR", true)

	return &entities.Config{
		Render: entities.RenderConfig{
			Title:     getEnvOrDefault("PREZ_TITLE", ""),
			BaseColor: getEnvOrDefault("PREZ_BASE_COLOR", DefaultBaseColor),
			Mode:      getEnvOrDefault("PREZ_MODE", DefaultMode),
			Language:  getEnvOrDefault("PREZ_LANG", entities.DefaultLanguage),
		},
		Highlight: entities.HighlightConfig{
			Engine: getEnvOrDefault("PREZ_HIGHLIGHT", entities.HighlightBuiltin),
			Style:  getEnvOrDefault("PREZ_HIGHLIGHT_STYLE", "monokai"),
		},
		Output: entities.OutputConfig{
			Sidecar: &sidecar,
		},
		Watcher: entities.WatcherConfig{
			IntervalMs: getEnvIntOrDefault("PREZ_WATCH_INTERVAL", 200),
			DebounceMs: getEnvIntOrDefault("PREZ_WATCH_DEBOUNCE", 500),
		},
		Logging: entities.LoggingConfig{
			Level:      getEnvOrDefault("PREZ_LOG_LEVEL", string(entities.LogLevelWarn)),
			Verbose:    getEnvBoolOrDefault("PREZ_LOG_VERBOSE", false),
			JSONFormat: getEnvBoolOrDefault("PREZ_LOG_JSON", false),
			File:       getEnvOrDefault("PREZ_LOG_FILE", ""),
		},
	}
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
