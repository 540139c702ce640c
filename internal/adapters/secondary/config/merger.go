package config

import (
	"os"
	"strconv"

	"github.com/fallinov/prez-app/internal/domain/entities"
	"github.com/fallinov/prez-app/internal/domain/ports"
)

// ConfigMerger implements the ConfigMerger interface
type ConfigMerger struct{}

// NewConfigMerger creates a new configuration merger
func NewConfigMerger() *ConfigMerger {
	return &ConfigMerger{}
}

// Merge merges multiple configurations with later configs taking precedence
func (m *ConfigMerger) Merge(configs ...*entities.Config) *entities.Config {
	if len(configs) == 0 {
		return GetDefaultConfig()
	}

	result := deepCopy(configs[0])
	if result == nil {
		result = &entities.Config{}
	}

	for i := 1; i < len(configs); i++ {
		if configs[i] != nil {
			m.mergeInto(result, configs[i])
		}
	}

	return result
}

// ApplyFlags applies CLI flag overrides to a configuration.
// Recognised keys: title, color, mode, lang, highlight, style (strings);
// no-sidecar, verbose (bools).
func (m *ConfigMerger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := deepCopy(config)

	if title, ok := flags["title"].(string); ok && title != "" {
		result.Render.Title = title
	}

	if color, ok := flags["color"].(string); ok && color != "" {
		result.Render.BaseColor = color
	}

	if mode, ok := flags["mode"].(string); ok && mode != "" {
		result.Render.Mode = mode
	}

	if lang, ok := flags["lang"].(string); ok && lang != "" {
		result.Render.Language = lang
	}

	if engine, ok := flags["highlight"].(string); ok && engine != "" {
		result.Highlight.Engine = engine
	}

	if style, ok := flags["style"].(string); ok && style != "" {
		result.Highlight.Style = style
	}

	if noSidecar, ok := flags["no-sidecar"].(bool); ok && noSidecar {
		off := false
		result.Output.Sidecar = &off
	}

	if verbose, ok := flags["verbose"].(bool); ok && verbose {
		result.Logging.Verbose = true
		result.Logging.Level = string(entities.LogLevelDebug)
	}

	return result
}

// ApplyEnvVars applies environment variable overrides to a configuration
func (m *ConfigMerger) ApplyEnvVars(config *entities.Config) *entities.Config {
	result := deepCopy(config)

	if title := os.Getenv("PREZ_TITLE"); title != "" {
		result.Render.Title = title
	}

	if color := os.Getenv("PREZ_BASE_COLOR"); color != "" {
		result.Render.BaseColor = color
	}

	if mode := os.Getenv("PREZ_MODE"); mode != "" {
		result.Render.Mode = mode
	}

	if lang := os.Getenv("PREZ_LANG"); lang != "" {
		result.Render.Language = lang
	}

	if engine := os.Getenv("PREZ_HIGHLIGHT"); engine != "" {
		result.Highlight.Engine = engine
	}

	if style := os.Getenv("PREZ_HIGHLIGHT_STYLE"); style != "" {
		result.Highlight.Style = style
	}

	if sidecarStr := os.Getenv("PREZ_SIDECAR"); sidecarStr != "" {
		if sidecar, err := strconv.ParseBool(sidecarStr); err == nil {
			result.Output.Sidecar = &sidecar
		}
	}

	if intervalStr := os.Getenv("PREZ_WATCH_INTERVAL"); intervalStr != "" {
		if interval, err := strconv.Atoi(intervalStr); err == nil && interval > 0 {
			result.Watcher.IntervalMs = interval
		}
	}

	if debounceStr := os.Getenv("PREZ_WATCH_DEBOUNCE"); debounceStr != "" {
		if debounce, err := strconv.Atoi(debounceStr); err == nil && debounce >= 0 {
			result.Watcher.DebounceMs = debounce
		}
	}

	if level := os.Getenv("PREZ_LOG_LEVEL"); level != "" {
		result.Logging.Level = level
	}

	if jsonStr := os.Getenv("PREZ_LOG_JSON"); jsonStr != "" {
		if jsonFormat, err := strconv.ParseBool(jsonStr); err == nil {
			result.Logging.JSONFormat = jsonFormat
		}
	}

	if file := os.Getenv("PREZ_LOG_FILE"); file != "" {
		result.Logging.File = file
	}

	return result
}

// mergeInto merges source configuration into target configuration
func (m *ConfigMerger) mergeInto(target, source *entities.Config) {
	// Render config
	if source.Render.Title != "" {
		target.Render.Title = source.Render.Title
	}
	if source.Render.BaseColor != "" {
		target.Render.BaseColor = source.Render.BaseColor
	}
	if source.Render.Mode != "" {
		target.Render.Mode = source.Render.Mode
	}
	if source.Render.Language != "" {
		target.Render.Language = source.Render.Language
	}

	// Highlight config
	if source.Highlight.Engine != "" {
		target.Highlight.Engine = source.Highlight.Engine
	}
	if source.Highlight.Style != "" {
		target.Highlight.Style = source.Highlight.Style
	}

	// Output config: nil means the file did not mention it
	if source.Output.Sidecar != nil {
		v := *source.Output.Sidecar
		target.Output.Sidecar = &v
	}

	// Watcher config
	if source.Watcher.IntervalMs != 0 {
		target.Watcher.IntervalMs = source.Watcher.IntervalMs
	}
	if source.Watcher.DebounceMs != 0 {
		target.Watcher.DebounceMs = source.Watcher.DebounceMs
	}

	// Logging config. Booleans can only be switched on by a later layer.
	if source.Logging.Level != "" {
		target.Logging.Level = source.Logging.Level
	}
	if source.Logging.Verbose {
		target.Logging.Verbose = true
	}
	if source.Logging.JSONFormat {
		target.Logging.JSONFormat = true
	}
	if source.Logging.File != "" {
		target.Logging.File = source.Logging.File
	}
}

// deepCopy creates a deep copy of a configuration
func deepCopy(src *entities.Config) *entities.Config {
	if src == nil {
		return nil
	}

	dst := *src
	if src.Output.Sidecar != nil {
		v := *src.Output.Sidecar
		dst.Output.Sidecar = &v
	}

	return &dst
}

// Ensure ConfigMerger implements ports.ConfigMerger
var _ ports.ConfigMerger = (*ConfigMerger)(nil)
