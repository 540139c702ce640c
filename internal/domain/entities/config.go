package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/language"
)

// Config represents the complete application configuration
type Config struct {
	Render    RenderConfig    `toml:"render"`
	Highlight HighlightConfig `toml:"highlight"`
	Output    OutputConfig    `toml:"output"`
	Watcher   WatcherConfig   `toml:"watcher"`
	Logging   LoggingConfig   `toml:"logging"`
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Render.Validate(); err != nil {
		return fmt.Errorf("render config: %w", err)
	}

	if err := c.Highlight.Validate(); err != nil {
		return fmt.Errorf("highlight config: %w", err)
	}

	if err := c.Watcher.Validate(); err != nil {
		return fmt.Errorf("watcher config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// RenderConfig contains the defaults applied to every render call
type RenderConfig struct {
	Title     string `toml:"title"`
	BaseColor string `toml:"base_color"`
	Mode      string `toml:"mode"`
	Language  string `toml:"language"`
}

// Validate validates render configuration
func (r RenderConfig) Validate() error {
	if _, err := ParseMode(r.Mode); err != nil {
		return err
	}

	if r.BaseColor != "" && !IsHexColor(r.BaseColor) {
		return &ColorError{Field: "base_color", Value: r.BaseColor}
	}

	if r.Language != "" {
		if _, err := language.Parse(r.Language); err != nil {
			return fmt.Errorf("invalid language %q: %w", r.Language, err)
		}
	}

	return nil
}

// Highlight engines
const (
	HighlightBuiltin = "builtin"
	HighlightChroma  = "chroma"
)

// HighlightConfig selects how fenced code is coloured
type HighlightConfig struct {
	Engine string `toml:"engine"`
	Style  string `toml:"style"`
}

// Validate validates highlight configuration
func (h HighlightConfig) Validate() error {
	switch h.Engine {
	case "", HighlightBuiltin, HighlightChroma:
		return nil
	default:
		return fmt.Errorf("unknown highlight engine: %s (must be builtin or chroma)", h.Engine)
	}
}

// GetStyle returns the chroma style name with default
func (h HighlightConfig) GetStyle() string {
	if h.Style == "" {
		return "monokai"
	}
	return h.Style
}

// OutputConfig contains persistence settings
type OutputConfig struct {
	// Sidecar writes the JSON metadata file next to the HTML output. Unset means true.
	Sidecar *bool `toml:"sidecar,omitempty"`
}

// SidecarEnabled returns whether the metadata sidecar is written
func (o OutputConfig) SidecarEnabled() bool {
	return o.Sidecar == nil || *o.Sidecar
}

// WatcherConfig contains file watcher configuration
type WatcherConfig struct {
	IntervalMs int `toml:"interval_ms"`
	DebounceMs int `toml:"debounce_ms"`
}

// Validate validates watcher configuration
func (w WatcherConfig) Validate() error {
	if w.IntervalMs < 50 {
		return errors.New("watcher interval must be at least 50ms")
	}

	if w.DebounceMs < 0 {
		return errors.New("debounce time must be non-negative")
	}

	return nil
}

// GetInterval returns the watcher interval as a duration
func (w WatcherConfig) GetInterval() time.Duration {
	if w.IntervalMs <= 0 {
		return 200 * time.Millisecond
	}
	return time.Duration(w.IntervalMs) * time.Millisecond
}

// GetDebounce returns the debounce time as a duration
func (w WatcherConfig) GetDebounce() time.Duration {
	if w.DebounceMs <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(w.DebounceMs) * time.Millisecond
}

// LogLevel represents logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `toml:"level"`       // debug, info, warn, error
	Verbose    bool   `toml:"verbose"`     // Enable verbose logging
	JSONFormat bool   `toml:"json_format"` // Output logs in JSON format
	File       string `toml:"file"`        // Also log to file (optional)
}

// Validate validates logging configuration
func (l LoggingConfig) Validate() error {
	switch LogLevel(l.Level) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	case "":
		// Empty is okay, will use default
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", l.Level)
	}

	if l.File != "" {
		if !filepath.IsAbs(l.File) {
			return errors.New("log file path must be absolute")
		}

		dir := filepath.Dir(l.File)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("log file directory does not exist: %s", dir)
		}
	}

	return nil
}

// GetLevel returns the log level with default
func (l LoggingConfig) GetLevel() LogLevel {
	if l.Level == "" {
		return LogLevelInfo
	}
	return LogLevel(l.Level)
}
