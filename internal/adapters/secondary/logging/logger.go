package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"

	"github.com/fallinov/prez-app/internal/domain/entities"
)

// Level converts a configured log level to a slog level. Verbose forces debug.
func Level(cfg entities.LoggingConfig) slog.Level {
	if cfg.Verbose {
		return slog.LevelDebug
	}

	switch cfg.GetLevel() {
	case entities.LogLevelDebug:
		return slog.LevelDebug
	case entities.LogLevelWarn:
		return slog.LevelWarn
	case entities.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds the application logger. Records go to w as text or JSON; when
// cfg.File is set they are also appended to that file as JSON. The returned
// close function releases the file and is safe to call when no file is open.
func New(cfg entities.LoggingConfig, w io.Writer) (*slog.Logger, func() error, error) {
	opts := &slog.HandlerOptions{Level: Level(cfg)}

	var console slog.Handler
	if cfg.JSONFormat {
		console = slog.NewJSONHandler(w, opts)
	} else {
		console = slog.NewTextHandler(w, opts)
	}

	if cfg.File == "" {
		return slog.New(console), func() error { return nil }, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec G304 - path comes from validated config
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", cfg.File, err)
	}

	handler := slogmulti.Fanout(
		console,
		slog.NewJSONHandler(f, opts),
	)

	return slog.New(handler), f.Close, nil
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
