package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/danielroe/directus-typegen/internal/config"
	"github.com/oklog/ulid/v2"
)

// newLogger creates the logger of one run. Every record carries the run id.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf(`invalid log level "%s": %w`, cfg.LogLevel, err)
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With("run", ulid.Make().String()), nil
}
