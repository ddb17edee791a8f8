//go:build !prod

package logging

import (
	"log/slog"
	"os"
)

// Setup initializes logging for development mode.
// Logs are written to os.Stdout only; no file output.
// Returns the configured logger, a no-op close function, and any error.
func Setup(cfg *Config) (*slog.Logger, func() error, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	logger := slog.New(newHandler(os.Stdout, cfg))
	setGlobal(logger)

	return logger, func() error { return nil }, nil
}
