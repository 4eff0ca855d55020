// Package logutil carries a zerolog logger through context values so that
// background work (tasks, schedulers) logs with the fields of whoever
// started it.
package logutil

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type key byte

var loggerKey = key(1)

// Setup configures the global logger for the process.
func Setup(service string) zerolog.Logger {
	logger := zerolog.New(os.Stderr).With().
		Timestamp().
		Str("service", service).
		Logger()
	log.Logger = logger
	return logger
}

func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func GetOrDefault(ctx context.Context) zerolog.Logger {
	v := ctx.Value(loggerKey)
	if v == nil {
		return log.Logger
	}
	return v.(zerolog.Logger)
}
