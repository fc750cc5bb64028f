package logger

import (
	"os"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func New() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Logger()

	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := zerolog.ParseLevel(levelStr); err == nil {
			return logger.Level(level)
		}
	}

	return logger.Level(zerolog.InfoLevel)
}

var Module = fx.Provide(New)
