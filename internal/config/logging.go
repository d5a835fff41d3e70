package config

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogging configures the global zerolog logger from the logging section
func SetupLogging(cfg LoggingConfig) {
	SetupLoggingWithWriter(cfg, os.Stderr)
}

// SetupLoggingWithWriter is SetupLogging with an explicit destination (for testing)
func SetupLoggingWithWriter(cfg LoggingConfig, w io.Writer) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	if strings.EqualFold(cfg.Format, "console") {
		w = zerolog.ConsoleWriter{Out: w}
	}

	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

func parseLevel(s string) zerolog.Level {
	if s == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
