// Package observability wires logging, metrics, and tracing.
package observability

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// InitLogger configures the global zerolog logger. Production uses JSON on
// stdout; any other environment gets the human-readable console writer.
func InitLogger(level, environment, instanceID string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var logger zerolog.Logger
	if environment == "production" {
		logger = zerolog.New(os.Stdout)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	logger = logger.Level(parseLevel(level)).With().
		Timestamp().
		Str("service", "nuvei-gateway").
		Str("instance_id", instanceID).
		Logger()

	zerolog.DefaultContextLogger = &logger
	return logger
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
