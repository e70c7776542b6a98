// Package logging provides structured logging using zerolog, configured
// for the coup-solver CLI rather than a request-serving API: no request
// IDs, no body truncation helpers, just a global logger and level control.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const milliTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Init configures the global zerolog logger. Level defaults to info, or
// the value of LOG_LEVEL if set. Pretty controls whether output is a
// colorized console writer (for interactive use) or structured JSON (for
// piping into log aggregation).
func Init(pretty bool) {
	zerolog.TimeFieldFormat = milliTimeFormat
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }

	level := zerolog.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer = os.Stderr
	if pretty {
		output = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: milliTimeFormat}
	}

	log.Logger = log.Output(output).With().Timestamp().Logger()
}

// Get returns the global logger instance.
func Get() zerolog.Logger {
	return log.Logger
}

// WithComponent returns a logger tagged with the given component name,
// the same sub-logger idiom the solver uses internally.
func WithComponent(name string) zerolog.Logger {
	return log.Logger.With().Str("component", name).Logger()
}
