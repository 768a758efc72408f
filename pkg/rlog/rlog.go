// Package rlog centralizes zerolog setup the way the teacher's binaries
// do it inline: console-formatted output, RFC3339 timestamps, a single
// level parsed from configuration.
package rlog

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger for console output at the
// given level string (one of zerolog's level names; an unrecognized
// value falls back to info).
func Setup(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}
