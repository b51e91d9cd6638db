// Package logger builds the diagnostic logger. User-facing progress is printed
// directly by the commands; this logger carries warnings and, with --verbose,
// debug detail such as resolved paths and lookup failure reasons.
package logger

import (
	"io"

	"charm.land/log/v2"
	"github.com/agentx-labs/create-discord-bot/internal/branding"
)

// New returns a logger writing to w at warn level, or debug level when
// verbose is set.
func New(w io.Writer, verbose bool) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		Prefix:          branding.CLIName(),
		ReportTimestamp: false,
		Level:           log.WarnLevel,
	})
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
