// Package diag provides the structured logging used throughout gvm64.
// It generalizes the teacher's direct fmt.Print* debug traces into a
// leveled, field-structured logger so the VM core stays usable as a
// library: silent by default, wired up by whatever embeds it.
package diag

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the structured logger type used across gvm64. It is a
// plain alias for zerolog.Logger so callers can chain zerolog's event
// builder directly (log.Error().Str(...).Msg(...)) without an
// indirection layer.
type Logger = zerolog.Logger

// Nop returns a logger that discards everything, the default posture
// for a freshly constructed Machine.
func Nop() Logger {
	return zerolog.Nop()
}

// New builds a human-readable console logger writing to w, for CLI
// and test use. level controls the minimum severity emitted.
func New(w io.Writer, level zerolog.Level) Logger {
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// Default returns a console logger writing to stderr at info level,
// the same settings `gvmtool run` builds for itself when -v is not set.
func Default() Logger {
	return New(os.Stderr, zerolog.InfoLevel)
}
