// Package logging holds the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var logger atomic.Pointer[zerolog.Logger]

func init() {
	// JSON on stderr at info level until Init says otherwise
	l := zerolog.New(os.Stderr).With().Timestamp().Logger()
	logger.Store(&l)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// Init configures the global logger. debug lowers the level to Debug and
// human switches from JSON to the console writer.
func Init(debug bool, human bool) {
	InitWriter(os.Stderr, debug, human)
}

// InitWriter is Init with an explicit destination.
func InitWriter(w io.Writer, debug bool, human bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	out := w
	if human {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	l := zerolog.New(out).With().Timestamp().Logger()
	logger.Store(&l)
}

// L returns the base logger.
func L() *zerolog.Logger {
	return logger.Load()
}

// WithPhase returns a logger with the phase field set.
func WithPhase(phase string) zerolog.Logger {
	return L().With().Str("phase", phase).Logger()
}

// WithRun returns a logger tagged with the algorithm and input size of a run.
func WithRun(algorithm string, sizeBits int) zerolog.Logger {
	return L().With().Str("algorithm", algorithm).Int("size_bits", sizeBits).Logger()
}

// SetLogger overrides the global logger, mostly for tests.
func SetLogger(l zerolog.Logger) {
	logger.Store(&l)
}
