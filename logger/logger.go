// Package logger provides a configurable logger shared by every
// jackpot component.
//
// The root logger defined by default uses github.com/rs/zerolog with a
// console writer.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/b-wagn/jackpot/internal/debug"
	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	logger = zerolog.New(output).With().Timestamp().Logger()

	if !debug.Debug && strings.HasSuffix(os.Args[0], ".test") {
		logger = zerolog.Nop()
	}
}

// SetOutput changes the output of the global logger.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// Set allows a caller to override the global logger.
func Set(l zerolog.Logger) {
	logger = l
}

// Disable disables logging.
func Disable() {
	logger = zerolog.Nop()
}

// Logger returns the global logger shared by every component.
func Logger() *zerolog.Logger {
	return &logger
}
