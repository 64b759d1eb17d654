package cmd

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// newLogger creates a structured logger writing human readable lines to w.
func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}

// logger is the application logger, on stderr so that it never mixes with the command output.
var logger = sync.OnceValue(func() *zerolog.Logger {
	l := newLogger(os.Stderr, LogLevel())
	return &l
})
