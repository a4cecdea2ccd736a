package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel parses a level name, case-insensitively. An empty name means info.
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %s:\n\t%w", level, err)
	}

	return parsed, nil
}

// New builds a console logger writing to stderr. An invalid level falls back to info.
func New(level string) *zerolog.Logger {
	return NewWithWriter(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}, level)
}

// NewWithWriter is like New but writes JSON lines to writer.
func NewWithWriter(writer io.Writer, level string) *zerolog.Logger {
	parsed, err := ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	logger := zerolog.New(writer).
		Level(parsed).
		With().
		Timestamp().
		Caller().
		Logger()

	return &logger
}
