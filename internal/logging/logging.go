// Package logging builds the structured logger shared by the commands.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a text logger writing to stderr, and additionally to a
// rotating file when file is non-empty. The returned closer releases the file.
func New(level, file string) (*slog.Logger, io.Closer, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, nil, fmt.Errorf("logging: invalid level %q: %w", level, err)
	}

	var (
		out    io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if file != "" {
		rotating := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
		}
		out = io.MultiWriter(os.Stderr, rotating)
		closer = rotating
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler), closer, nil
}

// Discard returns a logger that drops every record. Used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
