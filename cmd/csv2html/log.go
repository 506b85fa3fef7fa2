package main

import (
	"io"
	"log/slog"
)

// newLogger returns a text logger on w. Only warnings and errors are shown
// unless verbose is set. The converted table never goes through the logger.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
