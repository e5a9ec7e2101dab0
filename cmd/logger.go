package main

import (
	"log/slog"
	"os"
)

// newLogger returns a structured text logger writing to stderr.
func newLogger(level slog.Leveler) *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
