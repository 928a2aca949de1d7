// Package sl holds small slog attribute helpers shared by every package.
package sl

import (
	"io"
	"log/slog"
)

// Err wraps an error as a structured "error" attribute.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// Module tags log lines with the component that emitted them.
func Module(name string) slog.Attr {
	return slog.String("module", name)
}

// Discard returns a logger that writes nowhere. Used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
