// Package logging wires up the module's single shared slog.Logger. It
// defaults to discarding everything so importing the module as a library
// produces no output; cmd/lakectl calls Init to enable it.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// L is the package's logger. It starts out discarding all records.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures Init.
type Options struct {
	Enabled bool
	Level   slog.Level
	JSON    bool
}

// Init replaces L with a logger writing to stderr at the requested level.
// When opts.Enabled is false, L reverts to discarding output.
func Init(opts Options) {
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	if opts.JSON {
		L = slog.New(slog.NewJSONHandler(os.Stderr, handlerOpts))
	} else {
		L = slog.New(slog.NewTextHandler(os.Stderr, handlerOpts))
	}
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
