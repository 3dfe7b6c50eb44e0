// Package slogx provides slog attributes shared across the module.
package slogx

import (
	"log/slog"

	"github.com/casualjim/redraw/wire"
)

const (
	// KeyLoggerName is the key for the component that emitted a record.
	KeyLoggerName = "logger"
	// KeyEvent is the key for a wire event name.
	KeyEvent = "event"
)

// Error returns an attribute with key "error" holding the error message.
func Error(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// Event returns an attribute naming a wire event.
func Event(name string) slog.Attr {
	return slog.String(KeyEvent, name)
}

// Value renders a wire value with wire.Describe. The rendering is bounded,
// so it is safe to log untrusted input.
func Value(key string, v wire.Value) slog.Attr {
	return slog.String(key, wire.Describe(v))
}

// LoggerName returns an attribute for the logger name.
func LoggerName(name string) slog.Attr {
	return slog.String(KeyLoggerName, name)
}
