// Package logger wraps zerolog for the command line tool. Library packages
// do not log; they return errors.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger writes structured events tagged with the emitting component.
type Logger struct {
	zl zerolog.Logger
}

// New returns a logger writing JSON lines to w at the given level.
func New(w io.Writer, level zerolog.Level) *Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.DurationFieldInteger = true

	zl := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
	return &Logger{zl: zl}
}

// NewConsole returns a human readable logger on stderr.
func NewConsole(level zerolog.Level) *Logger {
	return New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}, level)
}

// ParseLevel maps a level name onto zerolog, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *Logger) Info(component, message string, fields map[string]interface{}) {
	l.emit(l.zl.Info(), component, fields).Msg(message)
}

func (l *Logger) Debug(component, message string, fields map[string]interface{}) {
	l.emit(l.zl.Debug(), component, fields).Msg(message)
}

func (l *Logger) Warning(component, message string, fields map[string]interface{}) {
	l.emit(l.zl.Warn(), component, fields).Msg(message)
}

func (l *Logger) Error(component string, err error, fields map[string]interface{}) {
	l.emit(l.zl.Error().Err(err), component, fields).Msg("operation failed")
}

func (l *Logger) emit(event *zerolog.Event, component string, fields map[string]interface{}) *zerolog.Event {
	// disabled levels hand back a nil event, whose methods are no-ops
	event = event.Str("component", component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	return event
}
