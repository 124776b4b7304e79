package logger

import (
	"fmt"
	"log/slog"
	"os"
)

// Logger is a scoped wrapper around slog. Scope identifies the package or
// component, Function/File narrow it further so every line carries its origin.
type Logger struct {
	scope    string
	function string
	file     string
	attrs    []any
}

func New(scope string) Logger {
	return Logger{scope: scope}
}

func (l Logger) Function(function string) Logger {
	l.function = function
	return l
}

func (l Logger) File(file string) Logger {
	l.file = file
	return l
}

func (l Logger) With(args ...any) Logger {
	l.attrs = append(l.attrs, args...)
	return l
}

func (l Logger) context(args ...any) []any {
	out := []any{"scope", l.scope}
	if l.file != "" {
		out = append(out, "file", l.file)
	}
	if l.function != "" {
		out = append(out, "function", l.function)
	}
	out = append(out, l.attrs...)
	return append(out, args...)
}

func (l Logger) Debug(msg string, args ...any) {
	slog.Debug(msg, l.context(args...)...)
}

func (l Logger) Info(msg string, args ...any) {
	slog.Info(msg, l.context(args...)...)
}

func (l Logger) Warn(msg string, args ...any) {
	slog.Warn(msg, l.context(args...)...)
}

// Err logs the message with the underlying error and returns a wrapped error
// for the caller to propagate.
func (l Logger) Err(msg string, err error, args ...any) error {
	slog.Error(msg, l.context(append(args, "error", err)...)...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs the message and returns it as a new error.
func (l Logger) Error(msg string, args ...any) error {
	slog.Error(msg, l.context(args...)...)
	return fmt.Errorf("%s", msg)
}

// ErrMsg is Error without structured context arguments.
func (l Logger) ErrMsg(msg string) error {
	slog.Error(msg, l.context()...)
	return fmt.Errorf("%s", msg)
}

// Er logs an error without returning one, for paths that must not fail.
func (l Logger) Er(msg string, err error, args ...any) {
	slog.Error(msg, l.context(append(args, "error", err)...)...)
}

func (l Logger) ErMsg(msg string, args ...any) {
	slog.Error(msg, l.context(args...)...)
}

// Init installs the process-wide slog handler. Pretty text in development,
// JSON elsewhere.
func Init(environment string) {
	var handler slog.Handler
	if environment == "development" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))
}
