package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a thin wrapper around slog that carries the component, file and
// function it was derived for. Err/Error variants both log and return an
// error so call sites can `return log.Err(...)`.
type Logger struct {
	attrs []any
}

func New(name string) Logger {
	return Logger{attrs: []any{"package", name}}
}

// Setup installs the process-wide default handler.
func Setup(w io.Writer, level, format string) {
	if w == nil {
		w = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Handlers are resolved on every call so loggers built before Setup still
// pick up the configured default.
func (l Logger) logger() *slog.Logger {
	return slog.Default().With(l.attrs...)
}

func (l Logger) With(args ...any) Logger {
	attrs := make([]any, 0, len(l.attrs)+len(args))
	attrs = append(attrs, l.attrs...)
	return Logger{attrs: append(attrs, args...)}
}

func (l Logger) File(name string) Logger {
	return l.With("file", name)
}

func (l Logger) Function(name string) Logger {
	return l.With("function", name)
}

func (l Logger) Debug(msg string, args ...any) {
	l.logger().Debug(msg, args...)
}

func (l Logger) Info(msg string, args ...any) {
	l.logger().Info(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.logger().Warn(msg, args...)
}

// Er logs err without returning it.
func (l Logger) Er(msg string, err error, args ...any) {
	l.logger().Error(msg, append([]any{"error", err}, args...)...)
}

// Err logs err and returns it wrapped with msg.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.Er(msg, err, args...)
	if err == nil {
		return errors.New(msg)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs msg and returns it as a new error.
func (l Logger) Error(msg string, args ...any) error {
	l.logger().Error(msg, args...)
	return errors.New(msg)
}

func (l Logger) ErMsg(msg string) {
	l.logger().Error(msg)
}

func (l Logger) ErrMsg(msg string) error {
	l.ErMsg(msg)
	return errors.New(msg)
}

func (l Logger) Enabled(ctx context.Context, level slog.Level) bool {
	return l.logger().Enabled(ctx, level)
}
