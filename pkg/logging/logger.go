// Package logging provides the JSON logger shared by the physics world, the
// host glue and the sim4d command. Records carry the run ID from the context,
// and simulation values (body keys, step counts, 4D vectors) have attribute
// helpers so every component spells them the same way.
package logging

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
)

// Attribute keys used across the module.
const (
	KeyBody  = "body"
	KeyStep  = "step"
	KeyRunID = "run_id"
)

// LevelEnvVar names the environment variable that selects the log level.
const LevelEnvVar = "PHYSICS4D_LOG_LEVEL"

// Logger wraps slog.Logger. All methods are safe on a nil *Logger, so
// components can hold an optional logger without guarding every call.
type Logger struct {
	*slog.Logger
}

// NewLogger returns a JSON logger on stdout at the level named by
// PHYSICS4D_LOG_LEVEL (DEBUG, INFO, WARN or ERROR; INFO otherwise).
func NewLogger() *Logger {
	return NewLoggerWithWriter(os.Stdout, ParseLevel(os.Getenv(LevelEnvVar)))
}

// NewLoggerWithWriter returns a JSON logger writing to w at level.
func NewLoggerWithWriter(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceNonFinite,
	})
	return &Logger{slog.New(handler)}
}

// ParseLevel maps a level name to a slog level, case-insensitively.
// Unknown names yield INFO.
func ParseLevel(name string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a logger that adds args to every record, typically
// "component", name. With on a nil logger returns nil.
func (l *Logger) With(args ...any) *Logger {
	if l == nil || l.Logger == nil {
		return nil
	}
	return &Logger{l.Logger.With(args...)}
}

// DebugEnabled reports whether debug records would be written. Callers use it
// to skip building attributes on hot paths.
func (l *Logger) DebugEnabled(ctx context.Context) bool {
	return l != nil && l.Logger != nil && l.Enabled(ctx, slog.LevelDebug)
}

// LogWithContext logs msg at level, adding the run ID from ctx when present.
func (l *Logger) LogWithContext(ctx context.Context, level slog.Level, msg string, args ...any) {
	if l == nil || l.Logger == nil {
		return
	}
	if id := RunID(ctx); id != "" {
		args = append(args, KeyRunID, id)
	}
	l.Log(ctx, level, msg, args...)
}

// Info logs an informational message.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelInfo, msg, args...)
}

// Warn logs a warning.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelWarn, msg, args...)
}

// Error logs msg with err under the "error" key.
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.LogWithContext(ctx, slog.LevelError, msg, args...)
}

// Debug logs a debug message.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelDebug, msg, args...)
}

// Body returns the attribute for a body key.
func Body(key fmt.Stringer) slog.Attr {
	return slog.String(KeyBody, key.String())
}

// Step returns the attribute for a world step count.
func Step(n uint64) slog.Attr {
	return slog.Uint64(KeyStep, n)
}

// Vec returns v as a group with x, y, z and w members.
func Vec(name string, v [4]float32) slog.Attr {
	return slog.Group(name,
		slog.Float64("x", float64(v[0])),
		slog.Float64("y", float64(v[1])),
		slog.Float64("z", float64(v[2])),
		slog.Float64("w", float64(v[3])),
	)
}

type runIDKey struct{}

// WithRunID stores a run ID in ctx, generating one when id is empty.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = NewRunID()
	}
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunID returns the run ID stored in ctx, or "".
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey{}).(string); ok {
		return id
	}
	return ""
}

// NewRunID returns 16 random hex characters.
func NewRunID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// replaceNonFinite renders NaN and infinite floats as strings, which the JSON
// handler would otherwise fail to encode.
func replaceNonFinite(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindFloat64 {
		return a
	}
	f := a.Value.Float64()
	switch {
	case math.IsNaN(f):
		a.Value = slog.StringValue("NaN")
	case math.IsInf(f, 1):
		a.Value = slog.StringValue("+Inf")
	case math.IsInf(f, -1):
		a.Value = slog.StringValue("-Inf")
	}
	return a
}

// WrapError prefixes err with a formatted context message. A nil err stays nil.
func WrapError(err error, context string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		context = fmt.Sprintf(context, args...)
	}
	return fmt.Errorf("%s: %w", context, err)
}
