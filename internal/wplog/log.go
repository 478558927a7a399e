// Package wplog implements the solver's diagnostic log surface: one
// structured line per phase transition and per notable action (merge,
// absorption, spillover, violation). The format is documented but not part
// of the solver's contract — see spec §6.
package wplog

import (
	"context"

	"cdr.dev/slog"
)

// Logger wraps a slog.Logger with the phase-transition vocabulary the
// solver emits. A nil *Logger is valid and discards everything, so callers
// that don't care about diagnostics (most tests) can pass one without
// constructing a sink.
type Logger struct {
	sl *slog.Logger
}

// New wraps an existing slog.Logger.
func New(sl slog.Logger) *Logger {
	return &Logger{sl: &sl}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return nil
}

// Phase logs entry into a solver phase.
func (l *Logger) Phase(ctx context.Context, name string) {
	if l == nil {
		return
	}
	l.sl.Info(ctx, "phase", slog.F("name", name))
}

// Action logs a notable in-phase event: a gap-fill append, a merge, an
// absorption, a spillover, or a rebuild decision.
func (l *Logger) Action(ctx context.Context, phase, action string, fields ...slog.Field) {
	if l == nil {
		return
	}
	all := append([]slog.Field{slog.F("phase", phase), slog.F("action", action)}, fields...)
	l.sl.Info(ctx, "action", all...)
}

// Violation logs a post-placement invariant failure.
func (l *Logger) Violation(ctx context.Context, kind, message string, fields ...slog.Field) {
	if l == nil {
		return
	}
	all := append([]slog.Field{slog.F("kind", kind), slog.F("message", message)}, fields...)
	l.sl.Warn(ctx, "violation", all...)
}
