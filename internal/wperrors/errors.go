// Package wperrors defines the five error kinds the wall planner can
// surface: EmptyInput and InvalidCase are expected, non-fatal conditions;
// Spillover is always recoverable by Phase 5B; Violation is reported but
// never blocks placement output; Internal is the only fatal kind.
package wperrors

import (
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/xerrors"
)

// Kind classifies a diagnostic or error raised during a solve.
type Kind int

const (
	EmptyInput Kind = iota
	InvalidCase
	Spillover
	Violation
	Internal
)

func (k Kind) String() string {
	switch k {
	case EmptyInput:
		return "EmptyInput"
	case InvalidCase:
		return "InvalidCase"
	case Spillover:
		return "Spillover"
	case Violation:
		return "Violation"
	case Internal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Diagnostic is a single non-fatal note surfaced to the caller: an empty
// input, a skipped case, a spillover, or a validation violation. Merges and
// absorptions are logged, not reported as diagnostics. Diagnostics never
// alter the solve's output.
type Diagnostic struct {
	Kind    Kind
	Phase   string
	Message string
	CaseID  string
	WallID  string
}

// Error implements the error interface so a Diagnostic can be passed
// directly to Violations.Add.
func (d Diagnostic) Error() string {
	return d.String()
}

func (d Diagnostic) String() string {
	loc := ""
	if d.CaseID != "" {
		loc = fmt.Sprintf(" case=%s", d.CaseID)
	}
	if d.WallID != "" {
		loc += fmt.Sprintf(" wall=%s", d.WallID)
	}
	return fmt.Sprintf("[%s] %s:%s %s", d.Kind, d.Phase, loc, d.Message)
}

// Internalf builds a fatal Internal error carrying a source frame, for
// algorithmic invariants that must never be violated (e.g. a negative gap
// computed in gap-fill). Unlike Diagnostic, an Internal error aborts the
// solve.
func Internalf(phase, format string, args ...interface{}) error {
	return xerrors.Errorf("wallplanner: internal invariant broken in phase %s: %w", phase, xerrors.Errorf(format, args...))
}

// Violations accumulates validator findings into a single combined error
// via multierr, so a caller can inspect every violation rather than only
// the first. The combined error is informational: solve() still returns
// its placements regardless of whether Violations returns nil.
type Violations struct {
	err error
}

// Add appends a violation. A nil err is a no-op.
func (v *Violations) Add(err error) {
	v.err = multierr.Append(v.err, err)
}

// Err returns the combined violation error, or nil if none were added.
func (v *Violations) Err() error {
	return v.err
}

// Errors returns the individual violation errors in the order they were
// added.
func (v *Violations) Errors() []error {
	return multierr.Errors(v.err)
}
