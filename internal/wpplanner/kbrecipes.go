package wpplanner

import "github.com/flightcase/wallplanner/internal/wpcore"

// applyKBRecipes is Phase 3A: matching precomputed multi-group wall
// templates against the remaining orphan pools. The matching algorithm
// itself was never specified upstream; the universal mode always calls
// this with an empty pattern set, in which case it is a no-op by
// definition. It is still called unconditionally (rather than skipped when
// kbPatterns is empty) so that the "hook exists, behavior unspecified when
// non-empty" contract stays visible in the call graph instead of being
// erased by a guard clause. Per spec, behavior is unspecified when
// kbPatterns is non-empty; this implementation treats any pattern as
// unmatched and returns the pools untouched.
func applyKBRecipes(pools []*orphanPool, patterns []wpcore.KBPattern) []*wpcore.Wall {
	_ = patterns
	return nil
}
