package wpcore

import (
	"regexp"
	"strconv"
)

// seedDeptPriority mirrors the documented auto-derivation table: known
// department tags are seeded at fixed priorities, lower meaning closer to
// the cab.
var seedDeptPriority = map[string]int{
	"LX":    1,
	"SON":   2,
	"CARP":  3,
	"VDO":   4,
	"PROPS": 5,
	"COST":  6,
	"ADM":   7,
}

// DeriveDeptPriority builds a department-priority table from a case list,
// seeding known tags and appending any unseen tag in first-appearance
// order. The returned map is only a lookup table: ranging over it does not
// follow that first-appearance order.
func DeriveDeptPriority(cases []Case, seed map[string]int) map[string]int {
	if seed == nil {
		seed = seedDeptPriority
	}
	out := make(map[string]int, len(seed))
	for k, v := range seed {
		out[k] = v
	}
	next := len(seed) + 1
	seen := NewOrderedMap[string, bool]()
	for _, c := range cases {
		dept := c.Dept
		if dept == "" {
			dept = "GENERAL"
		}
		if _, ok := out[dept]; ok {
			continue
		}
		if _, ok := seen.Get(dept); ok {
			continue
		}
		seen.Set(dept, true)
	}
	for _, dept := range seen.Keys() {
		out[dept] = next
		next++
	}
	return out
}

var groupSuffixRe = regexp.MustCompile(`\s\(\d+(?:\.\d+)?x\d+(?:\.\d+)?x\d+(?:\.\d+)?\)$`)

// BaseGroupTag strips a trailing Phase-0 synthetic suffix like
// " (31x29x36)" from a group tag, so department/priority lookups succeed
// whether called with the original tag or a split-phase synthetic one.
// This is the single sanctioned place that parses the suffix; no other
// phase should scatter its own regex for this.
func BaseGroupTag(tag string) string {
	return groupSuffixRe.ReplaceAllString(tag, "")
}

// SyntheticGroupTag builds the suffixed tag Phase 0 assigns to a
// dimensionally-split group.
func SyntheticGroupTag(base string, w, d, h float64) string {
	return base + " (" + trimFloat(w) + "x" + trimFloat(d) + "x" + trimFloat(h) + ")"
}

func trimFloat(f float64) string {
	i := int64(f)
	if float64(i) == f {
		return strconv.FormatInt(i, 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
