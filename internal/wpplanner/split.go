package wpplanner

import (
	"fmt"

	"github.com/flightcase/wallplanner/internal/wpcore"
)

type dimSignature struct {
	w, d, h   float64
	stackable bool
	maxStack  int
	isFloor   bool
}

// splitGroups is Phase 0: bucket cases by group tag, then by dimension and
// stacking-policy signature, so that every resulting Group satisfies the
// foundational invariant that all of its cases are dimensionally and
// policy-uniform. A tag that yields more than one bucket gets a synthetic
// suffixed name per bucket; a tag with a single bucket keeps its original
// name.
func splitGroups(cases []wpcore.Case, truckWidth float64) []*wpcore.Group {
	byTag := wpcore.NewOrderedMap[string, []wpcore.Case]()
	for _, c := range cases {
		tag := c.Group
		if tag == "" {
			tag = c.Name
		}
		existing, _ := byTag.Get(tag)
		byTag.Set(tag, append(existing, c))
	}

	var groups []*wpcore.Group
	for _, tag := range byTag.Keys() {
		members, _ := byTag.Get(tag)
		buckets := wpcore.NewOrderedMap[dimSignature, []wpcore.Case]()
		for _, c := range members {
			sig := dimSignature{c.Width, c.Depth, c.Height, c.Stackable, effectiveMaxStack(c), c.IsFloor}
			existing, _ := buckets.Get(sig)
			buckets.Set(sig, append(existing, c))
		}

		multi := buckets.Len() > 1
		for _, sig := range buckets.Keys() {
			bucketCases, _ := buckets.Get(sig)
			name := tag
			if multi {
				name = wpcore.SyntheticGroupTag(tag, sig.w, sig.d, sig.h)
			}
			groups = append(groups, buildGroup(name, tag, sig, bucketCases, truckWidth))
		}
	}
	return groups
}

func effectiveMaxStack(c wpcore.Case) int {
	if !c.Stackable {
		return 1
	}
	if c.MaxStack <= 0 {
		return 1
	}
	return c.MaxStack
}

func buildGroup(name, originalTag string, sig dimSignature, members []wpcore.Case, truckWidth float64) *wpcore.Group {
	dept := majorityDept(members)
	allowRotation := true
	for _, c := range members {
		allowRotation = allowRotation && c.AllowRotation
	}
	o := resolveOrientation(sig.w, sig.d, truckWidth, allowRotation)
	return &wpcore.Group{
		Tag:         name,
		OriginalTag: originalTag,
		Width:       o.Width,
		Depth:       o.Depth,
		Height:      sig.h,
		Rotation:    o.Rotation,
		Stackable:   sig.stackable,
		MaxStack:    sig.maxStack,
		IsFloor:     sig.isFloor,
		Dept:        dept,
		Cases:       members,
	}
}

func majorityDept(cases []wpcore.Case) string {
	counts := wpcore.NewOrderedMap[string, int]()
	for _, c := range cases {
		dept := c.Dept
		if dept == "" {
			dept = "GENERAL"
		}
		n, _ := counts.Get(dept)
		counts.Set(dept, n+1)
	}
	best := ""
	bestN := -1
	for _, k := range counts.Keys() {
		n, _ := counts.Get(k)
		if n > bestN {
			best = k
			bestN = n
		}
	}
	return best
}

func groupLabel(g *wpcore.Group) string {
	return fmt.Sprintf("%s/%s", g.Dept, wpcore.BaseGroupTag(g.Tag))
}
