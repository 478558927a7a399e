package wpplanner

import (
	"math"

	"github.com/flightcase/wallplanner/internal/wpcore"
)

// item tracks one inventory group plus the packing geometry Phase 1
// derives from it (items-per-row) and a consumption cursor
// used by every later phase that carves columns out of the group's cases.
// A Group's Cases slice is never mutated; item.consumed is the only
// evolving state, and it is owned by this single item so the case
// ownership graph stays a forest.
type item struct {
	group    *wpcore.Group
	perRow   int
	consumed int
}

func (it *item) remaining() int {
	return len(it.group.Cases) - it.consumed
}

// take consumes up to n cases from the front of the group and returns them.
func (it *item) take(n int) []wpcore.Case {
	if n > it.remaining() {
		n = it.remaining()
	}
	if n <= 0 {
		return nil
	}
	out := it.group.Cases[it.consumed : it.consumed+n]
	it.consumed += n
	return out
}

// buildInventory is Phase 1: compute the items-per-row count for every
// Phase-0 group. Stack depth is not computed here; later phases read it
// from the group's MaxStack.
func buildInventory(groups []*wpcore.Group, truckWidth float64) []*item {
	items := make([]*item, 0, len(groups))
	for _, g := range groups {
		perRow := 0
		if g.Width > 0 {
			perRow = int(math.Floor(truckWidth / g.Width))
		}
		items = append(items, &item{group: g, perRow: perRow})
	}
	return items
}
