package wpplanner

import "github.com/flightcase/wallplanner/internal/wpcore"

// orphanPool is a group's leftover, not-yet-columned cases. Its
// width/depth/rotation start equal to the owning group's Phase-0 resolved
// orientation, but Phase 3B may re-resolve them under the depth-compatibility
// objective — only for cases still in this pool, never retroactively
// changing columns already built in Phase 2.
type orphanPool struct {
	it        *item
	dept      string
	width     float64
	depth     float64
	height    float64
	stackable bool
	maxStack  int
	rotation  int
}

func newOrphanPool(it *item) *orphanPool {
	g := it.group
	return &orphanPool{
		it:        it,
		dept:      g.Dept,
		width:     g.Width,
		depth:     g.Depth,
		height:    g.Height,
		stackable: g.Stackable,
		maxStack:  g.MaxStack,
		rotation:  g.Rotation,
	}
}

func (p *orphanPool) groupTag() string {
	return p.it.group.Tag
}

func (p *orphanPool) remaining() int {
	return p.it.remaining()
}

// takeColumn consumes one column's worth of cases (min(maxStack,
// remaining)) from the pool at the given x-offset.
func (p *orphanPool) takeColumn(xOff float64) wpcore.Column {
	n := p.maxStack
	if p.remaining() < n {
		n = p.remaining()
	}
	cases := p.it.take(n)
	return wpcore.Column{
		GroupTag:   p.groupTag(),
		Dept:       p.dept,
		Width:      p.width,
		Depth:      p.depth,
		Height:     p.height,
		StackCount: len(cases),
		StackedH:   p.height * float64(len(cases)),
		Rotation:   p.rotation,
		XOff:       xOff,
		Cases:      cases,
	}
}

// drainResidualColumns consumes every case still sitting in a pool once
// Phase 3B's two clustering passes are done with it. A pool can be left
// with remaining cases when no cluster it was placed in ever has room for
// even its first column (e.g. a case wider than the truck with rotation
// disallowed, where every width check in buildWallsFromCluster fails from
// the very first attempt) -- spec §4.8 requires Phase 3D to fold "any
// residual pool cases" into its flat column list rather than let them sit
// unconsumed forever, so every case either lands in a wall or surfaces as a
// spillover in Phase 5.
func drainResidualColumns(pools []*orphanPool) []wpcore.Column {
	var out []wpcore.Column
	for _, p := range pools {
		for p.remaining() > 0 {
			out = append(out, p.takeColumn(0))
		}
	}
	return out
}

// buildOrphanPools collects a pool for every non-floor group with leftover
// cases, in item (insertion) order.
func buildOrphanPools(items []*item) []*orphanPool {
	var pools []*orphanPool
	for _, it := range items {
		if it.group.IsFloor {
			continue
		}
		if it.remaining() > 0 {
			pools = append(pools, newOrphanPool(it))
		}
	}
	return pools
}

func wallDeptTags(w *wpcore.Wall) []string {
	return w.DeptTags
}

func addDeptTag(w *wpcore.Wall, dept string) {
	for _, d := range w.DeptTags {
		if d == dept {
			return
		}
	}
	w.DeptTags = append(w.DeptTags, dept)
}

// majorityWallDept returns the department tag appearing on the most
// columns of a wall, ties broken by first appearance.
func majorityWallDept(w *wpcore.Wall) string {
	counts := wpcore.NewOrderedMap[string, int]()
	for _, c := range w.Columns {
		n, _ := counts.Get(c.Dept)
		counts.Set(c.Dept, n+1)
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

func wallFillRatio(w *wpcore.Wall, truckWidth float64) float64 {
	if truckWidth <= 0 {
		return 0
	}
	r := w.WidthFill / truckWidth
	if r > 1.0 {
		r = 1.0
	}
	return r
}
