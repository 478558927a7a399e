package wpplanner

import (
	"context"
	"math"
	"sort"

	"github.com/flightcase/wallplanner/internal/wpcore"
	"github.com/flightcase/wallplanner/internal/wplog"
)

// orphanFFD is Phase 3B: rotation-aware, depth-grouped first-fit-decreasing
// across departments. It re-resolves each remaining pool's orientation
// under the depth-compatibility objective, clusters pools by depth within
// WP_DEPTH_STRICT per department (pass 1), then relaxes to WP_DEPTH_RELAXED
// across all departments for whatever remains (pass 2), and finally merges
// weak resulting walls. Pools that still have remaining cases after both
// passes (e.g. a case wider than the truck with rotation disallowed) are
// left untouched for the caller to drain via drainResidualColumns -- no
// column in this function is ever silently dropped.
func orphanFFD(ctx context.Context, pools []*orphanPool, truckWidth float64, lg *wplog.Logger) []*wpcore.Wall {
	reResolvePoolOrientations(pools, truckWidth)

	var built []*wpcore.Wall

	byDept := wpcore.NewOrderedMap[string, []*orphanPool]()
	for _, p := range pools {
		if p.remaining() <= 0 {
			continue
		}
		existing, _ := byDept.Get(p.dept)
		byDept.Set(p.dept, append(existing, p))
	}
	for _, dept := range byDept.Keys() {
		deptPools, _ := byDept.Get(dept)
		for _, cluster := range clusterByDepth(deptPools, WPDepthStrict) {
			built = append(built, buildWallsFromCluster(cluster, truckWidth, wpcore.OrphanSameDept)...)
		}
	}

	var remaining []*orphanPool
	for _, p := range pools {
		if p.remaining() > 0 {
			remaining = append(remaining, p)
		}
	}
	for _, cluster := range clusterByDepth(remaining, WPDepthRelaxed) {
		built = append(built, buildWallsFromCluster(cluster, truckWidth, wpcore.OrphanMixed)...)
	}

	built = mergeWeakWalls(ctx, built, truckWidth, true, lg)
	built = mergeWeakWalls(ctx, built, truckWidth, false, lg)

	return built
}

// reResolvePoolOrientations re-runs the rotation oracle for every remaining
// pool under the depth-compatibility objective (§4.1), comparing each
// pool's candidate orientations against every OTHER remaining pool's depth,
// weighted by that pool's remaining case count.
func reResolvePoolOrientations(pools []*orphanPool, truckWidth float64) {
	for i, p := range pools {
		if p.remaining() <= 0 {
			continue
		}
		var others []depthWeight
		for j, q := range pools {
			if i == j || q.remaining() <= 0 {
				continue
			}
			others = append(others, depthWeight{depth: q.depth, count: q.remaining()})
		}
		allowRotation := true
		for _, c := range p.it.group.Cases {
			allowRotation = allowRotation && c.AllowRotation
		}
		o := resolveOrientationDepthCompat(p.width, p.depth, truckWidth, allowRotation, others)
		p.width, p.depth, p.rotation = o.Width, o.Depth, o.Rotation
	}
}

// clusterByDepth transitively clusters pools whose depths lie within
// threshold of a neighbor's depth in sorted order (a 1D chain-clustering:
// depth sorted ascending, a new cluster starts whenever the gap to the
// previous pool's depth exceeds threshold).
func clusterByDepth(pools []*orphanPool, threshold float64) [][]*orphanPool {
	sorted := make([]*orphanPool, len(pools))
	copy(sorted, pools)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].depth < sorted[j].depth })

	var clusters [][]*orphanPool
	var current []*orphanPool
	for i, p := range sorted {
		if i == 0 || p.depth-sorted[i-1].depth <= threshold {
			current = append(current, p)
		} else {
			clusters = append(clusters, current)
			current = []*orphanPool{p}
		}
	}
	if len(current) > 0 {
		clusters = append(clusters, current)
	}
	return clusters
}

// buildWallsFromCluster sorts a depth-cluster by descending width and
// greedily builds walls: a single forward pass over the sorted pools per
// wall, appending whatever columns still fit, then closing the wall once
// nothing more fits.
func buildWallsFromCluster(cluster []*orphanPool, truckWidth float64, reliability wpcore.Reliability) []*wpcore.Wall {
	sorted := make([]*orphanPool, len(cluster))
	copy(sorted, cluster)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].width > sorted[j].width })

	var walls []*wpcore.Wall
	for anyRemaining(sorted) {
		wall := &wpcore.Wall{Reliability: reliability}
		for _, p := range sorted {
			for p.remaining() > 0 {
				gap := truckWidth - wall.WidthFill
				if gap < p.width-widthTolerance {
					break
				}
				col := p.takeColumn(wall.WidthFill)
				wall.Columns = append(wall.Columns, col)
				wall.WidthFill += col.Width
				if col.StackedH > wall.MaxHeight {
					wall.MaxHeight = col.StackedH
				}
				if col.Depth > wall.Depth {
					wall.Depth = col.Depth
				}
				addDeptTag(wall, p.dept)
			}
		}
		if len(wall.Columns) == 0 {
			break // nothing fits at all (e.g. a column wider than the truck)
		}
		walls = append(walls, wall)
	}
	return walls
}

func anyRemaining(pools []*orphanPool) bool {
	for _, p := range pools {
		if p.remaining() > 0 {
			return true
		}
	}
	return false
}

// mergeWeakWalls accretes walls under WP_MIN_FILL into one another when
// their depths are compatible and their combined width still fits. sameDept
// restricts the search to walls sharing a majority department (pass 1);
// otherwise any pair is eligible (pass 2).
func mergeWeakWalls(ctx context.Context, walls []*wpcore.Wall, truckWidth float64, sameDept bool, lg *wplog.Logger) []*wpcore.Wall {
	active := make([]*wpcore.Wall, len(walls))
	copy(active, walls)

	for i := 0; i < len(active); i++ {
		for wallFillRatio(active[i], truckWidth) < WPMinFill {
			target := -1
			for j := i + 1; j < len(active); j++ {
				if sameDept && majorityWallDept(active[j]) != majorityWallDept(active[i]) {
					continue
				}
				if math.Abs(active[j].Depth-active[i].Depth) > WPDepthRelaxed {
					continue
				}
				if active[i].WidthFill+active[j].WidthFill > truckWidth+widthTolerance {
					continue
				}
				target = j
				break
			}
			if target < 0 {
				break
			}
			absorbWall(active[i], active[target])
			lg.Action(ctx, "orphan_ffd", "merged weak wall into target wall")
			active = append(active[:target], active[target+1:]...)
		}
	}
	return active
}

// absorbWall appends src's columns onto dst, shifting each column's XOff by
// dst's pre-merge widthFill. The merged wall takes the worse of the two
// reliability tiers, and at least ORPHAN_MIXED once it spans more than one
// department.
func absorbWall(dst, src *wpcore.Wall) {
	base := dst.WidthFill
	for _, c := range src.Columns {
		c.XOff += base
		dst.Columns = append(dst.Columns, c)
	}
	dst.WidthFill += src.WidthFill
	if src.MaxHeight > dst.MaxHeight {
		dst.MaxHeight = src.MaxHeight
	}
	if src.Depth > dst.Depth {
		dst.Depth = src.Depth
	}
	for _, d := range src.DeptTags {
		addDeptTag(dst, d)
	}
	dst.Reliability = wpcore.Demote(dst.Reliability, src.Reliability)
	if len(dst.DeptTags) > 1 {
		dst.Reliability = wpcore.Demote(dst.Reliability, wpcore.OrphanMixed)
	}
}
