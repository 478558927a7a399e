package wpplanner

import (
	"context"
	"math"
	"sort"

	"github.com/flightcase/wallplanner/internal/wpcore"
	"github.com/flightcase/wallplanner/internal/wplog"
)

// weakWallAbsorption is Phase 3C: any orphan wall under WP_ABSORB_THRESH is
// dissolved column-by-column into the first compatible, stronger target
// (a full wall or a stronger orphan wall). Columns that find no home are
// returned as leftover, to be handled by Phase 3D.
func weakWallAbsorption(ctx context.Context, fullWalls, orphanWalls []*wpcore.Wall, truckWidth float64, lg *wplog.Logger) (strong []*wpcore.Wall, leftover []wpcore.Column) {
	var weak []*wpcore.Wall
	for _, w := range orphanWalls {
		if wallFillRatio(w, truckWidth) < WPAbsorbThresh {
			weak = append(weak, w)
		} else {
			strong = append(strong, w)
		}
	}

	var targets []*wpcore.Wall
	targets = append(targets, fullWalls...)
	targets = append(targets, strong...)

	for _, w := range weak {
		for _, col := range w.Columns {
			absorbed := false
			for _, t := range targets {
				if math.Abs(t.Depth-col.Depth) > WPDepthRelaxed {
					continue
				}
				if t.WidthFill+col.Width > truckWidth+widthTolerance {
					continue
				}
				addColumnToWall(t, col, t.WidthFill)
				t.Reliability = wpcore.Demote(t.Reliability, wpcore.OrphanMixed)
				lg.Action(ctx, "weak_wall_absorption", "absorbed column from weak wall into stronger target")
				absorbed = true
				break
			}
			if !absorbed {
				leftover = append(leftover, col)
			}
		}
	}
	return strong, leftover
}

// addColumnToWall appends col to wall at the given xOff, updating the
// wall's aggregate fields.
func addColumnToWall(wall *wpcore.Wall, col wpcore.Column, xOff float64) {
	col.XOff = xOff
	wall.Columns = append(wall.Columns, col)
	wall.WidthFill += col.Width
	if col.StackedH > wall.MaxHeight {
		wall.MaxHeight = col.StackedH
	}
	if col.Depth > wall.Depth {
		wall.Depth = col.Depth
	}
	addDeptTag(wall, col.Dept)
}

// columnRebuild is Phase 3D: when at least two orphan walls remain under
// WP_MIN_FILL (or leftover columns from Phase 3C have no wall at all), the
// weak walls and leftover columns are decomposed into a flat column list
// and rebuilt greedily by the weighted score from spec §4.8.
func columnRebuild(orphanWalls []*wpcore.Wall, leftoverColumns []wpcore.Column, truckWidth, truckHeight float64) []*wpcore.Wall {
	var weak, strong []*wpcore.Wall
	for _, w := range orphanWalls {
		if wallFillRatio(w, truckWidth) < WPMinFill {
			weak = append(weak, w)
		} else {
			strong = append(strong, w)
		}
	}

	if len(weak) < 2 && len(leftoverColumns) == 0 {
		return orphanWalls
	}

	var flat []wpcore.Column
	for _, w := range weak {
		flat = append(flat, w.Columns...)
	}
	flat = append(flat, leftoverColumns...)
	sort.SliceStable(flat, func(i, j int) bool { return flat[i].Width > flat[j].Width })

	var rebuilt []*wpcore.Wall
	for len(flat) > 0 {
		anchor := flat[0]
		flat = flat[1:]

		wall := &wpcore.Wall{}
		addColumnToWall(wall, anchor, 0)
		minDepth, maxDepth := anchor.Depth, anchor.Depth

		for {
			bestIdx := -1
			bestScore := math.Inf(-1)
			for idx, c := range flat {
				if wall.WidthFill+c.Width > truckWidth+widthTolerance {
					continue
				}
				newMax := math.Max(maxDepth, c.Depth)
				newMin := math.Min(minDepth, c.Depth)
				depthDelta := newMax - newMin
				if depthDelta > WPDepthRelaxed {
					continue
				}
				newFillRatio := math.Min((wall.WidthFill+c.Width)/truckWidth, 1.0)
				sameDeptBonus := 0.0
				if c.Dept == majorityWallDept(wall) {
					sameDeptBonus = 1.0
				}
				heightTerm := 1.0
				if truckHeight > 0 {
					heightTerm = 1 - math.Abs(wall.MaxHeight-c.StackedH)/truckHeight
				}
				score := 0.60*newFillRatio +
					0.25*(1-depthDelta/WPDepthRelaxed) +
					0.10*heightTerm +
					0.05*sameDeptBonus
				if score > bestScore {
					bestScore = score
					bestIdx = idx
				}
			}
			if bestIdx < 0 {
				break
			}
			chosen := flat[bestIdx]
			flat = append(flat[:bestIdx], flat[bestIdx+1:]...)
			addColumnToWall(wall, chosen, wall.WidthFill)
			if chosen.Depth > maxDepth {
				maxDepth = chosen.Depth
			}
			if chosen.Depth < minDepth {
				minDepth = chosen.Depth
			}
		}
		wall.Depth = maxDepth
		wall.Reliability = classifyRebuildReliability(wall)
		rebuilt = append(rebuilt, wall)
	}

	out := append([]*wpcore.Wall{}, strong...)
	out = append(out, rebuilt...)
	return out
}

// classifyRebuildReliability: a rebuilt wall is ORPHAN_SAME_DEPT if every
// column shares a group or every column shares a department, else
// ORPHAN_MIXED.
func classifyRebuildReliability(wall *wpcore.Wall) wpcore.Reliability {
	singleGroup, singleDept := true, true
	var group, dept string
	for i, c := range wall.Columns {
		if i == 0 {
			group, dept = c.GroupTag, c.Dept
			continue
		}
		if c.GroupTag != group {
			singleGroup = false
		}
		if c.Dept != dept {
			singleDept = false
		}
	}
	if singleGroup || singleDept {
		return wpcore.OrphanSameDept
	}
	return wpcore.OrphanMixed
}
