package wpplanner

import (
	"context"
	"math"

	"github.com/flightcase/wallplanner/internal/wpcore"
	"github.com/flightcase/wallplanner/internal/wperrors"
	"github.com/flightcase/wallplanner/internal/wplog"
)

// gapFill is Phase 2.5: for every FULL_WALL under the gap threshold, scan
// orphan pools in listing order for same-department, compatible-depth
// candidates and greedily append their columns into the remaining gap.
func gapFill(ctx context.Context, walls []*wpcore.Wall, pools []*orphanPool, truckWidth float64, lg *wplog.Logger) error {
	for _, wall := range walls {
		if wall.Reliability != wpcore.FullWall {
			continue
		}
		if wallFillRatio(wall, truckWidth) >= WPGapThresh {
			continue
		}
		wallDept := majorityWallDept(wall)

		appended := false
		for _, pool := range pools {
			if pool.remaining() <= 0 {
				continue
			}
			if pool.dept != wallDept {
				continue
			}
			if math.Abs(pool.depth-wall.Depth) > WPDepthRelaxed {
				continue
			}
			for pool.remaining() > 0 {
				gap := truckWidth - wall.WidthFill
				if gap < -widthTolerance {
					return wperrors.Internalf("gap_fill", "negative gap %.2f on wall after prior append", gap)
				}
				if gap < pool.width-widthTolerance {
					break
				}
				col := pool.takeColumn(wall.WidthFill)
				wall.Columns = append(wall.Columns, col)
				wall.WidthFill += col.Width
				if col.StackedH > wall.MaxHeight {
					wall.MaxHeight = col.StackedH
				}
				if col.Depth > wall.Depth {
					wall.Depth = col.Depth
				}
				addDeptTag(wall, pool.dept)
				appended = true
			}
		}
		if appended {
			wall.Reliability = wpcore.Demote(wall.Reliability, wpcore.TightFit)
			lg.Action(ctx, "gap_fill", "appended orphan columns into under-filled full wall, demoted to TIGHT_FIT")
		}
	}
	return nil
}
