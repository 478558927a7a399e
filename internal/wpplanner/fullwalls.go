package wpplanner

import (
	"math"

	"github.com/flightcase/wallplanner/internal/wpcore"
)

// buildFullWalls is Phase 2: greedily build single-group wall grids.
// Returns the accepted FULL_WALL walls and leaves any dissolved or leftover
// cases available for Phase 2.5+ by way of the still-open item cursors.
func buildFullWalls(items []*item, truckWidth float64) []*wpcore.Wall {
	var walls []*wpcore.Wall
	for _, it := range items {
		if it.group.IsFloor {
			continue
		}
		for it.remaining() > 0 {
			before := it.consumed
			wall := buildOneWall(it, truckWidth)
			fill := wallFillRatio(wall, truckWidth)

			if fill < WPMinFill {
				// Dissolve: give the cases back to the pool by rewinding the
				// cursor, so Phase 2.5+ sees them as orphans instead.
				it.consumed = before
				break
			}

			walls = append(walls, wall)

			additionalCols := 0
			if it.group.Width > 0 {
				additionalCols = int(math.Floor((truckWidth * WPMinFill) / it.group.Width))
			}
			if it.remaining() < additionalCols {
				break
			}
		}
	}
	return walls
}

// buildOneWall greedily stacks columns of one group left-to-right until the
// next column would overflow the truck width.
func buildOneWall(it *item, truckWidth float64) *wpcore.Wall {
	g := it.group
	var cols []wpcore.Column
	x := 0.0
	maxHeight := 0.0
	for it.remaining() > 0 {
		if x+g.Width > truckWidth+widthTolerance {
			break
		}
		n := g.MaxStack
		if it.remaining() < n {
			n = it.remaining()
		}
		cases := it.take(n)
		stackedH := g.Height * float64(len(cases))
		cols = append(cols, wpcore.Column{
			GroupTag:   g.Tag,
			Dept:       g.Dept,
			Width:      g.Width,
			Depth:      g.Depth,
			Height:     g.Height,
			StackCount: len(cases),
			StackedH:   stackedH,
			Rotation:   g.Rotation,
			XOff:       x,
			Cases:      cases,
		})
		x += g.Width
		if stackedH > maxHeight {
			maxHeight = stackedH
		}
	}
	return &wpcore.Wall{
		Columns:     cols,
		WidthFill:   x,
		MaxHeight:   maxHeight,
		Depth:       g.Depth,
		DeptTags:    []string{g.Dept},
		Reliability: wpcore.FullWall,
		FlatTop:     true,
	}
}
