package wpplanner

import (
	"github.com/flightcase/wallplanner/internal/wpcore"
)

// stageElem is one element of the ordered emission sequence: either a real
// wall or a zero-case load-bar spacer.
type stageElem struct {
	wall   *wpcore.Wall
	spacer *wpcore.LoadBarSpacer
}

// buildFloorWalls is Phase 1.5: for each floor-panel group, repeatedly
// dequeue up to perRow cases into a new full-width wall, with a load-bar
// spacer between consecutive floor walls (never after the last one, and
// never before the first).
func buildFloorWalls(items []*item, truckWidth float64) []stageElem {
	var out []stageElem
	for _, it := range items {
		if !it.group.IsFloor {
			continue
		}
		perRow := it.perRow
		if perRow <= 0 {
			perRow = 1
		}
		var wallsForGroup []*wpcore.Wall
		for it.remaining() > 0 {
			cases := it.take(perRow)
			wallsForGroup = append(wallsForGroup, floorWallFromCases(it.group, cases))
		}
		for i, w := range wallsForGroup {
			if i > 0 {
				out = append(out, stageElem{spacer: &wpcore.LoadBarSpacer{Depth: WPLoadbarGap}})
			}
			out = append(out, stageElem{wall: w})
		}
	}
	return out
}

func floorWallFromCases(g *wpcore.Group, cases []wpcore.Case) *wpcore.Wall {
	var cols []wpcore.Column
	var widthFill float64
	for i, c := range cases {
		col := wpcore.Column{
			GroupTag:   g.Tag,
			Dept:       g.Dept,
			Width:      g.Width,
			Depth:      g.Depth,
			Height:     g.Height,
			StackCount: 1,
			StackedH:   caseHeight(c, g),
			Rotation:   g.Rotation,
			XOff:       widthFill,
			Cases:      cases[i : i+1],
		}
		cols = append(cols, col)
		widthFill += g.Width
	}
	return &wpcore.Wall{
		Columns:     cols,
		WidthFill:   widthFill,
		MaxHeight:   g.Height,
		Depth:       g.Depth,
		DeptTags:    []string{g.Dept},
		Reliability: wpcore.FullWall,
		FlatTop:     true,
		IsFloor:     true,
	}
}

// caseHeight prefers the case-declared height when positive, else the
// owning group's resolved height (spec §4.10).
func caseHeight(c wpcore.Case, g *wpcore.Group) float64 {
	return caseHeightOf(c, g.Height)
}

func caseHeightOf(c wpcore.Case, groupHeight float64) float64 {
	if c.Height > 0 {
		return c.Height
	}
	return groupHeight
}
