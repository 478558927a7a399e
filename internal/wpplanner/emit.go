package wpplanner

import (
	"fmt"
	"math"
	"sort"

	"github.com/flightcase/wallplanner/internal/wpcore"
)

// spilledItem is a single case that could not be emitted in its owning
// column because the column's width overflowed the truck width. It is
// recovered by Phase 5B.
type spilledItem struct {
	Case   wpcore.Case
	Width  float64
	Depth  float64
	Height float64
	Rotation int
	GroupTag string
	Dept     string
}

// emitResult is the Phase 5 + 5B output, before validation.
type emitResult struct {
	placements   []wpcore.Placement
	wallSections []wpcore.WallSection
}

// emissionCounter assigns the monotonically increasing "wp_N" wall
// identifiers shared across floor walls, regular stages, and spillover
// walls, in emission order.
type emissionCounter struct{ next int }

func (c *emissionCounter) nextID() string {
	c.next++
	return fmt.Sprintf("wp_%d", c.next)
}

// emit is Phase 5: walk the floor elements followed by the ordered,
// staged regular walls, assigning coordinates and wall identifiers.
func emit(floorElems []stageElem, stages []stage, truckWidth float64) (emitResult, []spilledItem, *emissionCounter, float64) {
	var res emitResult
	counter := &emissionCounter{}
	yPos := 0.0
	var spilled []spilledItem

	if len(floorElems) > 0 {
		floorStageIdx := 0
		for _, el := range floorElems {
			if el.spacer != nil {
				yPos += el.spacer.Depth
				continue
			}
			sec, sp := emitWall(el.wall, counter, yPos, floorStageIdx, "Floor", truckWidth)
			res.wallSections = append(res.wallSections, sec)
			res.placements = append(res.placements, sec.Placements...)
			spilled = append(spilled, sp...)
			yPos = sec.YEnd
		}
	}

	for stageIdx, st := range stages {
		for _, w := range st.walls {
			sec, sp := emitWall(w, counter, yPos, stageIdx+1, st.label, truckWidth)
			res.wallSections = append(res.wallSections, sec)
			res.placements = append(res.placements, sec.Placements...)
			spilled = append(spilled, sp...)
			yPos = sec.YEnd
		}
	}

	return res, spilled, counter, yPos
}

// emitWall assigns a wall identifier and coordinates to a single wall,
// queuing any column whose cumulative x-offset overflows the truck width
// as a spillover rather than emitting it.
func emitWall(wall *wpcore.Wall, counter *emissionCounter, yPos float64, stageIdx int, label string, truckWidth float64) (wpcore.WallSection, []spilledItem) {
	id := counter.nextID()
	var spilled []spilledItem
	var placements []wpcore.Placement
	cumulX := 0.0

	for _, col := range wall.Columns {
		if cumulX+col.Width > truckWidth+widthTolerance {
			for _, c := range col.Cases {
				spilled = append(spilled, spilledItem{
					Case: c, Width: col.Width, Depth: col.Depth, Height: col.Height,
					Rotation: col.Rotation, GroupTag: col.GroupTag, Dept: col.Dept,
				})
			}
			continue
		}
		for i := 0; i < col.StackCount; i++ {
			c := col.Cases[i]
			placements = append(placements, wpcore.Placement{
				Name:       c.Name,
				CaseID:     c.ID,
				Group:      col.GroupTag,
				Dept:       col.Dept,
				X:          cumulX,
				Y:          yPos,
				Z:          float64(i) * col.Height,
				Width:      col.Width,
				Depth:      col.Depth,
				Height:     caseHeightOf(c, col.Height),
				Rotation:   col.Rotation,
				WallID:     id,
				StageIndex: stageIdx,
			})
		}
		cumulX += col.Width
	}

	yEnd := yPos + wall.Depth
	fillPct := 0.0
	if truckWidth > 0 {
		fillPct = math.Min(cumulX/truckWidth, 1.0) * 100
	}
	sec := wpcore.WallSection{
		ID:         id,
		Label:      label,
		Stage:      stageIdx,
		YStart:     yPos,
		YEnd:       yEnd,
		WallWidth:  cumulX,
		FillPct:    fillPct,
		Placements: placements,
		CaseCount:  len(placements),
		Depth:      wall.Depth,
	}
	return sec, spilled
}

// recoverSpillovers is Phase 5B: group spilled items by rounded depth and
// greedy-pack new walls (left-to-right, descending width) per bucket. Every
// recovered wall is emitted with stage index -1 and label "Spillover",
// trailing all regular stages.
func recoverSpillovers(spilled []spilledItem, counter *emissionCounter, yPos, truckWidth float64) ([]wpcore.WallSection, []wpcore.Placement) {
	if len(spilled) == 0 {
		return nil, nil
	}

	buckets := wpcore.NewOrderedMap[float64, []spilledItem]()
	for _, s := range spilled {
		key := math.Round(s.Depth)
		existing, _ := buckets.Get(key)
		buckets.Set(key, append(existing, s))
	}

	var sections []wpcore.WallSection
	var placements []wpcore.Placement

	for _, depthKey := range buckets.Keys() {
		items, _ := buckets.Get(depthKey)
		sort.SliceStable(items, func(i, j int) bool { return items[i].Width > items[j].Width })

		for len(items) > 0 {
			id := counter.nextID()
			cumulX := 0.0
			var wallPlacements []wpcore.Placement
			maxDepth := 0.0
			var remaining []spilledItem
			for _, it := range items {
				if cumulX+it.Width > truckWidth+widthTolerance {
					remaining = append(remaining, it)
					continue
				}
				wallPlacements = append(wallPlacements, wpcore.Placement{
					Name:       it.Case.Name,
					CaseID:     it.Case.ID,
					Group:      it.GroupTag,
					Dept:       it.Dept,
					X:          cumulX,
					Y:          yPos,
					Z:          0,
					Width:      it.Width,
					Depth:      it.Depth,
					Height:     caseHeightOf(it.Case, it.Height),
					Rotation:   it.Rotation,
					WallID:     id,
					StageIndex: -1,
				})
				cumulX += it.Width
				if it.Depth > maxDepth {
					maxDepth = it.Depth
				}
			}
			if len(wallPlacements) == 0 {
				// Not even one item fits (wider than the truck); emit it alone
				// so it is still observable, rather than dropping it silently.
				it := items[0]
				wallPlacements = append(wallPlacements, wpcore.Placement{
					Name: it.Case.Name, CaseID: it.Case.ID, Group: it.GroupTag, Dept: it.Dept,
					X: 0, Y: yPos, Z: 0, Width: it.Width, Depth: it.Depth,
					Height: caseHeightOf(it.Case, it.Height),
					Rotation: it.Rotation, WallID: id, StageIndex: -1,
				})
				cumulX = it.Width
				maxDepth = it.Depth
				remaining = items[1:]
			}

			yEnd := yPos + maxDepth
			fillPct := 0.0
			if truckWidth > 0 {
				fillPct = math.Min(cumulX/truckWidth, 1.0) * 100
			}
			sections = append(sections, wpcore.WallSection{
				ID: id, Label: "Spillover", Stage: -1,
				YStart: yPos, YEnd: yEnd, WallWidth: cumulX, FillPct: fillPct,
				Placements: wallPlacements, CaseCount: len(wallPlacements), Depth: maxDepth,
			})
			placements = append(placements, wallPlacements...)
			yPos = yEnd
			items = remaining
		}
	}

	return sections, placements
}
