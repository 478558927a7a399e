package wpplanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightcase/wallplanner/internal/wpcore"
)

func TestEmitWallQueuesOverwidthColumnsAsSpillover(t *testing.T) {
	t.Parallel()

	wall := &wpcore.Wall{
		Columns: []wpcore.Column{
			{GroupTag: "Riser", Dept: "LX", Width: 30, Depth: 30, Height: 40, StackCount: 1, Cases: []wpcore.Case{{ID: "fits"}}},
			{GroupTag: "Riser", Dept: "LX", Width: 80, Depth: 30, Height: 40, StackCount: 1, Cases: []wpcore.Case{{ID: "overflow"}}},
		},
	}
	counter := &emissionCounter{}

	sec, spilled := emitWall(wall, counter, 0, 1, "LX FULL_WALL", 98)
	require.Len(t, spilled, 1)
	assert.Equal(t, "overflow", spilled[0].Case.ID)
	require.Len(t, sec.Placements, 1)
	assert.Equal(t, "fits", sec.Placements[0].CaseID)
}

func TestRecoverSpilloversBucketsByDepthAndPacksDescendingWidth(t *testing.T) {
	t.Parallel()

	spilled := []spilledItem{
		{Case: wpcore.Case{ID: "a"}, Width: 30, Depth: 30, Height: 40},
		{Case: wpcore.Case{ID: "b"}, Width: 45, Depth: 30, Height: 40},
		{Case: wpcore.Case{ID: "c"}, Width: 20, Depth: 60, Height: 40},
	}
	counter := &emissionCounter{}

	sections, placements := recoverSpillovers(spilled, counter, 0, 98)
	require.Len(t, placements, 3)

	total := 0
	for _, s := range sections {
		total += s.CaseCount
	}
	assert.Equal(t, 3, total)

	// within the depth-30 bucket, the wider case (b, width 45) should be placed first (x=0)
	var bPlacement, aPlacement wpcore.Placement
	for _, p := range placements {
		if p.CaseID == "b" {
			bPlacement = p
		}
		if p.CaseID == "a" {
			aPlacement = p
		}
	}
	assert.Less(t, bPlacement.X, aPlacement.X)
}

func TestRecoverSpilloversNoItemsIsANoop(t *testing.T) {
	t.Parallel()

	sections, placements := recoverSpillovers(nil, &emissionCounter{}, 0, 98)
	assert.Nil(t, sections)
	assert.Nil(t, placements)
}

func TestEmissionCounterIsMonotonicAndSharedAcrossWalls(t *testing.T) {
	t.Parallel()

	c := &emissionCounter{}
	assert.Equal(t, "wp_1", c.nextID())
	assert.Equal(t, "wp_2", c.nextID())
	assert.Equal(t, "wp_3", c.nextID())
}
