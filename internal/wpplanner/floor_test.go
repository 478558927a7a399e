package wpplanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightcase/wallplanner/internal/wpcore"
)

func TestBuildFloorWallsInsertsSpacerBetweenRowsOnly(t *testing.T) {
	t.Parallel()

	g := &wpcore.Group{Tag: "FloorPanel", Width: 45, Depth: 100, Height: 10, IsFloor: true, Cases: caseList(4, 45, 100, 10)}
	items := buildInventory([]*wpcore.Group{g}, 98) // perRow = floor(98/45) = 2

	elems := buildFloorWalls(items, 98)
	// 2 rows of 2 cases each -> wall, spacer, wall (no trailing spacer)
	require.Len(t, elems, 3)
	assert.NotNil(t, elems[0].wall)
	assert.Nil(t, elems[0].spacer)
	assert.Nil(t, elems[1].wall)
	require.NotNil(t, elems[1].spacer)
	assert.Equal(t, WPLoadbarGap, elems[1].spacer.Depth)
	assert.NotNil(t, elems[2].wall)
	assert.Equal(t, 0, items[0].remaining())
}

func TestBuildFloorWallsSkipsNonFloorGroups(t *testing.T) {
	t.Parallel()

	g := &wpcore.Group{Tag: "Riser", Width: 30, Depth: 30, Height: 40, IsFloor: false, Cases: caseList(3, 30, 30, 40)}
	items := buildInventory([]*wpcore.Group{g}, 98)

	elems := buildFloorWalls(items, 98)
	assert.Empty(t, elems)
	assert.Equal(t, 3, items[0].remaining())
}

func TestCaseHeightOfPrefersExplicitCaseHeight(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 42.0, caseHeightOf(wpcore.Case{Height: 42}, 10))
	assert.Equal(t, 10.0, caseHeightOf(wpcore.Case{Height: 0}, 10))
}
