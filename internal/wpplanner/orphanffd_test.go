package wpplanner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightcase/wallplanner/internal/wpcore"
)

func TestClusterByDepthGroupsWithinThresholdTransitively(t *testing.T) {
	t.Parallel()

	a := &orphanPool{depth: 20}
	b := &orphanPool{depth: 22} // within 2 of a
	c := &orphanPool{depth: 40} // far from both

	clusters := clusterByDepth([]*orphanPool{c, a, b}, WPDepthStrict)
	require.Len(t, clusters, 2)
	assert.Len(t, clusters[0], 2) // a, b
	assert.Len(t, clusters[1], 1) // c
}

func TestBuildWallsFromClusterSortsWidestFirstAndClosesWhenNothingFits(t *testing.T) {
	t.Parallel()

	wide := &wpcore.Group{Tag: "Wide", Dept: "LX", Width: 50, Depth: 30, Height: 20, MaxStack: 1, Cases: caseList(2, 50, 30, 20)}
	narrow := &wpcore.Group{Tag: "Narrow", Dept: "LX", Width: 20, Depth: 30, Height: 20, MaxStack: 1, Cases: caseList(2, 20, 30, 20)}
	items := buildInventory([]*wpcore.Group{narrow, wide}, 98)
	pools := []*orphanPool{newOrphanPool(items[0]), newOrphanPool(items[1])}

	walls := buildWallsFromCluster(pools, 98, wpcore.OrphanSameDept)
	require.NotEmpty(t, walls)
	// widest pool anchors first: first column in the first wall is the 50-wide one.
	assert.Equal(t, 50.0, walls[0].Columns[0].Width)
	for _, w := range walls {
		assert.Equal(t, wpcore.OrphanSameDept, w.Reliability)
		assert.LessOrEqual(t, w.WidthFill, 98.0+widthTolerance)
	}
}

func TestMergeWeakWallsAccretesCompatibleDepthsUnderMinFill(t *testing.T) {
	t.Parallel()

	a := &wpcore.Wall{WidthFill: 40, Depth: 20, DeptTags: []string{"LX"}, Columns: []wpcore.Column{{Dept: "LX", Width: 40, Depth: 20}}}
	b := &wpcore.Wall{WidthFill: 40, Depth: 24, DeptTags: []string{"LX"}, Columns: []wpcore.Column{{Dept: "LX", Width: 40, Depth: 24}}}

	merged := mergeWeakWalls(context.Background(), []*wpcore.Wall{a, b}, 98, true, nil)
	require.Len(t, merged, 1)
	assert.InDelta(t, 80.0, merged[0].WidthFill, 0.001)
	require.Len(t, merged[0].Columns, 2)
	assert.Equal(t, 40.0, merged[0].Columns[1].XOff) // shifted by the absorbing wall's pre-merge fill
}

func TestMergeWeakWallsLeavesIncompatibleDepthsAlone(t *testing.T) {
	t.Parallel()

	a := &wpcore.Wall{WidthFill: 40, Depth: 10, DeptTags: []string{"LX"}}
	b := &wpcore.Wall{WidthFill: 40, Depth: 30, DeptTags: []string{"LX"}} // 20 > WP_DEPTH_RELAXED

	merged := mergeWeakWalls(context.Background(), []*wpcore.Wall{a, b}, 98, true, nil)
	assert.Len(t, merged, 2)
}

func TestAbsorbWallShiftsColumnOffsetsByDestinationFill(t *testing.T) {
	t.Parallel()

	dst := &wpcore.Wall{WidthFill: 50, MaxHeight: 20, Depth: 30, DeptTags: []string{"LX"}}
	src := &wpcore.Wall{WidthFill: 20, MaxHeight: 25, Depth: 32, DeptTags: []string{"SON"},
		Columns: []wpcore.Column{{XOff: 0, Width: 20}}}

	absorbWall(dst, src)
	require.Len(t, dst.Columns, 1)
	assert.Equal(t, 50.0, dst.Columns[0].XOff)
	assert.Equal(t, 70.0, dst.WidthFill)
	assert.Equal(t, 25.0, dst.MaxHeight)
	assert.Equal(t, 32.0, dst.Depth)
	assert.Equal(t, []string{"LX", "SON"}, dst.DeptTags)
}
