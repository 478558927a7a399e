package wpplanner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightcase/wallplanner/internal/wpcore"
)

func TestWeakWallAbsorptionDissolvesWallsUnderAbsorbThresh(t *testing.T) {
	t.Parallel()

	target := &wpcore.Wall{WidthFill: 30, Depth: 30, Reliability: wpcore.FullWall}
	weak := &wpcore.Wall{
		WidthFill:   20, // 20/98 = 0.204, below WP_ABSORB_THRESH
		Depth:       32,
		Reliability: wpcore.OrphanSameDept,
		Columns:     []wpcore.Column{{Dept: "LX", Width: 20, Depth: 32}},
	}

	strong, leftover := weakWallAbsorption(context.Background(), []*wpcore.Wall{target}, []*wpcore.Wall{weak}, 98, nil)

	assert.Empty(t, strong) // weak's only source wall was the orphan, already absorbed away
	assert.Empty(t, leftover)
	require.Len(t, target.Columns, 1)
	assert.Equal(t, wpcore.OrphanMixed, target.Reliability) // demoted, never promoted back up
}

func TestWeakWallAbsorptionLeavesColumnUnabsorbedWhenNoTargetFits(t *testing.T) {
	t.Parallel()

	weak := &wpcore.Wall{
		WidthFill:   20,
		Depth:       80, // far from everything
		Reliability: wpcore.OrphanMixed,
		Columns:     []wpcore.Column{{Dept: "LX", Width: 20, Depth: 80}},
	}

	strong, leftover := weakWallAbsorption(context.Background(), nil, []*wpcore.Wall{weak}, 98, nil)
	assert.Empty(t, strong) // weak was the only wall, nothing to absorb into
	require.Len(t, leftover, 1)
	assert.Equal(t, 80.0, leftover[0].Depth)
}

func TestColumnRebuildNoopsBelowThreshold(t *testing.T) {
	t.Parallel()

	// only one weak wall and no leftover columns: rebuild does not trigger (needs >= 2).
	single := &wpcore.Wall{WidthFill: 20, Reliability: wpcore.OrphanMixed}
	out := columnRebuild([]*wpcore.Wall{single}, nil, 98, 110)
	require.Len(t, out, 1)
	assert.Same(t, single, out[0])
}

func TestColumnRebuildMergesWeakWallsAndLeftoverColumns(t *testing.T) {
	t.Parallel()

	weakA := &wpcore.Wall{WidthFill: 20, Depth: 30, Reliability: wpcore.OrphanMixed,
		Columns: []wpcore.Column{{Dept: "LX", GroupTag: "A", Width: 20, Depth: 30, StackedH: 20}}}
	weakB := &wpcore.Wall{WidthFill: 30, Depth: 32, Reliability: wpcore.OrphanMixed,
		Columns: []wpcore.Column{{Dept: "LX", GroupTag: "A", Width: 30, Depth: 32, StackedH: 22}}}
	leftover := []wpcore.Column{{Dept: "LX", GroupTag: "A", Width: 15, Depth: 31, StackedH: 21}}

	out := columnRebuild([]*wpcore.Wall{weakA, weakB}, leftover, 98, 110)
	require.Len(t, out, 1)
	assert.Equal(t, wpcore.OrphanSameDept, out[0].Reliability) // single group/dept
	assert.Len(t, out[0].Columns, 3)
}

func TestClassifyRebuildReliability(t *testing.T) {
	t.Parallel()

	sameGroup := &wpcore.Wall{Columns: []wpcore.Column{{GroupTag: "A", Dept: "LX"}, {GroupTag: "A", Dept: "SON"}}}
	assert.Equal(t, wpcore.OrphanSameDept, classifyRebuildReliability(sameGroup))

	mixed := &wpcore.Wall{Columns: []wpcore.Column{{GroupTag: "A", Dept: "LX"}, {GroupTag: "B", Dept: "SON"}}}
	assert.Equal(t, wpcore.OrphanMixed, classifyRebuildReliability(mixed))
}
