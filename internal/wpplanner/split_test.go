package wpplanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightcase/wallplanner/internal/wpcore"
)

func TestSplitGroupsKeepsUniformTagSingleGroup(t *testing.T) {
	t.Parallel()

	cases := []wpcore.Case{
		{ID: "1", Name: "Riser", Group: "Riser", Width: 30, Depth: 30, Height: 40, Dept: "LX"},
		{ID: "2", Name: "Riser", Group: "Riser", Width: 30, Depth: 30, Height: 40, Dept: "LX"},
	}
	groups := splitGroups(cases, 98)
	require.Len(t, groups, 1)
	assert.Equal(t, "Riser", groups[0].Tag)
	assert.Equal(t, "Riser", groups[0].OriginalTag)
	assert.Len(t, groups[0].Cases, 2)
}

func TestSplitGroupsSynthesizesSuffixOnDimensionMismatch(t *testing.T) {
	t.Parallel()

	cases := []wpcore.Case{
		{ID: "1", Name: "Riser", Group: "Riser", Width: 30, Depth: 30, Height: 40, Dept: "LX"},
		{ID: "2", Name: "Riser", Group: "Riser", Width: 24, Depth: 24, Height: 36, Dept: "LX"},
	}
	groups := splitGroups(cases, 98)
	require.Len(t, groups, 2)
	for _, g := range groups {
		assert.NotEqual(t, "Riser", g.Tag) // both got suffixed since the tag produced >1 bucket
		assert.Equal(t, "Riser", g.OriginalTag)
		assert.Equal(t, "Riser", wpcore.BaseGroupTag(g.Tag))
	}
}

func TestSplitGroupsSeparatesByStackingPolicyToo(t *testing.T) {
	t.Parallel()

	cases := []wpcore.Case{
		{ID: "1", Name: "Box", Group: "Box", Width: 20, Depth: 20, Height: 10, Stackable: true, MaxStack: 3, Dept: "CARP"},
		{ID: "2", Name: "Box", Group: "Box", Width: 20, Depth: 20, Height: 10, Stackable: false, Dept: "CARP"},
	}
	groups := splitGroups(cases, 98)
	require.Len(t, groups, 2)
}

func TestBuildGroupResolvesMajorityDeptAndOrientation(t *testing.T) {
	t.Parallel()

	members := []wpcore.Case{
		{Dept: "LX", AllowRotation: true},
		{Dept: "LX", AllowRotation: true},
		{Dept: "SON", AllowRotation: true},
	}
	sig := dimSignature{w: 45, d: 30, h: 40, stackable: false, maxStack: 1}
	g := buildGroup("Riser", "Riser", sig, members, 98)
	assert.Equal(t, "LX", g.Dept)
	assert.Equal(t, 30.0, g.Width) // rotated: fill ties, more items per row
	assert.Equal(t, 45.0, g.Depth)
}

func TestEffectiveMaxStackClampsNonStackableToOne(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, effectiveMaxStack(wpcore.Case{Stackable: false, MaxStack: 5}))
	assert.Equal(t, 5, effectiveMaxStack(wpcore.Case{Stackable: true, MaxStack: 5}))
	assert.Equal(t, 1, effectiveMaxStack(wpcore.Case{Stackable: true, MaxStack: 0}))
}
