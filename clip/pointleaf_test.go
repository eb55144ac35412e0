package clip_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sp00nznet/clipmap/clip"
)

func TestPointLeafnum_EmptyTreeAlwaysResolvesToLeafZero(t *testing.T) {
	buf := buildLevelBytes(cubeBrushLevel(clip.ContentsSolid))
	m := clip.New()
	require.NoError(t, m.LoadLevel("cube", fetcherFor(buf)))

	for _, p := range []clip.Vec3{
		{X: 32, Y: 32, Z: 32},
		{X: -1000, Y: 500, Z: 7},
		{X: 0, Y: 0, Z: 0},
	} {
		assert.Equal(t, int32(0), m.PointLeafnum(p))
	}
}

func TestPointLeafnum_Unloaded(t *testing.T) {
	m := clip.New()
	assert.Equal(t, int32(0), m.PointLeafnum(clip.Vec3{}))
}

func TestPointLeafnum_DescendsSplitTree(t *testing.T) {
	fx := twoLeafSplitLevel()
	buf := buildLevelBytes(fx)
	m := clip.New()
	require.NoError(t, m.LoadLevel("split", fetcherFor(buf)))

	leafLow := m.PointLeafnum(clip.Vec3{X: 10, Y: 0, Z: 0})
	leafHigh := m.PointLeafnum(clip.Vec3{X: 50, Y: 0, Z: 0})

	assert.Equal(t, int32(0), leafLow)
	assert.Equal(t, int32(1), leafHigh)
	assert.Equal(t, int32(0), m.LeafCluster(leafLow))
	assert.Equal(t, int32(1), m.LeafCluster(leafHigh))
}

func TestLeafCluster_OutOfRange(t *testing.T) {
	m := clip.New()
	assert.Equal(t, int32(-1), m.LeafCluster(99))
	assert.Equal(t, int32(-1), m.LeafArea(99))
}

// twoLeafSplitLevel returns a level with a single axial splitting plane
// at x == 32 dividing the world into leaf 0 (x < 32, cluster 0, area 0)
// and leaf 1 (x >= 32, cluster 1, area 1). Neither leaf lists any
// brushes; this fixture exercises tree descent and PVS/area wiring only.
func twoLeafSplitLevel() fxLevel {
	return fxLevel{
		planes: []fxPlane{{nx: 1, dist: 32}},
		nodes: []fxNode{
			{planeNum: 0, children0: ^int32(1), children1: ^int32(0)},
		},
		leafs: []fxLeaf{
			{cluster: 0, area: 0},
			{cluster: 1, area: 1},
		},
		submodels: []fxSubModel{{maxsX: 1000, maxsY: 1000, maxsZ: 1000}},
	}
}
