package tubegen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/veinview/internal/engine/scene"
	"github.com/Faultbox/veinview/internal/vessel"
)

type fixedParams map[string]vessel.Params

func (f fixedParams) Params(code string) vessel.Params {
	return f[code]
}

var defaults = vessel.Params{Radius: 0.1, CoverageHeight: 6, DepthOffset: -1}

func TestBuildMeshLayout(t *testing.T) {
	meshes, err := Build("B", defaults)
	require.NoError(t, err)
	require.Len(t, meshes, 1)

	m := meshes[0]
	assert.Len(t, m.Vertices, (TubularSegments+1)*(RadialSegments+1))
	assert.Equal(t, TubularSegments*RadialSegments*2, m.TriangleCount())
}

func TestBuildUnknown(t *testing.T) {
	_, err := Build("Z", defaults)
	assert.True(t, errors.Is(err, vessel.ErrUnknownEntity))
}

func TestBuildDepthOffset(t *testing.T) {
	near, err := Build("C", vessel.Params{Radius: 0.05, CoverageHeight: 6, DepthOffset: 0})
	require.NoError(t, err)
	far, err := Build("C", vessel.Params{Radius: 0.05, CoverageHeight: 6, DepthOffset: -2})
	require.NoError(t, err)

	dz := far[0].Bounds.Max[2] - near[0].Bounds.Max[2]
	assert.InDelta(t, -2, dz, 1e-3)
}

func TestBuildCoverageShrinksTube(t *testing.T) {
	full, err := Build("B", vessel.Params{Radius: 0.1, CoverageHeight: 6})
	require.NoError(t, err)
	part, err := Build("B", vessel.Params{Radius: 0.1, CoverageHeight: 1})
	require.NoError(t, err)

	fullW := full[0].Bounds.Max[0] - full[0].Bounds.Min[0]
	partW := part[0].Bounds.Max[0] - part[0].Bounds.Min[0]
	assert.Less(t, partW, fullW/2)

	// the partial window is centred on the middle of the path, x = 0
	mid := (part[0].Bounds.Max[0] + part[0].Bounds.Min[0]) / 2
	assert.InDelta(t, 0, mid, 0.2)
}

func TestRebuildReplacesNodes(t *testing.T) {
	s := scene.New()
	g := NewGenerator(s)

	first, err := g.Rebuild("A", defaults)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 0, first[0].Part)
	assert.Equal(t, 1, first[1].Part)

	second, err := g.Rebuild("A", vessel.Params{Radius: 0.2, CoverageHeight: 3, DepthOffset: 0})
	require.NoError(t, err)
	require.Len(t, second, 2)

	assert.Equal(t, 2, s.Len(), "old nodes must be removed")
	for _, n := range first {
		assert.NotContains(t, s.Nodes(), n)
	}
	assert.Equal(t, second, g.Meshes("A"))
}

func TestRebuildUsesNormalMaterial(t *testing.T) {
	s := scene.New()
	g := NewGenerator(s)

	set, err := g.Rebuild("A", defaults)
	require.NoError(t, err)

	mat := g.Material("A")
	require.NotNil(t, mat)
	for _, n := range set {
		assert.Same(t, mat, n.Material)
	}
	assert.Equal(t, "A", mat.Name)
	assert.NotSame(t, g.Material("A"), g.Material("B"))
}

func TestRebuildUnknownLeavesSceneIntact(t *testing.T) {
	s := scene.New()
	g := NewGenerator(s)
	require.NoError(t, g.RebuildAll(fixedParams{"A": defaults, "B": defaults, "C": defaults}))
	before := s.Nodes()

	_, err := g.Rebuild("Q", defaults)
	assert.True(t, errors.Is(err, vessel.ErrUnknownEntity))
	assert.Equal(t, before, s.Nodes())
}

func TestRebuildAll(t *testing.T) {
	s := scene.New()
	g := NewGenerator(s)

	require.NoError(t, g.RebuildAll(fixedParams{"A": defaults, "B": defaults, "C": defaults}))
	assert.Equal(t, 4, s.Len())
	assert.Len(t, g.Meshes("A"), 2)
	assert.Len(t, g.Meshes("B"), 1)
	assert.Len(t, g.Meshes("C"), 1)
}

func TestRebuildDegenerateRadius(t *testing.T) {
	s := scene.New()
	g := NewGenerator(s)

	assert.NotPanics(t, func() {
		_, err := g.Rebuild("B", vessel.Params{Radius: 0, CoverageHeight: 0})
		assert.NoError(t, err)
	})
}
