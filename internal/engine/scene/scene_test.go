package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/veinview/internal/engine/mesh"
)

func TestAddAssignsIDs(t *testing.T) {
	s := New()
	a := s.Add(&Node{Entity: "A"})
	b := s.Add(&Node{Entity: "B"})

	assert.NotZero(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, s.Len())
}

func TestRemove(t *testing.T) {
	s := New()
	a := s.Add(&Node{Entity: "A"})
	s.Add(&Node{Entity: "B"})
	v := s.Version()

	require.True(t, s.Remove(a))
	assert.False(t, s.Remove(a), "second removal should report absence")
	assert.Equal(t, 1, s.Len())
	assert.Greater(t, s.Version(), v)
}

func TestRemoveEntity(t *testing.T) {
	s := New()
	s.Add(&Node{Entity: "A", Part: 0})
	s.Add(&Node{Entity: "B"})
	s.Add(&Node{Entity: "A", Part: 1})
	face := s.Add(&Node{})

	assert.Equal(t, 2, s.RemoveEntity("A"))
	assert.Empty(t, s.EntityNodes("A"))

	nodes := s.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, "B", nodes[0].Entity)
	assert.Same(t, face, nodes[1])

	v := s.Version()
	assert.Zero(t, s.RemoveEntity("missing"))
	assert.Equal(t, v, s.Version(), "removing nothing should not bump the version")
}

func TestEntityNodesOrderedByPart(t *testing.T) {
	s := New()
	p1 := s.Add(&Node{Entity: "A", Part: 1})
	s.Add(&Node{Entity: "C"})
	p0 := s.Add(&Node{Entity: "A", Part: 0})

	set := s.EntityNodes("A")
	require.Len(t, set, 2)
	assert.Same(t, p0, set[0])
	assert.Same(t, p1, set[1])
}

func TestEntityMeshSetMeshes(t *testing.T) {
	m0, m1 := &mesh.Mesh{}, &mesh.Mesh{}
	set := EntityMeshSet{{Mesh: m0}, {Mesh: m1}}

	meshes := set.Meshes()
	require.Len(t, meshes, 2)
	assert.Same(t, m0, meshes[0])
	assert.Same(t, m1, meshes[1])
}

func TestSetMaterial(t *testing.T) {
	s := New()
	normal := Opaque("B", 0x2196f3)
	n := s.Add(&Node{Entity: "B", Material: normal})
	v := s.Version()

	s.SetMaterial(n, normal)
	assert.Equal(t, v, s.Version(), "same material is a no-op")

	hl := Highlight()
	s.SetMaterial(n, hl)
	assert.Same(t, hl, n.Material)
	assert.Greater(t, s.Version(), v)
}

func TestNodesIsSnapshot(t *testing.T) {
	s := New()
	s.Add(&Node{Entity: "A"})
	snap := s.Nodes()
	s.Add(&Node{Entity: "B"})

	assert.Len(t, snap, 1)
	assert.Equal(t, 2, s.Len())
}

func TestBuiltinMaterials(t *testing.T) {
	hl := Highlight()
	assert.False(t, hl.Transparent())
	assert.True(t, hl.DepthWrite)
	assert.InDelta(t, 1.0, hl.Color[0], 1e-6)
	assert.InDelta(t, float32(0xd5)/255, hl.Color[1], 1e-6)

	face := Face(0.5)
	assert.True(t, face.Transparent())
	assert.True(t, face.DoubleSided)
	assert.False(t, face.DepthWrite)
	assert.InDelta(t, float32(0xcc)/255, face.Color[0], 1e-6)
}
