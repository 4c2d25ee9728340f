// Package mesh holds indexed triangle meshes ready for GPU upload and picking.
package mesh

import (
	gomath "math"

	"github.com/Faultbox/veinview/pkg/math"
)

// Vertex is a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three corner positions of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c math.Vec3) {
	a = math.Vec3FromArray(m.Vertices[m.Indices[i*3]].Position)
	b = math.Vec3FromArray(m.Vertices[m.Indices[i*3+1]].Position)
	c = math.Vec3FromArray(m.Vertices[m.Indices[i*3+2]].Position)
	return a, b, c
}

// ComputeBounds recalculates Bounds from the vertex positions.
// An empty mesh gets a zero box.
func (m *Mesh) ComputeBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = Bounds{}
		return
	}
	lo := [3]float32{gomath.MaxFloat32, gomath.MaxFloat32, gomath.MaxFloat32}
	hi := [3]float32{-gomath.MaxFloat32, -gomath.MaxFloat32, -gomath.MaxFloat32}
	for _, v := range m.Vertices {
		for k := 0; k < 3; k++ {
			if v.Position[k] < lo[k] {
				lo[k] = v.Position[k]
			}
			if v.Position[k] > hi[k] {
				hi[k] = v.Position[k]
			}
		}
	}
	m.Bounds = Bounds{Min: lo, Max: hi}
}

// Transform returns a copy of the mesh with positions and normals transformed by mat.
func (m *Mesh) Transform(mat math.Mat4) *Mesh {
	out := &Mesh{
		Vertices: make([]Vertex, len(m.Vertices)),
		Indices:  append([]uint32(nil), m.Indices...),
	}
	for i, v := range m.Vertices {
		p := mat.TransformVec3(math.Vec3FromArray(v.Position))
		n := mat.TransformDirection(math.Vec3FromArray(v.Normal)).Normalize()
		out.Vertices[i] = Vertex{Position: p.Array(), Normal: n.Array(), TexCoord: v.TexCoord}
	}
	out.ComputeBounds()
	return out
}

// FromTriangles builds an unindexed-style mesh from a triangle soup, one
// flat normal per face. Degenerate faces keep a zero normal.
func FromTriangles(tris [][3]math.Vec3) *Mesh {
	m := &Mesh{
		Vertices: make([]Vertex, 0, len(tris)*3),
		Indices:  make([]uint32, 0, len(tris)*3),
	}
	for _, tri := range tris {
		n := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0])).Normalize()
		base := uint32(len(m.Vertices))
		for k := 0; k < 3; k++ {
			m.Vertices = append(m.Vertices, Vertex{Position: tri[k].Array(), Normal: n.Array()})
		}
		m.Indices = append(m.Indices, base, base+1, base+2)
	}
	m.ComputeBounds()
	return m
}

// Triangles expands the index list back into a triangle soup.
func (m *Mesh) Triangles() [][3]math.Vec3 {
	out := make([][3]math.Vec3, 0, m.TriangleCount())
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		out = append(out, [3]math.Vec3{a, b, c})
	}
	return out
}
