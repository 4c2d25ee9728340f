package mesh

import (
	"testing"

	"github.com/Faultbox/veinview/pkg/math"
)

func TestFromTriangles(t *testing.T) {
	m := FromTriangles([][3]math.Vec3{
		{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
		{{X: 0, Y: 0, Z: 2}, {X: 1, Y: 0, Z: 2}, {X: 0, Y: 1, Z: 2}},
	})

	if m.TriangleCount() != 2 {
		t.Fatalf("expected 2 triangles, got %d", m.TriangleCount())
	}
	if n := m.Vertices[0].Normal; n != [3]float32{0, 0, 1} {
		t.Errorf("expected +Z face normal, got %v", n)
	}
	if m.Bounds.Min != [3]float32{0, 0, 0} || m.Bounds.Max != [3]float32{1, 1, 2} {
		t.Errorf("unexpected bounds %+v", m.Bounds)
	}
}

func TestTrianglesRoundTrip(t *testing.T) {
	in := [][3]math.Vec3{{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}}
	out := FromTriangles(in).Triangles()
	if len(out) != 1 || out[0] != in[0] {
		t.Errorf("Triangles() = %v, want %v", out, in)
	}
}

func TestTransform(t *testing.T) {
	m := FromTriangles([][3]math.Vec3{{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}})
	moved := m.Transform(math.Translate(0, 0, -5).Mul(math.Scale(5, 5, 5)))

	if moved.Bounds.Max != [3]float32{5, 5, -5} {
		t.Errorf("unexpected transformed max %v", moved.Bounds.Max)
	}
	if m.Bounds.Max != [3]float32{1, 1, 0} {
		t.Error("Transform must not modify the source mesh")
	}
}

func TestComputeBoundsEmpty(t *testing.T) {
	m := &Mesh{}
	m.ComputeBounds()
	if m.Bounds != (Bounds{}) {
		t.Errorf("empty mesh should have zero bounds, got %+v", m.Bounds)
	}
}
