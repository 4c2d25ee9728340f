package picking

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/veinview/internal/engine/mesh"
	"github.com/Faultbox/veinview/pkg/math"
)

func TestScreenToRayCenter(t *testing.T) {
	view := math.LookAt(math.Vec3{Z: 14}, math.Vec3{}, math.Vec3{Y: 1})
	proj := math.Perspective(75*gomath.Pi/180, 800.0/600.0, 0.1, 1000)
	inv := proj.Mul(view).Inverse()

	r := ScreenToRay(400, 300, 800, 600, inv)

	if !r.Direction.ApproxEqual(math.Vec3{Z: -1}, 1e-3) {
		t.Errorf("center ray should look down -Z, got %v", r.Direction)
	}
	if abs(r.Origin.X) > 1e-3 || abs(r.Origin.Y) > 1e-3 {
		t.Errorf("center ray should start on the view axis, got %v", r.Origin)
	}
}

func TestScreenToRayFlipsY(t *testing.T) {
	view := math.LookAt(math.Vec3{Z: 14}, math.Vec3{}, math.Vec3{Y: 1})
	proj := math.Perspective(75*gomath.Pi/180, 1, 0.1, 1000)
	inv := proj.Mul(view).Inverse()

	top := ScreenToRay(50, 0, 100, 100, inv)
	if top.Direction.Y <= 0 {
		t.Errorf("top of screen should point up, got %v", top.Direction)
	}
}

func TestIntersectAABB(t *testing.T) {
	box := NewAABB(math.Vec3{X: 1, Y: 1, Z: 1}, math.Vec3{X: -1, Y: -1, Z: -1})

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"front", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}, true, 4},
		{"inside", Ray{Origin: math.Vec3{}, Direction: math.Vec3{X: 1}}, true, 1},
		{"miss", Ray{Origin: math.Vec3{X: 3, Z: 5}, Direction: math.Vec3{Z: -1}}, false, 0},
		{"behind", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: 1}}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := tt.ray.IntersectAABB(box)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && abs(d-tt.wantT) > 1e-5 {
				t.Errorf("t = %f, want %f", d, tt.wantT)
			}
		})
	}
}

func TestIntersectTriangle(t *testing.T) {
	a := math.Vec3{X: -1, Y: -1}
	b := math.Vec3{X: 1, Y: -1}
	c := math.Vec3{Y: 1}

	front := Ray{Origin: math.Vec3{Z: 3}, Direction: math.Vec3{Z: -1}}
	if d, ok := front.IntersectTriangle(a, b, c); !ok || abs(d-3) > 1e-5 {
		t.Errorf("front hit: got (%f, %v), want (3, true)", d, ok)
	}

	back := Ray{Origin: math.Vec3{Z: -3}, Direction: math.Vec3{Z: 1}}
	if _, ok := back.IntersectTriangle(a, b, c); !ok {
		t.Error("back face should also register a hit")
	}

	outside := Ray{Origin: math.Vec3{X: 2, Z: 3}, Direction: math.Vec3{Z: -1}}
	if _, ok := outside.IntersectTriangle(a, b, c); ok {
		t.Error("ray outside the triangle should miss")
	}

	parallel := Ray{Origin: math.Vec3{Z: 3}, Direction: math.Vec3{X: 1}}
	if _, ok := parallel.IntersectTriangle(a, b, c); ok {
		t.Error("parallel ray should miss")
	}
}

func quadAt(z float32) *mesh.Mesh {
	return mesh.FromTriangles([][3]math.Vec3{
		{{X: -1, Y: -1, Z: z}, {X: 1, Y: -1, Z: z}, {X: 1, Y: 1, Z: z}},
		{{X: -1, Y: -1, Z: z}, {X: 1, Y: 1, Z: z}, {X: -1, Y: 1, Z: z}},
	})
}

func TestIntersectMeshesNearestFirst(t *testing.T) {
	meshes := []*mesh.Mesh{quadAt(-2), nil, quadAt(1), quadAt(-8)}
	r := Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: -1}}

	hits := IntersectMeshes(r, meshes)
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}
	wantOrder := []int{2, 0, 3}
	for i, h := range hits {
		if h.Index != wantOrder[i] {
			t.Errorf("hit %d: index %d, want %d", i, h.Index, wantOrder[i])
		}
	}
	if abs(hits[0].Distance-9) > 1e-5 {
		t.Errorf("nearest distance = %f, want 9", hits[0].Distance)
	}
	if !hits[0].Point.ApproxEqual(math.Vec3{Z: 1}, 1e-5) {
		t.Errorf("nearest point = %v, want (0, 0, 1)", hits[0].Point)
	}
}

func TestIntersectMeshesEmpty(t *testing.T) {
	r := Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: -1}}
	if hits := IntersectMeshes(r, nil); len(hits) != 0 {
		t.Errorf("expected no hits, got %d", len(hits))
	}
	if hits := IntersectMeshes(r, []*mesh.Mesh{{}}); len(hits) != 0 {
		t.Errorf("empty mesh should not be hit, got %d", len(hits))
	}
}

func TestOffsets(t *testing.T) {
	offs := Offsets(6)
	if len(offs) != OffsetCount {
		t.Fatalf("expected %d offsets, got %d", OffsetCount, len(offs))
	}
	if abs(offs[0][0]-6) > 1e-5 || abs(offs[0][1]) > 1e-5 {
		t.Errorf("first offset should be (6, 0), got %v", offs[0])
	}
	if abs(offs[2][0]) > 1e-5 || abs(offs[2][1]-6) > 1e-5 {
		t.Errorf("third offset should be (0, 6), got %v", offs[2])
	}
	for i, o := range offs {
		r := math.Vec3{X: o[0], Y: o[1]}.Length()
		if abs(r-6) > 1e-4 {
			t.Errorf("offset %d has radius %f, want 6", i, r)
		}
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
