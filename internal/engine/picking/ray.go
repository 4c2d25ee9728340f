// Package picking provides ray casting and mesh hit testing.
package picking

import (
	gomath "math"
	"sort"

	"github.com/chewxy/math32"

	"github.com/Faultbox/veinview/internal/engine/mesh"
	"github.com/Faultbox/veinview/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// Hit is one ray/mesh intersection.
type Hit struct {
	Index    int     // index into the mesh slice passed to IntersectMeshes
	Distance float32 // ray parameter t, distance along the normalized direction
	Point    math.Vec3
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	near := unproject(invViewProj, math.Vec4{ndcX, ndcY, -1.0, 1.0})
	far := unproject(invViewProj, math.Vec4{ndcX, ndcY, 1.0, 1.0})

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

func unproject(inv math.Mat4, ndc math.Vec4) math.Vec3 {
	w := inv.MulVec4(ndc)
	if w[3] != 0 {
		w[0] /= w[3]
		w[1] /= w[3]
		w[2] /= w[3]
	}
	return math.Vec3{X: w[0], Y: w[1], Z: w[2]}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	origin := r.Origin.Array()
	dir := r.Direction.Array()
	lo := box.Min.Array()
	hi := box.Max.Array()

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle runs the Möller–Trumbore test against triangle (a, b, c).
// Both faces count as hits. Hits behind the origin are rejected.
func (r Ray) IntersectTriangle(a, b, c math.Vec3) (t float32, hit bool) {
	const eps = 1e-7

	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	p := r.Direction.Cross(edge2)
	det := edge1.Dot(p)
	if math32.Abs(det) < eps {
		return 0, false // parallel to the triangle plane
	}
	invDet := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(edge1)
	v := r.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t = edge2.Dot(q) * invDet
	if t < eps {
		return 0, false
	}
	return t, true
}

// IntersectMesh returns the nearest hit distance against m.
// The bounding box is tested first.
func (r Ray) IntersectMesh(m *mesh.Mesh) (t float32, hit bool) {
	if m == nil || m.TriangleCount() == 0 {
		return 0, false
	}
	if _, ok := r.IntersectAABB(BoundsToAABB(m.Bounds)); !ok {
		return 0, false
	}

	best := float32(gomath.MaxFloat32)
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		if d, ok := r.IntersectTriangle(a, b, c); ok && d < best {
			best = d
			hit = true
		}
	}
	return best, hit
}

// IntersectMeshes tests every mesh and returns the hits nearest first.
func IntersectMeshes(r Ray, meshes []*mesh.Mesh) []Hit {
	var hits []Hit
	for i, m := range meshes {
		if d, ok := r.IntersectMesh(m); ok {
			hits = append(hits, Hit{Index: i, Distance: d, Point: r.At(d)})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// NewAABB creates an AABB from two corners, in any order.
func NewAABB(a, b math.Vec3) AABB {
	return AABB{Min: a.Min(b), Max: a.Max(b)}
}

// BoundsToAABB converts mesh bounds to an AABB.
func BoundsToAABB(b mesh.Bounds) AABB {
	return NewAABB(math.Vec3FromArray(b.Min), math.Vec3FromArray(b.Max))
}
