// Package tube sweeps a circular cross-section along a curve to build tube meshes.
package tube

import (
	gomath "math"

	"github.com/chewxy/math32"

	"github.com/Faultbox/veinview/internal/engine/mesh"
	"github.com/Faultbox/veinview/pkg/math"
)

// Path is the curve a tube is swept along. u is the arc-length fraction in [0, 1].
type Path interface {
	PointAt(u float32) math.Vec3
	TangentAt(u float32) math.Vec3
}

// Frames holds one orthonormal frame per ring.
type Frames struct {
	Tangents  []math.Vec3
	Normals   []math.Vec3
	Binormals []math.Vec3
}

// ComputeFrames builds parallel-transported Frenet frames at segments+1
// evenly spaced arc-length positions.
func ComputeFrames(path Path, segments int, closed bool) Frames {
	n := segments + 1
	f := Frames{
		Tangents:  make([]math.Vec3, n),
		Normals:   make([]math.Vec3, n),
		Binormals: make([]math.Vec3, n),
	}
	for i := 0; i < n; i++ {
		f.Tangents[i] = path.TangentAt(float32(i) / float32(segments))
	}

	// Initial normal: cross the first tangent with its least dominant axis.
	t0 := f.Tangents[0]
	axis := math.Vec3{X: 1}
	smallest := float32(gomath.MaxFloat32)
	if ax := math32.Abs(t0.X); ax <= smallest {
		smallest = ax
		axis = math.Vec3{X: 1}
	}
	if ay := math32.Abs(t0.Y); ay <= smallest {
		smallest = ay
		axis = math.Vec3{Y: 1}
	}
	if az := math32.Abs(t0.Z); az <= smallest {
		axis = math.Vec3{Z: 1}
	}
	side := t0.Cross(axis).Normalize()
	f.Normals[0] = t0.Cross(side)
	f.Binormals[0] = t0.Cross(f.Normals[0])

	for i := 1; i < n; i++ {
		f.Normals[i] = f.Normals[i-1]
		f.Binormals[i] = f.Binormals[i-1]

		rot := f.Tangents[i-1].Cross(f.Tangents[i])
		if rot.Length() > 1e-12 {
			rot = rot.Normalize()
			theta := math32.Acos(clamp(f.Tangents[i-1].Dot(f.Tangents[i]), -1, 1))
			f.Normals[i] = math.RotateAxis(rot, theta).TransformDirection(f.Normals[i])
		}
		f.Binormals[i] = f.Tangents[i].Cross(f.Normals[i])
	}

	// Closed paths spread the residual twist evenly over the length.
	if closed && segments > 0 {
		theta := math32.Acos(clamp(f.Normals[0].Dot(f.Normals[segments]), -1, 1)) / float32(segments)
		if f.Tangents[0].Dot(f.Normals[0].Cross(f.Normals[segments])) > 0 {
			theta = -theta
		}
		for i := 1; i <= segments; i++ {
			f.Normals[i] = math.RotateAxis(f.Tangents[i], theta*float32(i)).TransformDirection(f.Normals[i])
			f.Binormals[i] = f.Tangents[i].Cross(f.Normals[i])
		}
	}
	return f
}

// Build sweeps a circle of radius around path. The mesh has tubular+1 rings
// of radial+1 vertices (the seam vertex is duplicated for texture
// continuity) and 2*tubular*radial triangles. Ends are left open.
func Build(path Path, tubular int, radius float32, radial int, closed bool) *mesh.Mesh {
	if tubular < 1 {
		tubular = 1
	}
	if radial < 3 {
		radial = 3
	}
	frames := ComputeFrames(path, tubular, closed)

	m := &mesh.Mesh{
		Vertices: make([]mesh.Vertex, 0, (tubular+1)*(radial+1)),
		Indices:  make([]uint32, 0, tubular*radial*6),
	}

	for i := 0; i <= tubular; i++ {
		u := float32(i) / float32(tubular)
		p := path.PointAt(u)
		if closed && i == tubular {
			p = path.PointAt(0)
		}
		nrm := frames.Normals[i]
		bin := frames.Binormals[i]

		for j := 0; j <= radial; j++ {
			v := float32(j) / float32(radial) * 2 * gomath.Pi
			sin, cos := math32.Sincos(v)
			cos = -cos

			dir := nrm.Scale(cos).Add(bin.Scale(sin)).Normalize()
			pos := p.Add(dir.Scale(radius))
			m.Vertices = append(m.Vertices, mesh.Vertex{
				Position: pos.Array(),
				Normal:   dir.Array(),
				TexCoord: [2]float32{u, float32(j) / float32(radial)},
			})
		}
	}

	stride := uint32(radial + 1)
	for j := uint32(1); j <= uint32(tubular); j++ {
		for i := uint32(1); i <= uint32(radial); i++ {
			a := stride*(j-1) + (i - 1)
			b := stride*j + (i - 1)
			c := stride*j + i
			d := stride*(j-1) + i
			m.Indices = append(m.Indices, a, b, d, b, c, d)
		}
	}

	m.ComputeBounds()
	return m
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
