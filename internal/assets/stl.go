package assets

import (
	"errors"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/Faultbox/veinview/internal/engine/mesh"
	"github.com/Faultbox/veinview/pkg/math"
)

// ErrEmptyMesh is returned for STL files without triangles.
var ErrEmptyMesh = errors.New("mesh has no triangles")

// ReadSTL parses an STL file into a flat-shaded mesh.
func ReadSTL(path string) (*mesh.Mesh, error) {
	tris, err := render.LoadSTL(path)
	if err != nil {
		return nil, err
	}
	if len(tris) == 0 {
		return nil, ErrEmptyMesh
	}

	soup := make([][3]math.Vec3, len(tris))
	for i, t := range tris {
		for k := 0; k < 3; k++ {
			soup[i][k] = math.V3(float32(t[k].X), float32(t[k].Y), float32(t[k].Z))
		}
	}
	return mesh.FromTriangles(soup), nil
}

// WriteSTL writes the triangles of every mesh to a single binary STL file.
func WriteSTL(path string, meshes ...*mesh.Mesh) error {
	var tris []*sdf.Triangle3
	for _, m := range meshes {
		for _, t := range m.Triangles() {
			tris = append(tris, &sdf.Triangle3{toV3(t[0]), toV3(t[1]), toV3(t[2])})
		}
	}
	if len(tris) == 0 {
		return ErrEmptyMesh
	}
	return render.SaveSTL(path, tris)
}

func toV3(p math.Vec3) v3.Vec {
	return v3.Vec{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
}
