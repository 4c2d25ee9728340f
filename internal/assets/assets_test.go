package assets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/veinview/internal/engine/mesh"
	"github.com/Faultbox/veinview/pkg/math"
)

func writeTetra(t *testing.T) string {
	t.Helper()
	a, b, c, d := math.V3(0, 0, 0), math.V3(1, 0, 0), math.V3(0, 1, 0), math.V3(0, 0, 1)
	m := mesh.FromTriangles([][3]math.Vec3{{a, c, b}, {a, b, d}, {a, d, c}, {b, c, d}})

	path := filepath.Join(t.TempDir(), "tetra.stl")
	require.NoError(t, WriteSTL(path, m))
	return path
}

func waitResult(t *testing.T, ch <-chan Result) Result {
	t.Helper()
	select {
	case r, ok := <-ch:
		require.True(t, ok, "channel closed without a result")
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for load")
	}
	return Result{}
}

func TestReadWriteSTL(t *testing.T) {
	path := writeTetra(t)

	m, err := ReadSTL(path)
	require.NoError(t, err)
	assert.Equal(t, 4, m.TriangleCount())
	assert.Equal(t, [3]float32{0, 0, 0}, m.Bounds.Min)
	assert.Equal(t, [3]float32{1, 1, 1}, m.Bounds.Max)
}

func TestWriteSTLEmpty(t *testing.T) {
	err := WriteSTL(filepath.Join(t.TempDir(), "empty.stl"), &mesh.Mesh{})
	assert.True(t, errors.Is(err, ErrEmptyMesh))
}

func TestLoadAppliesPlacement(t *testing.T) {
	path := writeTetra(t)
	l := NewLoader()

	r := waitResult(t, l.Load(context.Background(), path, DefaultOptions()))
	require.NoError(t, r.Err)
	require.NotNil(t, r.Node)
	assert.Equal(t, path, r.Path)
	assert.Empty(t, r.Node.Entity, "decorative meshes belong to no entity")

	b := r.Node.Mesh.Bounds
	assert.InDeltaSlice(t, []float32{0, 0, -5}, b.Min[:], 1e-5)
	assert.InDeltaSlice(t, []float32{5, 5, 0}, b.Max[:], 1e-5)

	mat := r.Node.Material
	assert.Equal(t, "face", mat.Name)
	assert.Equal(t, float32(0.5), mat.Opacity)
	assert.True(t, mat.DoubleSided)
	assert.False(t, mat.DepthWrite)
}

func TestLoadChannelClosesAfterResult(t *testing.T) {
	ch := NewLoader().Load(context.Background(), writeTetra(t), DefaultOptions())
	waitResult(t, ch)
	_, ok := <-ch
	assert.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	l := NewLoader()
	r := waitResult(t, l.Load(context.Background(), filepath.Join(t.TempDir(), "missing.stl"), DefaultOptions()))
	assert.Error(t, r.Err)
	assert.Nil(t, r.Node)
}

func TestLoadGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.stl")
	require.NoError(t, os.WriteFile(path, []byte("not a mesh"), 0o644))

	r := waitResult(t, NewLoader().Load(context.Background(), path, DefaultOptions()))
	assert.Error(t, r.Err)
	assert.Nil(t, r.Node)
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := waitResult(t, NewLoader().Load(ctx, writeTetra(t), DefaultOptions()))
	assert.True(t, errors.Is(r.Err, context.Canceled))
	assert.Nil(t, r.Node)
}

func TestLoadMeshCached(t *testing.T) {
	path := writeTetra(t)
	l := NewLoader()

	first, err := l.LoadMesh(path)
	require.NoError(t, err)
	second, err := l.LoadMesh(path)
	require.NoError(t, err)
	assert.Same(t, first, second)

	hits, misses := l.Cache().Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	l.Cache().Clear()
	hits, misses = l.Cache().Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}

func TestOptionsTransform(t *testing.T) {
	o := Options{Position: math.V3(1, 2, 3), Scale: 2}
	p := o.Transform().TransformVec3(math.V3(1, 1, 1))
	assert.True(t, p.ApproxEqual(math.V3(3, 4, 5), 1e-6), "got %v", p)

	zero := Options{}
	q := zero.Transform().TransformVec3(math.V3(1, 1, 1))
	assert.True(t, q.ApproxEqual(math.V3(1, 1, 1), 1e-6), "zero scale should mean unit scale, got %v", q)
}
