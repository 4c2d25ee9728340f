package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/veinview/pkg/math"
)

func TestInitialPosition(t *testing.T) {
	c := NewOrbitCamera(DefaultSettings())
	assert.True(t, c.Position().ApproxEqual(math.V3(0, 0, 14), 1e-5), "got %v", c.Position())
}

func TestZoomClamped(t *testing.T) {
	c := NewOrbitCamera(DefaultSettings())

	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	assert.Equal(t, float32(5), c.Distance)

	for i := 0; i < 100; i++ {
		c.HandleZoom(-1)
	}
	assert.Equal(t, float32(20), c.Distance)
}

func TestDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera(DefaultSettings())
	c.HandleDrag(0, 1e6)
	assert.InDelta(t, maxPitch, c.RotationX, 1e-5)
	c.HandleDrag(0, -1e6)
	assert.InDelta(t, -maxPitch, c.RotationX, 1e-5)
}

func TestDragOrbitsAtConstantDistance(t *testing.T) {
	c := NewOrbitCamera(DefaultSettings())
	c.HandleDrag(120, -40)
	assert.InDelta(t, 14, c.Position().Length(), 1e-4)
}

func TestReset(t *testing.T) {
	c := NewOrbitCamera(DefaultSettings())
	c.HandleDrag(300, 200)
	c.HandleZoom(3)
	c.Center = math.V3(1, 2, 3)

	c.Reset()
	assert.Equal(t, math.Vec3{}, c.Center)
	assert.Equal(t, float32(14), c.Distance)
	assert.Zero(t, c.RotationX)
	assert.Zero(t, c.RotationY)
}

func TestInverseViewProjectionRoundTrip(t *testing.T) {
	c := NewOrbitCamera(DefaultSettings())
	c.HandleDrag(50, 30)

	vp := c.ViewProjection(1.5)
	inv := c.InverseViewProjection(1.5)
	p := math.V3(0.5, 2, -1)

	back := inv.TransformVec3(vp.TransformVec3(p))
	assert.True(t, back.ApproxEqual(p, 1e-3), "got %v, want %v", back, p)
}

func TestProjectionBadAspect(t *testing.T) {
	c := NewOrbitCamera(DefaultSettings())
	assert.Equal(t, c.ProjectionMatrix(1), c.ProjectionMatrix(0))
}
