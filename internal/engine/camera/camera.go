// Package camera provides the orbit camera used to inspect the diagram.
package camera

import (
	gomath "math"

	"github.com/chewxy/math32"

	"github.com/Faultbox/veinview/pkg/math"
)

// Settings configures an OrbitCamera.
type Settings struct {
	FOV             float32 // vertical field of view in degrees
	Near, Far       float32
	Distance        float32 // initial distance from the center
	MinDistance     float32
	MaxDistance     float32
	DragSensitivity float32
	ZoomSensitivity float32
}

// DefaultSettings returns a 75 degree perspective camera 14 units in front of the origin.
func DefaultSettings() Settings {
	return Settings{
		FOV:             75,
		Near:            0.1,
		Far:             1000,
		Distance:        14,
		MinDistance:     5,
		MaxDistance:     20,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// maxPitch keeps the camera off the poles where LookAt degenerates.
const maxPitch = gomath.Pi/2 - 0.01

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32
	RotationX float32 // pitch, radians
	RotationY float32 // yaw, radians

	settings Settings
}

// NewOrbitCamera creates a camera in its initial state.
func NewOrbitCamera(s Settings) *OrbitCamera {
	c := &OrbitCamera{settings: s}
	c.Reset()
	return c
}

// Reset restores the initial position and orientation.
func (c *OrbitCamera) Reset() {
	c.Center = math.Vec3{}
	c.Distance = c.clampDistance(c.settings.Distance)
	c.RotationX = 0
	c.RotationY = 0
}

// Settings returns the configuration the camera was created with.
func (c *OrbitCamera) Settings() Settings {
	return c.settings
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sinX, cosX := math32.Sincos(c.RotationX)
	sinY, cosY := math32.Sincos(c.RotationY)
	return c.Center.Add(math.Vec3{
		X: c.Distance * cosX * sinY,
		Y: c.Distance * sinX,
		Z: c.Distance * cosX * cosY,
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.settings.FOV*gomath.Pi/180, aspect, c.settings.Near, c.settings.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection(aspect float32) math.Mat4 {
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix())
}

// InverseViewProjection returns the matrix that maps clip space back to world space.
func (c *OrbitCamera) InverseViewProjection(aspect float32) math.Mat4 {
	return c.ViewProjection(aspect).Inverse()
}

// HandleDrag updates rotation based on a pointer drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.settings.DragSensitivity
	c.RotationX += deltaY * c.settings.DragSensitivity
	c.RotationX = math32.Max(-maxPitch, math32.Min(maxPitch, c.RotationX))
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = c.clampDistance(c.Distance - delta*c.Distance*c.settings.ZoomSensitivity)
}

func (c *OrbitCamera) clampDistance(d float32) float32 {
	if c.settings.MinDistance > 0 && d < c.settings.MinDistance {
		d = c.settings.MinDistance
	}
	if c.settings.MaxDistance > 0 && d > c.settings.MaxDistance {
		d = c.settings.MaxDistance
	}
	return d
}
