// Package lighting describes the fixed light rig used by the viewer.
package lighting

import "github.com/Faultbox/veinview/pkg/math"

// RGB converts a 0xRRGGBB colour to normalized components.
func RGB(hex uint32) [3]float32 {
	return [3]float32{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

// Directional is a light infinitely far away, shining from Position towards the origin.
type Directional struct {
	Color     [3]float32
	Intensity float32
	Position  math.Vec3
}

// Direction returns the normalized direction from the origin towards the light.
func (d Directional) Direction() math.Vec3 {
	return d.Position.Normalize()
}

// Radiance returns the colour scaled by intensity, as uploaded to shaders.
func (d Directional) Radiance() [3]float32 {
	return [3]float32{d.Color[0] * d.Intensity, d.Color[1] * d.Intensity, d.Color[2] * d.Intensity}
}

// Rig is the complete lighting of a scene.
type Rig struct {
	Background [3]float32
	Ambient    [3]float32
	Sun        Directional
}

// Default returns a dark grey background, 0x404040 ambient and a
// half-intensity white light from (1, 1, 1).
func Default() Rig {
	return Rig{
		Background: RGB(0x2a2a2a),
		Ambient:    RGB(0x404040),
		Sun: Directional{
			Color:     RGB(0xffffff),
			Intensity: 0.5,
			Position:  math.V3(1, 1, 1),
		},
	}
}
