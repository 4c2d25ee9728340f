package picking

import (
	gomath "math"

	"github.com/chewxy/math32"
)

// OffsetCount is the number of retry positions tried around a missed pick.
const OffsetCount = 8

// Offsets returns the screen-space retry offsets for a missed pick: eight
// points on a circle of the given pixel radius at 45 degree steps, starting
// at +X and turning counter-clockwise.
func Offsets(radius float32) [OffsetCount][2]float32 {
	var out [OffsetCount][2]float32
	for i := range out {
		sin, cos := math32.Sincos(float32(i) * gomath.Pi / 4)
		out[i] = [2]float32{radius * cos, radius * sin}
	}
	return out
}
