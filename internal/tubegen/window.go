// Package tubegen turns catalog paths into partial tube meshes.
//
// Coverage is measured in sample indices, not arc length. The realized
// window grows outward from the middle sample as the coverage height rises.
package tubegen

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/veinview/pkg/math"
)

const (
	// Samples is the resolution of the dense polyline taken from each path.
	Samples = 64
	// ReferenceMaxHeight normalizes the coverage height of every entity.
	ReferenceMaxHeight = 6.0
	// MinCoverage is the smallest fraction of the path that is realized.
	MinCoverage = 0.1

	RadialSegments  = 32
	TubularSegments = 64
)

// CoverageFraction maps a coverage height onto [MinCoverage, 1].
func CoverageFraction(height float32) float32 {
	if math32.IsNaN(height) {
		return MinCoverage
	}
	return math32.Max(MinCoverage, math32.Min(height/ReferenceMaxHeight, 1))
}

// SampleCount returns how many dense samples are kept for a coverage height.
func SampleCount(height float32) int {
	n := int(math32.Floor(Samples * CoverageFraction(height)))
	if n < 2 {
		n = 2
	}
	return n
}

// Window returns the inclusive sample index range kept for a coverage height.
func Window(height float32) (start, end int) {
	return window(Samples, SampleCount(height))
}

// window picks count consecutive indices out of n, starting at n/2 - count/2
// and shifted back inside [0, n-1] when it overruns.
func window(n, count int) (start, end int) {
	if count > n {
		count = n
	}
	start = n/2 - count/2
	end = start + count - 1
	if end > n-1 {
		start -= end - (n - 1)
		end = n - 1
	}
	if start < 0 {
		start = 0
	}
	return start, end
}

// PartialPoints returns the windowed run of dense for a coverage height.
// The result always has at least two points.
func PartialPoints(dense []math.Vec3, height float32) []math.Vec3 {
	switch len(dense) {
	case 0:
		return []math.Vec3{{}, {}}
	case 1:
		return []math.Vec3{dense[0], dense[0]}
	}

	count := SampleCount(height)
	if len(dense) != Samples {
		count = int(math32.Floor(float32(len(dense)) * CoverageFraction(height)))
		if count < 2 {
			count = 2
		}
	}
	start, end := window(len(dense), count)
	return append([]math.Vec3(nil), dense[start:end+1]...)
}
