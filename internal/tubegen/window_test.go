package tubegen

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/veinview/pkg/math"
)

func TestSampleCount(t *testing.T) {
	tests := []struct {
		height float32
		want   int
	}{
		{6, 64},
		{1, 10},
		{3, 32},
		{0.6, 6},
		{0.01, 6},
		{0, 6},
		{-5, 6},
		{12, 64},
		{float32(gomath.Inf(1)), 64},
		{float32(gomath.NaN()), 6},
	}

	for _, tt := range tests {
		if got := SampleCount(tt.height); got != tt.want {
			t.Errorf("SampleCount(%v): got %d, want %d", tt.height, got, tt.want)
		}
	}
}

func TestCoverageFractionClamped(t *testing.T) {
	assert.Equal(t, float32(MinCoverage), CoverageFraction(0))
	assert.Equal(t, float32(1), CoverageFraction(100))
	assert.InDelta(t, 0.5, CoverageFraction(3), 1e-6)
}

func TestWindow(t *testing.T) {
	tests := []struct {
		height     float32
		start, end int
	}{
		{6, 0, 63},
		{1, 27, 36},
		{3, 16, 47},
		{0, 29, 34},
	}

	for _, tt := range tests {
		start, end := Window(tt.height)
		if start != tt.start || end != tt.end {
			t.Errorf("Window(%v): got [%d, %d], want [%d, %d]", tt.height, start, end, tt.start, tt.end)
		}
		if n := end - start + 1; n != SampleCount(tt.height) {
			t.Errorf("Window(%v) spans %d indices, want %d", tt.height, n, SampleCount(tt.height))
		}
	}
}

func TestWindowGrowsFromCenter(t *testing.T) {
	prevStart, prevEnd := Samples/2, Samples/2-1
	for h := float32(0.1); h <= 6.05; h += 0.1 {
		start, end := Window(h)

		assert.GreaterOrEqual(t, start, 0)
		assert.LessOrEqual(t, end, Samples-1)
		assert.LessOrEqual(t, start, Samples/2, "height %v", h)
		assert.GreaterOrEqual(t, end, Samples/2, "height %v", h)
		assert.LessOrEqual(t, start, prevStart, "window must never shrink (height %v)", h)
		assert.GreaterOrEqual(t, end, prevEnd, "window must never shrink (height %v)", h)

		// both sides stay within one index of each other until saturation
		left, right := Samples/2-start, end-Samples/2
		if end < Samples-1 {
			assert.InDelta(t, left, right, 1, "height %v", h)
		}
		prevStart, prevEnd = start, end
	}
}

func TestWindowSaturates(t *testing.T) {
	start, end := window(Samples, 63)
	assert.Equal(t, 1, start)
	assert.Equal(t, 63, end)

	start, end = window(Samples, 100)
	assert.Equal(t, 0, start)
	assert.Equal(t, 63, end)
}

func dense(n int) []math.Vec3 {
	out := make([]math.Vec3, n)
	for i := range out {
		out[i] = math.V3(float32(i), 0, 0)
	}
	return out
}

func TestPartialPoints(t *testing.T) {
	pts := PartialPoints(dense(Samples), 1)
	assert.Len(t, pts, 10)
	assert.Equal(t, float32(27), pts[0].X)
	assert.Equal(t, float32(36), pts[len(pts)-1].X)

	full := PartialPoints(dense(Samples), 6)
	assert.Len(t, full, Samples)
}

func TestPartialPointsDoesNotAlias(t *testing.T) {
	src := dense(Samples)
	pts := PartialPoints(src, 6)
	pts[0].X = -1
	assert.Equal(t, float32(0), src[0].X)
}

func TestPartialPointsDegenerate(t *testing.T) {
	assert.Len(t, PartialPoints(nil, 3), 2)

	one := PartialPoints([]math.Vec3{math.V3(1, 2, 3)}, 3)
	assert.Equal(t, []math.Vec3{math.V3(1, 2, 3), math.V3(1, 2, 3)}, one)

	two := PartialPoints(dense(2), 0)
	assert.Len(t, two, 2)

	short := PartialPoints(dense(5), 0)
	assert.Len(t, short, 2)
}
