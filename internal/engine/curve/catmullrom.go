// Package curve evaluates open centripetal Catmull-Rom splines through 3D control points.
package curve

import (
	"sort"

	"github.com/chewxy/math32"

	"github.com/Faultbox/veinview/pkg/math"
)

// LengthDivisions is the resolution of the arc-length lookup table.
const LengthDivisions = 200

const (
	// alpha 0.5 selects the centripetal parameterisation (exponent applied to squared distance).
	centripetalPow = 0.25
	minKnotSpacing = 1e-4
	tangentDelta   = 1e-4
)

// CatmullRom is an open centripetal Catmull-Rom spline.
// The first and last segments use mirrored phantom points.
type CatmullRom struct {
	points  []math.Vec3
	lengths []float32 // cumulative arc length, LengthDivisions+1 entries
}

// New creates a spline through points. Fewer than two points yield a
// degenerate curve that evaluates to the single point (or the origin).
func New(points []math.Vec3) *CatmullRom {
	c := &CatmullRom{points: append([]math.Vec3(nil), points...)}
	c.lengths = c.computeLengths(LengthDivisions)
	return c
}

// Refit creates a new spline through an already sampled polyline.
func Refit(points []math.Vec3) *CatmullRom {
	return New(points)
}

// ControlPoints returns a copy of the spline's control points.
func (c *CatmullRom) ControlPoints() []math.Vec3 {
	return append([]math.Vec3(nil), c.points...)
}

// Point evaluates the spline at parameter t in [0, 1].
func (c *CatmullRom) Point(t float32) math.Vec3 {
	l := len(c.points)
	switch l {
	case 0:
		return math.Vec3{}
	case 1:
		return c.points[0]
	}

	t = clamp01(t)
	p := float32(l-1) * t
	seg := int(math32.Floor(p))
	weight := p - float32(seg)
	if seg >= l-1 {
		seg = l - 2
		weight = 1
	}

	var p0, p3 math.Vec3
	if seg > 0 {
		p0 = c.points[seg-1]
	} else {
		p0 = c.points[0].Scale(2).Sub(c.points[1])
	}
	p1 := c.points[seg]
	p2 := c.points[seg+1]
	if seg+2 < l {
		p3 = c.points[seg+2]
	} else {
		p3 = c.points[l-1].Scale(2).Sub(c.points[l-2])
	}

	dt0 := math32.Pow(p0.DistanceSquared(p1), centripetalPow)
	dt1 := math32.Pow(p1.DistanceSquared(p2), centripetalPow)
	dt2 := math32.Pow(p2.DistanceSquared(p3), centripetalPow)

	if dt1 < minKnotSpacing {
		dt1 = 1
	}
	if dt0 < minKnotSpacing {
		dt0 = dt1
	}
	if dt2 < minKnotSpacing {
		dt2 = dt1
	}

	return math.Vec3{
		X: segment(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2).at(weight),
		Y: segment(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2).at(weight),
		Z: segment(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2).at(weight),
	}
}

// Points samples n points at evenly spaced parameters t = i/(n-1).
func (c *CatmullRom) Points(n int) []math.Vec3 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []math.Vec3{c.Point(0)}
	}
	out := make([]math.Vec3, n)
	for i := range out {
		out[i] = c.Point(float32(i) / float32(n-1))
	}
	return out
}

// Length returns the approximate arc length of the whole curve.
func (c *CatmullRom) Length() float32 {
	return c.lengths[len(c.lengths)-1]
}

// PointAt evaluates the spline at arc-length fraction u in [0, 1].
func (c *CatmullRom) PointAt(u float32) math.Vec3 {
	return c.Point(c.uToT(u))
}

// TangentAt returns the unit tangent at arc-length fraction u.
// A curve with no extent has a zero tangent.
func (c *CatmullRom) TangentAt(u float32) math.Vec3 {
	return c.tangent(c.uToT(u))
}

func (c *CatmullRom) tangent(t float32) math.Vec3 {
	t1 := t - tangentDelta
	t2 := t + tangentDelta
	if t1 < 0 {
		t1 = 0
	}
	if t2 > 1 {
		t2 = 1
	}
	return c.Point(t2).Sub(c.Point(t1)).Normalize()
}

func (c *CatmullRom) computeLengths(divisions int) []float32 {
	lengths := make([]float32, divisions+1)
	last := c.Point(0)
	var sum float32
	for i := 1; i <= divisions; i++ {
		cur := c.Point(float32(i) / float32(divisions))
		sum += cur.Distance(last)
		lengths[i] = sum
		last = cur
	}
	return lengths
}

// uToT maps an arc-length fraction to the curve parameter using the length table.
func (c *CatmullRom) uToT(u float32) float32 {
	u = clamp01(u)
	n := len(c.lengths)
	total := c.lengths[n-1]
	if total == 0 {
		return u
	}
	target := u * total

	// first entry with cumulative length >= target
	i := sort.Search(n, func(k int) bool { return c.lengths[k] >= target })
	if i == 0 {
		return 0
	}
	if i >= n {
		return 1
	}
	before := c.lengths[i-1]
	span := c.lengths[i] - before
	frac := float32(0)
	if span > 0 {
		frac = (target - before) / span
	}
	return (float32(i-1) + frac) / float32(n-1)
}

// cubic holds the coefficients c0 + c1*t + c2*t^2 + c3*t^3.
type cubic struct {
	c0, c1, c2, c3 float32
}

func (p cubic) at(t float32) float32 {
	t2 := t * t
	return p.c0 + p.c1*t + p.c2*t2 + p.c3*t2*t
}

// segment builds the non-uniform Catmull-Rom cubic between x1 and x2.
func segment(x0, x1, x2, x3, dt0, dt1, dt2 float32) cubic {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	t1 *= dt1
	t2 *= dt1

	return cubic{
		c0: x1,
		c1: t1,
		c2: -3*x1 + 3*x2 - 2*t1 - t2,
		c3: 2*x1 - 2*x2 + t1 + t2,
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
