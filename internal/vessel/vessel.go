// Package vessel is the fixed catalog of anatomical tube paths.
//
// Control point Z values are stored relative to the entity's depth offset.
// Fixed per-point offsets are already baked in.
package vessel

import (
	"errors"
	"fmt"

	"github.com/Faultbox/veinview/pkg/math"
)

// ErrUnknownEntity is returned for codes outside the catalog.
var ErrUnknownEntity = errors.New("unknown entity")

// Path is an ordered list of spline control points.
type Path []math.Vec3

// NamedCurve is one catalog entity. Multi-part entities carry one Path per sub-mesh.
type NamedCurve struct {
	Code  string
	Label string
	Color uint32 // 0xRRGGBB
	Parts []Path
}

// Params are the user-editable parameters of one entity.
type Params struct {
	Radius         float32
	CoverageHeight float32
	DepthOffset    float32
}

var catalog = []NamedCurve{
	{
		Code:  "A",
		Label: "Angular veins (pair)",
		Color: 0xff69b4,
		Parts: []Path{
			{math.V3(1.1, 6, 0), math.V3(0.4, 5, 0), math.V3(0.4, 4, 0), math.V3(0.4, 3, 0), math.V3(1.1, 2, 0)},
			{math.V3(-1.0, 6, 0), math.V3(-0.3, 5, 0), math.V3(-0.3, 4, 0), math.V3(-0.3, 3, 0), math.V3(-1.0, 2, 0)},
		},
	},
	{
		Code:  "B",
		Label: "Inferior labial vein",
		Color: 0x2196f3,
		Parts: []Path{
			{math.V3(-2, 2.5, 0), math.V3(-1, 2, 0.2), math.V3(0, 2.5, 0.1), math.V3(1, 2, 0.2), math.V3(2, 2.5, 0)},
		},
	},
	{
		Code:  "C",
		Label: "Superior labial vein",
		Color: 0x9c27b0,
		Parts: []Path{
			{math.V3(-2, 3.5, 0), math.V3(-1, 3, 0.2), math.V3(0, 3.5, 0.1), math.V3(1, 3, 0.2), math.V3(2, 3.5, 0)},
		},
	},
}

// Get returns the catalog entry for code.
func Get(code string) (*NamedCurve, error) {
	for i := range catalog {
		if catalog[i].Code == code {
			c := catalog[i].clone()
			return &c, nil
		}
	}
	return nil, fmt.Errorf("vessel %q: %w", code, ErrUnknownEntity)
}

// Codes returns the entity codes in catalog order.
func Codes() []string {
	out := make([]string, len(catalog))
	for i, c := range catalog {
		out[i] = c.Code
	}
	return out
}

// All returns copies of every catalog entry in catalog order.
func All() []NamedCurve {
	out := make([]NamedCurve, len(catalog))
	for i, c := range catalog {
		out[i] = c.clone()
	}
	return out
}

// Translated returns the control points of every part with depth added to Z.
func (c *NamedCurve) Translated(depth float32) [][]math.Vec3 {
	out := make([][]math.Vec3, len(c.Parts))
	offset := math.V3(0, 0, depth)
	for i, p := range c.Parts {
		pts := make([]math.Vec3, len(p))
		for j, v := range p {
			pts[j] = v.Add(offset)
		}
		out[i] = pts
	}
	return out
}

// PointCount returns the total number of control points over all parts.
func (c *NamedCurve) PointCount() int {
	n := 0
	for _, p := range c.Parts {
		n += len(p)
	}
	return n
}

func (c NamedCurve) clone() NamedCurve {
	parts := make([]Path, len(c.Parts))
	for i, p := range c.Parts {
		parts[i] = append(Path(nil), p...)
	}
	c.Parts = parts
	return c
}
