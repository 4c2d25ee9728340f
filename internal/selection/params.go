package selection

import (
	"fmt"
	"strings"

	"github.com/Faultbox/veinview/internal/vessel"
)

// Field names one editable parameter.
type Field int

const (
	FieldRadius Field = iota
	FieldHeight
	FieldDepth
)

var fieldNames = [...]string{"radius", "height", "depth"}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// ParseField maps "radius", "height" (or "length") and "depth" to a Field.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(s) {
	case "radius", "diameter":
		return FieldRadius, nil
	case "height", "length":
		return FieldHeight, nil
	case "depth", "z":
		return FieldDepth, nil
	}
	return 0, fmt.Errorf("field %q: %w", s, ErrUnknownField)
}

// Range bounds one field.
type Range struct {
	Min, Max, Step float32
}

// Clamp limits v to the range. A range with Max <= Min does not clamp.
func (r Range) Clamp(v float32) float32 {
	if r.Max <= r.Min {
		return v
	}
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Limits holds the range of every field.
type Limits struct {
	Radius Range
	Height Range
	Depth  Range
}

// DefaultLimits mirrors the slider ranges of the viewer.
func DefaultLimits() Limits {
	return Limits{
		Radius: Range{Min: 0.01, Max: 0.5, Step: 0.01},
		Height: Range{Min: 0.1, Max: 6, Step: 0.1},
		Depth:  Range{Min: -5, Max: 5, Step: 0.1},
	}
}

// Range returns the range of field f.
func (l Limits) Range(f Field) (Range, error) {
	switch f {
	case FieldRadius:
		return l.Radius, nil
	case FieldHeight:
		return l.Height, nil
	case FieldDepth:
		return l.Depth, nil
	}
	return Range{}, fmt.Errorf("%v: %w", f, ErrUnknownField)
}

// Get reads field f of p.
func Get(p vessel.Params, f Field) (float32, error) {
	switch f {
	case FieldRadius:
		return p.Radius, nil
	case FieldHeight:
		return p.CoverageHeight, nil
	case FieldDepth:
		return p.DepthOffset, nil
	}
	return 0, fmt.Errorf("%v: %w", f, ErrUnknownField)
}

func set(p *vessel.Params, f Field, v float32) {
	switch f {
	case FieldRadius:
		p.Radius = v
	case FieldHeight:
		p.CoverageHeight = v
	case FieldDepth:
		p.DepthOffset = v
	}
}

// ParamCache remembers the parameters of every entity independently.
// Entities never edited report the defaults.
type ParamCache struct {
	defaults vessel.Params
	values   map[string]vessel.Params
}

// NewParamCache creates a cache seeded with defaults for every catalog entity.
func NewParamCache(defaults vessel.Params) *ParamCache {
	c := &ParamCache{
		defaults: defaults,
		values:   make(map[string]vessel.Params),
	}
	for _, code := range vessel.Codes() {
		c.values[code] = defaults
	}
	return c
}

// Params returns the cached parameters of code.
func (c *ParamCache) Params(code string) vessel.Params {
	if p, ok := c.values[code]; ok {
		return p
	}
	return c.defaults
}

// Set stores the parameters of code.
func (c *ParamCache) Set(code string, p vessel.Params) {
	c.values[code] = p
}

// Defaults returns the parameters new entities start with.
func (c *ParamCache) Defaults() vessel.Params {
	return c.defaults
}
