package selection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/veinview/internal/vessel"
)

func TestParseField(t *testing.T) {
	tests := []struct {
		in   string
		want Field
	}{
		{"radius", FieldRadius},
		{"Diameter", FieldRadius},
		{"height", FieldHeight},
		{"length", FieldHeight},
		{"depth", FieldDepth},
		{"Z", FieldDepth},
	}
	for _, tt := range tests {
		got, err := ParseField(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseField(%q): got (%v, %v), want %v", tt.in, got, err, tt.want)
		}
	}

	_, err := ParseField("colour")
	assert.True(t, errors.Is(err, ErrUnknownField))
}

func TestFieldString(t *testing.T) {
	assert.Equal(t, "radius", FieldRadius.String())
	assert.Equal(t, "depth", FieldDepth.String())
	assert.Equal(t, "Field(7)", Field(7).String())
}

func TestRangeClamp(t *testing.T) {
	r := Range{Min: 1, Max: 2}
	assert.Equal(t, float32(1), r.Clamp(0))
	assert.Equal(t, float32(1.5), r.Clamp(1.5))
	assert.Equal(t, float32(2), r.Clamp(3))

	open := Range{}
	assert.Equal(t, float32(-7), open.Clamp(-7))
}

func TestParamCache(t *testing.T) {
	defaults := vessel.Params{Radius: 0.1, CoverageHeight: 6, DepthOffset: -1}
	c := NewParamCache(defaults)

	for _, code := range vessel.Codes() {
		assert.Equal(t, defaults, c.Params(code))
	}

	c.Set("B", vessel.Params{Radius: 0.04, CoverageHeight: 4, DepthOffset: -0.8})
	assert.Equal(t, float32(0.04), c.Params("B").Radius)
	assert.Equal(t, defaults, c.Params("A"))
	assert.Equal(t, defaults, c.Params("unknown"))
	assert.Equal(t, defaults, c.Defaults())
}

func TestGetField(t *testing.T) {
	p := vessel.Params{Radius: 1, CoverageHeight: 2, DepthOffset: 3}
	for f, want := range map[Field]float32{FieldRadius: 1, FieldHeight: 2, FieldDepth: 3} {
		got, err := Get(p, f)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := Get(p, Field(-1))
	assert.True(t, errors.Is(err, ErrUnknownField))
}
