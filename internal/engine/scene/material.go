package scene

import "github.com/Faultbox/veinview/internal/engine/lighting"

// Colour constants of the built-in materials.
const (
	HighlightColor = 0xffd54f
	FaceColor      = 0xcccccc
)

// Material describes how a node is shaded. All materials are flat-shaded Phong.
type Material struct {
	Name        string
	Color       [3]float32
	Opacity     float32
	DoubleSided bool
	DepthWrite  bool
}

// Transparent reports whether the material needs blending.
func (m *Material) Transparent() bool {
	return m.Opacity < 1
}

// Opaque returns a single-sided opaque material of the given 0xRRGGBB colour.
func Opaque(name string, hex uint32) *Material {
	return &Material{
		Name:       name,
		Color:      lighting.RGB(hex),
		Opacity:    1,
		DepthWrite: true,
	}
}

// Highlight returns the material applied to the selected entity.
func Highlight() *Material {
	return Opaque("highlight", HighlightColor)
}

// Face returns the translucent double-sided material of the imported face mesh.
// It does not write depth so tubes behind it stay visible.
func Face(opacity float32) *Material {
	return &Material{
		Name:        "face",
		Color:       lighting.RGB(FaceColor),
		Opacity:     opacity,
		DoubleSided: true,
	}
}
