package scene

// Color is a linear RGBA colour.
type Color struct {
	R, G, B, A float32
}

// RGB returns an opaque colour.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

var (
	White  = RGB(1, 1, 1)
	Blue   = RGB(0, 0, 1)
	Yellow = RGB(1, 1, 0)
	Orange = RGB(1, 0.65, 0)
)

// Material describes how a mesh surface is shaded.
type Material struct {
	BaseColor Color
	Emissive  Color
	Unlit     bool
}

// NewMaterial returns a lit material of the given base colour.
func NewMaterial(base Color) Material {
	return Material{BaseColor: base}
}

// Marker returns an unlit, glowing material used for gizmo-like meshes.
func Marker(c Color) Material {
	return Material{BaseColor: c, Emissive: c, Unlit: true}
}
