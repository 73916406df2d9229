package clipmap

// RGBA is a 4-component vector, used both as a color and as a generic
// MRT clear value (spec.md §3's `[Vec4; 4]` clear values — one per
// render-target slot, not necessarily a color at all for slots that pack
// height/normal data). Components are unrestricted float64, matching the
// GPU's MRT formats rather than clamping to a [0,1] display range.
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque value from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// RGBA4 creates a value from all four components.
func RGBA4(r, g, b, a float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

// Lerp performs linear interpolation between two values.
func (c RGBA) Lerp(other RGBA, t float64) RGBA {
	return RGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// Array returns the four components as a [4]float64. RasterBackend.Clear
// takes [4]RGBA values, not this array.
func (c RGBA) Array() [4]float64 {
	return [4]float64{c.R, c.G, c.B, c.A}
}

// Common values.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Transparent = RGBA4(0, 0, 0, 0)
)
