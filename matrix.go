package clipmap

import "math"

// Transform2D represents an affine transform in the terrain's xz-plane.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*z + c
//	z' = d*x + e*z + f
//
// DecalLayer uses a Transform2D to place its rotated quad (spec.md §4,
// the decal's 6-DoF pose collapsed to the xz rotation and offset that
// matter for footprint math — pitch/roll/height do not affect which
// clipmap cells a decal touches).
type Transform2D struct {
	A, B, C float64
	D, E, F float64
}

// IdentityTransform returns the identity transform.
func IdentityTransform() Transform2D {
	return Transform2D{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// TranslateTransform creates a translation.
func TranslateTransform(x, z float64) Transform2D {
	return Transform2D{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: z,
	}
}

// ScaleTransform creates a scaling transform.
func ScaleTransform(x, z float64) Transform2D {
	return Transform2D{
		A: x, B: 0, C: 0,
		D: 0, E: z, F: 0,
	}
}

// RotateTransform creates a rotation about the origin (angle in radians,
// measured in the xz-plane — this is the decal's yaw).
func RotateTransform(angle float64) Transform2D {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Transform2D{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// Multiply composes two transforms (m * other).
func (m Transform2D) Multiply(other Transform2D) Transform2D {
	return Transform2D{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transform to a point.
func (m Transform2D) TransformPoint(p Vec2) Vec2 {
	return Vec2{
		X: m.A*p.X + m.B*p.Z + m.C,
		Z: m.D*p.X + m.E*p.Z + m.F,
	}
}

// TransformVector applies the transform to a vector (no translation).
func (m Transform2D) TransformVector(p Vec2) Vec2 {
	return Vec2{
		X: m.A*p.X + m.B*p.Z,
		Z: m.D*p.X + m.E*p.Z,
	}
}

// Invert returns the inverse transform, or the identity transform if m is
// not invertible (degenerate scale).
func (m Transform2D) Invert() Transform2D {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-10 {
		return IdentityTransform()
	}

	invDet := 1.0 / det
	return Transform2D{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}
}

// IsIdentity reports whether m is the identity transform.
func (m Transform2D) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}

// FootprintAABB returns the axis-aligned bounding box of a w×d quad
// (centered at the local origin) after m is applied, used by DecalLayer
// to compute its local AABB under rotation.
func (m Transform2D) FootprintAABB(w, d float64) AABB {
	hw, hd := w/2, d/2
	corners := [4]Vec2{
		m.TransformPoint(Vec2{X: -hw, Z: -hd}),
		m.TransformPoint(Vec2{X: hw, Z: -hd}),
		m.TransformPoint(Vec2{X: hw, Z: hd}),
		m.TransformPoint(Vec2{X: -hw, Z: hd}),
	}
	box := NewAABB(corners[0], corners[0])
	for _, c := range corners[1:] {
		box = box.Union(NewAABB(c, c))
	}
	return box
}
