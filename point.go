package clipmap

import "math"

// Vec2 represents a point or vector in the world xz-plane.
// Y (world height/up) never appears in clipmap math — only the
// horizontal footprint of tiles, layers, and clipmap levels matters.
type Vec2 struct {
	X, Z float64
}

// V2 is a convenience constructor for Vec2.
func V2(x, z float64) Vec2 {
	return Vec2{X: x, Z: z}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Z: v.Z + o.Z}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Z: v.Z - o.Z}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{X: v.X * s, Z: v.Z * s}
}

// Length returns the Euclidean length of the vector.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Z*v.Z)
}

// Lerp performs linear interpolation between v and o.
// t=0 returns v, t=1 returns o.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{
		X: v.X + (o.X-v.X)*t,
		Z: v.Z + (o.Z-v.Z)*t,
	}
}
