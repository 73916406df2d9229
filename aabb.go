package clipmap

import "math"

// AABB is an axis-aligned rectangle in the world xz-plane.
//
// The zero value is not a valid AABB (Min == Max == {0,0} describes a
// degenerate point, not "no rectangle"); use [EmptyAABB] for "nothing" and
// [InfiniteAABB] for "everywhere" (the ±∞ sentinel spec.md §9 calls for in
// place of the source's TerrainLimit = int.MaxValue trick).
type AABB struct {
	Min, Max Vec2
}

// NewAABB builds an AABB from two corners, normalizing so Min <= Max
// componentwise regardless of the order the corners were given in.
func NewAABB(a, b Vec2) AABB {
	return AABB{
		Min: Vec2{X: math.Min(a.X, b.X), Z: math.Min(a.Z, b.Z)},
		Max: Vec2{X: math.Max(a.X, b.X), Z: math.Max(a.Z, b.Z)},
	}
}

// EmptyAABB returns a degenerate rectangle that contains no points and
// intersects nothing, used as the identity element for Union.
func EmptyAABB() AABB {
	return AABB{
		Min: Vec2{X: math.Inf(1), Z: math.Inf(1)},
		Max: Vec2{X: math.Inf(-1), Z: math.Inf(-1)},
	}
}

// InfiniteAABB returns the sentinel "covers everywhere" rectangle, in
// place of a large finite constant. Layers with no explicit bounds do
// not use it: they fall back to their tile's AABB (see effectiveAABB).
func InfiniteAABB() AABB {
	return AABB{
		Min: Vec2{X: math.Inf(-1), Z: math.Inf(-1)},
		Max: Vec2{X: math.Inf(1), Z: math.Inf(1)},
	}
}

// IsInfinite reports whether the rectangle is the InfiniteAABB sentinel.
func (a AABB) IsInfinite() bool {
	return math.IsInf(a.Min.X, -1) && math.IsInf(a.Min.Z, -1) &&
		math.IsInf(a.Max.X, 1) && math.IsInf(a.Max.Z, 1)
}

// IsEmpty reports whether the rectangle has zero or negative area.
func (a AABB) IsEmpty() bool {
	return a.Max.X <= a.Min.X || a.Max.Z <= a.Min.Z
}

// Width returns the extent along X.
func (a AABB) Width() float64 { return a.Max.X - a.Min.X }

// Depth returns the extent along Z.
func (a AABB) Depth() float64 { return a.Max.Z - a.Min.Z }

// Center returns the midpoint of the rectangle.
func (a AABB) Center() Vec2 {
	return Vec2{X: (a.Min.X + a.Max.X) / 2, Z: (a.Min.Z + a.Max.Z) / 2}
}

// Grow returns a rectangle expanded by amount on every side. A negative
// amount shrinks it; the result may become empty.
func (a AABB) Grow(amount float64) AABB {
	return AABB{
		Min: Vec2{X: a.Min.X - amount, Z: a.Min.Z - amount},
		Max: Vec2{X: a.Max.X + amount, Z: a.Max.Z + amount},
	}
}

// Translate returns the rectangle shifted by delta.
func (a AABB) Translate(delta Vec2) AABB {
	return AABB{Min: a.Min.Add(delta), Max: a.Max.Add(delta)}
}

// ContainsPoint reports whether p lies within the closed rectangle.
func (a AABB) ContainsPoint(p Vec2) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X && p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// Contains reports whether a fully contains other (closed rectangles).
func (a AABB) Contains(other AABB) bool {
	if other.IsEmpty() {
		return true
	}
	return other.Min.X >= a.Min.X && other.Max.X <= a.Max.X &&
		other.Min.Z >= a.Min.Z && other.Max.Z <= a.Max.Z
}

// Intersects reports whether the two closed rectangles overlap (sharing
// only an edge or corner counts as intersecting).
func (a AABB) Intersects(other AABB) bool {
	return a.Min.X <= other.Max.X && a.Max.X >= other.Min.X &&
		a.Min.Z <= other.Max.Z && a.Max.Z >= other.Min.Z
}

// Intersect returns the overlapping region of a and other, or an empty
// AABB if they don't overlap.
func (a AABB) Intersect(other AABB) AABB {
	r := AABB{
		Min: Vec2{X: math.Max(a.Min.X, other.Min.X), Z: math.Max(a.Min.Z, other.Min.Z)},
		Max: Vec2{X: math.Min(a.Max.X, other.Max.X), Z: math.Min(a.Max.Z, other.Max.Z)},
	}
	if r.IsEmpty() {
		return EmptyAABB()
	}
	return r
}

// Union returns the smallest rectangle containing both a and other.
func (a AABB) Union(other AABB) AABB {
	if a.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return a
	}
	return AABB{
		Min: Vec2{X: math.Min(a.Min.X, other.Min.X), Z: math.Min(a.Min.Z, other.Min.Z)},
		Max: Vec2{X: math.Max(a.Max.X, other.Max.X), Z: math.Max(a.Max.Z, other.Max.Z)},
	}
}

// ClipAgainst splits a into up to four disjoint rectangles whose union is
// a ∖ other (the part of a not covered by other). Returns a single-element
// slice containing a unchanged if the two don't overlap, and nil if other
// fully contains a.
//
// The four pieces are emitted top, bottom, left, right (in that order) of
// the overlapping band, matching the classic "clip a rect by a rect"
// sweep used to keep invalid-region lists pairwise disjoint (spec.md §4.1).
func (a AABB) ClipAgainst(other AABB) []AABB {
	overlap := a.Intersect(other)
	if overlap.IsEmpty() {
		return []AABB{a}
	}
	if overlap == a {
		return nil
	}

	var out []AABB

	if overlap.Min.Z > a.Min.Z {
		out = append(out, AABB{
			Min: Vec2{X: a.Min.X, Z: a.Min.Z},
			Max: Vec2{X: a.Max.X, Z: overlap.Min.Z},
		})
	}
	if overlap.Max.Z < a.Max.Z {
		out = append(out, AABB{
			Min: Vec2{X: a.Min.X, Z: overlap.Max.Z},
			Max: Vec2{X: a.Max.X, Z: a.Max.Z},
		})
	}
	if overlap.Min.X > a.Min.X {
		out = append(out, AABB{
			Min: Vec2{X: a.Min.X, Z: overlap.Min.Z},
			Max: Vec2{X: overlap.Min.X, Z: overlap.Max.Z},
		})
	}
	if overlap.Max.X < a.Max.X {
		out = append(out, AABB{
			Min: Vec2{X: overlap.Max.X, Z: overlap.Min.Z},
			Max: Vec2{X: a.Max.X, Z: overlap.Max.Z},
		})
	}
	return out
}
