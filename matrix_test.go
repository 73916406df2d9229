package clipmap

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func vecAlmostEqual(a, b Vec2) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Z, b.Z)
}

func TestIdentityTransformPointIsUnchanged(t *testing.T) {
	p := Vec2{X: 3, Z: -7}
	if got := IdentityTransform().TransformPoint(p); !vecAlmostEqual(got, p) {
		t.Fatalf("TransformPoint(identity) = %v, want %v", got, p)
	}
}

func TestTranslateTransform(t *testing.T) {
	tr := TranslateTransform(5, -2)
	got := tr.TransformPoint(Vec2{X: 1, Z: 1})
	want := Vec2{X: 6, Z: -1}
	if !vecAlmostEqual(got, want) {
		t.Fatalf("TransformPoint = %v, want %v", got, want)
	}
}

func TestScaleTransform(t *testing.T) {
	tr := ScaleTransform(2, 3)
	got := tr.TransformPoint(Vec2{X: 4, Z: 5})
	want := Vec2{X: 8, Z: 15}
	if !vecAlmostEqual(got, want) {
		t.Fatalf("TransformPoint = %v, want %v", got, want)
	}
}

func TestRotateTransformQuarterTurn(t *testing.T) {
	tr := RotateTransform(math.Pi / 2)
	got := tr.TransformPoint(Vec2{X: 1, Z: 0})
	want := Vec2{X: 0, Z: 1}
	if !vecAlmostEqual(got, want) {
		t.Fatalf("rotate by pi/2: got %v, want %v", got, want)
	}
}

func TestMultiplyComposesTransforms(t *testing.T) {
	translate := TranslateTransform(10, 0)
	scale := ScaleTransform(2, 2)
	combined := translate.Multiply(scale)

	got := combined.TransformPoint(Vec2{X: 1, Z: 1})
	want := Vec2{X: 12, Z: 2}
	if !vecAlmostEqual(got, want) {
		t.Fatalf("combined.TransformPoint = %v, want %v", got, want)
	}
}

func TestInvertRoundTrips(t *testing.T) {
	tr := RotateTransform(0.7).Multiply(TranslateTransform(3, -4))
	inv := tr.Invert()

	p := Vec2{X: 2, Z: 5}
	roundTripped := inv.TransformPoint(tr.TransformPoint(p))
	if !vecAlmostEqual(roundTripped, p) {
		t.Fatalf("round trip = %v, want %v", roundTripped, p)
	}
}

func TestInvertDegenerateReturnsIdentity(t *testing.T) {
	degenerate := ScaleTransform(0, 0)
	if got := degenerate.Invert(); !got.IsIdentity() {
		t.Fatalf("Invert(degenerate) = %v, want identity", got)
	}
}

func TestIsIdentity(t *testing.T) {
	if !IdentityTransform().IsIdentity() {
		t.Fatal("IdentityTransform().IsIdentity() = false")
	}
	if TranslateTransform(1, 0).IsIdentity() {
		t.Fatal("translate reported as identity")
	}
}

func TestFootprintAABBAxisAligned(t *testing.T) {
	box := IdentityTransform().FootprintAABB(4, 2)
	want := NewAABB(Vec2{X: -2, Z: -1}, Vec2{X: 2, Z: 1})
	if box != want {
		t.Fatalf("FootprintAABB = %v, want %v", box, want)
	}
}

func TestFootprintAABBRotatedGrowsBeyondOriginalExtent(t *testing.T) {
	axisAligned := IdentityTransform().FootprintAABB(4, 2)
	rotated := RotateTransform(math.Pi / 4).FootprintAABB(4, 2)

	if rotated.Width() <= axisAligned.Width() {
		t.Fatalf("rotated width %v should exceed axis-aligned width %v", rotated.Width(), axisAligned.Width())
	}
}

func TestFootprintAABBTranslated(t *testing.T) {
	tr := TranslateTransform(10, 20)
	box := tr.FootprintAABB(2, 2)
	want := NewAABB(Vec2{X: 9, Z: 19}, Vec2{X: 11, Z: 21})
	if box != want {
		t.Fatalf("FootprintAABB = %v, want %v", box, want)
	}
}
