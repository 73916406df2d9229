package clipmap

import "testing"

func TestNewAABBNormalizesCorners(t *testing.T) {
	a := NewAABB(Vec2{X: 5, Z: -5}, Vec2{X: -5, Z: 5})
	want := AABB{Min: Vec2{X: -5, Z: -5}, Max: Vec2{X: 5, Z: 5}}
	if a != want {
		t.Fatalf("NewAABB = %v, want %v", a, want)
	}
}

func TestEmptyAABBIsEmpty(t *testing.T) {
	if !EmptyAABB().IsEmpty() {
		t.Fatal("EmptyAABB().IsEmpty() = false")
	}
}

func TestInfiniteAABBContainsEverything(t *testing.T) {
	inf := InfiniteAABB()
	if !inf.IsInfinite() {
		t.Fatal("IsInfinite() = false")
	}
	if !inf.Contains(NewAABB(Vec2{X: -1e9, Z: -1e9}, Vec2{X: 1e9, Z: 1e9})) {
		t.Fatal("InfiniteAABB does not contain a huge finite rect")
	}
}

func TestWidthAndDepth(t *testing.T) {
	a := NewAABB(Vec2{X: 0, Z: 0}, Vec2{X: 4, Z: 2})
	if a.Width() != 4 {
		t.Fatalf("Width() = %v, want 4", a.Width())
	}
	if a.Depth() != 2 {
		t.Fatalf("Depth() = %v, want 2", a.Depth())
	}
}

func TestCenter(t *testing.T) {
	a := NewAABB(Vec2{X: 0, Z: 0}, Vec2{X: 4, Z: 2})
	if c := a.Center(); c != (Vec2{X: 2, Z: 1}) {
		t.Fatalf("Center() = %v, want (2,1)", c)
	}
}

func TestGrow(t *testing.T) {
	a := NewAABB(Vec2{X: 0, Z: 0}, Vec2{X: 4, Z: 4})
	grown := a.Grow(1)
	want := NewAABB(Vec2{X: -1, Z: -1}, Vec2{X: 5, Z: 5})
	if grown != want {
		t.Fatalf("Grow(1) = %v, want %v", grown, want)
	}

	shrunk := a.Grow(-10)
	if !shrunk.IsEmpty() {
		t.Fatalf("Grow(-10) = %v, want empty", shrunk)
	}
}

func TestTranslate(t *testing.T) {
	a := NewAABB(Vec2{X: 0, Z: 0}, Vec2{X: 1, Z: 1})
	got := a.Translate(Vec2{X: 3, Z: -2})
	want := NewAABB(Vec2{X: 3, Z: -2}, Vec2{X: 4, Z: -1})
	if got != want {
		t.Fatalf("Translate = %v, want %v", got, want)
	}
}

func TestContainsPoint(t *testing.T) {
	a := NewAABB(Vec2{X: 0, Z: 0}, Vec2{X: 10, Z: 10})
	if !a.ContainsPoint(Vec2{X: 5, Z: 5}) {
		t.Fatal("expected point inside rect to be contained")
	}
	if !a.ContainsPoint(Vec2{X: 0, Z: 0}) {
		t.Fatal("expected boundary point to be contained (closed rect)")
	}
	if a.ContainsPoint(Vec2{X: 11, Z: 5}) {
		t.Fatal("expected point outside rect to not be contained")
	}
}

func TestContains(t *testing.T) {
	outer := NewAABB(Vec2{X: 0, Z: 0}, Vec2{X: 10, Z: 10})
	inner := NewAABB(Vec2{X: 2, Z: 2}, Vec2{X: 8, Z: 8})
	if !outer.Contains(inner) {
		t.Fatal("expected outer to contain inner")
	}
	if outer.Contains(NewAABB(Vec2{X: -1, Z: 0}, Vec2{X: 5, Z: 5})) {
		t.Fatal("expected outer to not contain a rect extending past its bound")
	}
	if !outer.Contains(EmptyAABB()) {
		t.Fatal("every rect should contain the empty rect")
	}
}

func TestIntersectsAndIntersect(t *testing.T) {
	a := NewAABB(Vec2{X: 0, Z: 0}, Vec2{X: 5, Z: 5})
	b := NewAABB(Vec2{X: 3, Z: 3}, Vec2{X: 8, Z: 8})
	if !a.Intersects(b) {
		t.Fatal("expected overlapping rects to intersect")
	}
	got := a.Intersect(b)
	want := NewAABB(Vec2{X: 3, Z: 3}, Vec2{X: 5, Z: 5})
	if got != want {
		t.Fatalf("Intersect = %v, want %v", got, want)
	}

	c := NewAABB(Vec2{X: 100, Z: 100}, Vec2{X: 200, Z: 200})
	if a.Intersects(c) {
		t.Fatal("expected disjoint rects to not intersect")
	}
	if !a.Intersect(c).IsEmpty() {
		t.Fatal("Intersect of disjoint rects should be empty")
	}
}

func TestUnion(t *testing.T) {
	a := NewAABB(Vec2{X: 0, Z: 0}, Vec2{X: 2, Z: 2})
	b := NewAABB(Vec2{X: 4, Z: 4}, Vec2{X: 6, Z: 6})
	got := a.Union(b)
	want := NewAABB(Vec2{X: 0, Z: 0}, Vec2{X: 6, Z: 6})
	if got != want {
		t.Fatalf("Union = %v, want %v", got, want)
	}

	if got := EmptyAABB().Union(a); got != a {
		t.Fatalf("Union with empty identity = %v, want %v", got, a)
	}
}

func TestClipAgainstDisjointReturnsOriginal(t *testing.T) {
	a := NewAABB(Vec2{X: 0, Z: 0}, Vec2{X: 2, Z: 2})
	b := NewAABB(Vec2{X: 100, Z: 100}, Vec2{X: 200, Z: 200})

	out := a.ClipAgainst(b)
	if len(out) != 1 || out[0] != a {
		t.Fatalf("ClipAgainst(disjoint) = %v, want [%v]", out, a)
	}
}

func TestClipAgainstFullyContainedReturnsNil(t *testing.T) {
	a := NewAABB(Vec2{X: 2, Z: 2}, Vec2{X: 4, Z: 4})
	b := NewAABB(Vec2{X: 0, Z: 0}, Vec2{X: 10, Z: 10})

	if out := a.ClipAgainst(b); out != nil {
		t.Fatalf("ClipAgainst(fully contained) = %v, want nil", out)
	}
}

func TestClipAgainstPartialOverlapProducesDisjointPieces(t *testing.T) {
	a := NewAABB(Vec2{X: 0, Z: 0}, Vec2{X: 10, Z: 10})
	b := NewAABB(Vec2{X: 4, Z: 4}, Vec2{X: 6, Z: 20})

	out := a.ClipAgainst(b)
	if len(out) == 0 {
		t.Fatal("expected at least one piece")
	}

	var area float64
	for i, piece := range out {
		if piece.IsEmpty() {
			t.Fatalf("piece %d is empty: %v", i, piece)
		}
		area += piece.Width() * piece.Depth()
		for j, other := range out {
			if i == j {
				continue
			}
			if piece.Intersect(other).Width() > 0 && piece.Intersect(other).Depth() > 0 {
				t.Fatalf("pieces %d and %d overlap: %v, %v", i, j, piece, other)
			}
		}
	}

	overlap := a.Intersect(b)
	wantArea := a.Width()*a.Depth() - overlap.Width()*overlap.Depth()
	if diff := area - wantArea; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("total clipped area = %v, want %v", area, wantArea)
	}
}

func TestClipAgainstSelfReturnsNil(t *testing.T) {
	a := NewAABB(Vec2{X: 0, Z: 0}, Vec2{X: 10, Z: 10})
	if out := a.ClipAgainst(a); out != nil {
		t.Fatalf("ClipAgainst(self) = %v, want nil", out)
	}
}
