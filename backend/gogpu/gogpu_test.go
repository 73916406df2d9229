package gogpu

import (
	"testing"

	"github.com/gogpu/clipmap"
	"github.com/gogpu/clipmap/backend"
)

func TestRegistersAsGoGPUBackend(t *testing.T) {
	if !backend.IsRegistered(backend.BackendGoGPU) {
		t.Fatal("backend.gogpu package should self-register under BackendGoGPU")
	}
}

func TestNameReportsGoGPU(t *testing.T) {
	b := New(nil)
	if got := b.Name(); got != backend.BackendGoGPU {
		t.Fatalf("Name() = %q, want %q", got, backend.BackendGoGPU)
	}
}

func TestCreateTexture2DFailsBeforeInit(t *testing.T) {
	b := New(nil)
	// Not initialized: CreateTexture2D must fail cleanly rather than
	// dereference a nil device.
	if _, err := b.CreateTexture2D(nil, 4, 4, 1, "rgba8"); err == nil {
		t.Fatal("expected an error calling CreateTexture2D before Init")
	}
}

func TestIntersectPixelRectOverlap(t *testing.T) {
	a := clipmap.PixelRect{X: 0, Y: 0, W: 10, H: 10}
	b := clipmap.PixelRect{X: 5, Y: 5, W: 10, H: 10}
	got := intersectPixelRect(a, b)
	want := clipmap.PixelRect{X: 5, Y: 5, W: 5, H: 5}
	if got != want {
		t.Fatalf("intersectPixelRect = %+v, want %+v", got, want)
	}
}

func TestIntersectPixelRectDisjointIsZero(t *testing.T) {
	a := clipmap.PixelRect{X: 0, Y: 0, W: 4, H: 4}
	b := clipmap.PixelRect{X: 10, Y: 10, W: 4, H: 4}
	got := intersectPixelRect(a, b)
	if got != (clipmap.PixelRect{}) {
		t.Fatalf("intersectPixelRect(disjoint) = %+v, want zero value", got)
	}
}

func TestToNRGBA8ClampsToRange(t *testing.T) {
	r, g, bl, a := toNRGBA8(clipmap.RGBA{R: -1, G: 0.5, B: 2, A: 1})
	if r != 0 || bl != 255 || a != 255 {
		t.Fatalf("toNRGBA8 clamping = (%d,%d,%d,%d), want r=0 b=255 a=255", r, g, bl, a)
	}
	if g < 126 || g > 129 {
		t.Fatalf("toNRGBA8 g=%d, want ~127", g)
	}
}

func TestCloseBeforeInitIsSafe(t *testing.T) {
	b := New(nil)
	if err := b.Close(); err != nil {
		t.Fatalf("Close() on an uninitialized backend should be a no-op: %v", err)
	}
}
