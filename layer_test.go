package clipmap

import (
	"context"
	"testing"
)

func TestNewMaterialLayerDefaultFadeBandNeverFades(t *testing.T) {
	l := NewMaterialLayer(nil, nil, PassBase)
	for _, level := range []int{0, 1, 8} {
		if l.Skip(level) {
			t.Fatalf("Skip(%d) = true, want false for default fade band", level)
		}
		if op := l.Opacity(level); op != 1 {
			t.Fatalf("Opacity(%d) = %v, want 1", level, op)
		}
	}
}

func TestNewDecalLayerOnlyParticipatesInDetailPass(t *testing.T) {
	l := NewDecalLayer(nil, IdentityTransform(), 4, 4)
	if !l.ParticipatesIn(PassDetail) {
		t.Fatal("decal layer should participate in PassDetail")
	}
	if l.ParticipatesIn(PassBase) {
		t.Fatal("decal layer should not participate in PassBase")
	}
	if l.AABB == nil {
		t.Fatal("decal layer should compute an AABB from its footprint")
	}
}

func TestNewRoadLayerStoresSubmeshAndBorderBlend(t *testing.T) {
	mesh := "fake-mesh-handle"
	blend := [4]float64{0.1, 0.2, 0.3, 0.4}
	aabb := NewAABB(Vec2{X: 0, Z: 0}, Vec2{X: 10, Z: 10})
	l := NewRoadLayer(nil, aabb, mesh, 10, blend, PassDetail)

	if l.Submesh != mesh {
		t.Fatalf("Submesh = %v, want %v", l.Submesh, mesh)
	}
	if l.BorderBlend != blend {
		t.Fatalf("BorderBlend = %v, want %v", l.BorderBlend, blend)
	}
	if l.AABB == nil || *l.AABB != aabb {
		t.Fatalf("AABB = %v, want %v", l.AABB, aabb)
	}
}

func TestEffectiveAABBFallsBackToTile(t *testing.T) {
	tile := NewTerrainTile(0, 0, 1)
	l := NewMaterialLayer(nil, nil, PassBase)

	if got := l.effectiveAABB(tile); got != tile.AABB() {
		t.Fatalf("effectiveAABB = %v, want tile AABB %v", got, tile.AABB())
	}

	custom := NewAABB(Vec2{X: 1, Z: 1}, Vec2{X: 2, Z: 2})
	l2 := NewMaterialLayer(nil, &custom, PassBase)
	if got := l2.effectiveAABB(tile); got != custom {
		t.Fatalf("effectiveAABB = %v, want custom %v", got, custom)
	}
}

func TestSkipOutsideFadeBand(t *testing.T) {
	l := &Layer{FadeInStart: 2, FadeInEnd: 3, FadeOutStart: 5, FadeOutEnd: 6}

	if !l.Skip(1) {
		t.Fatal("Skip(1) should be true (below fade_in_start)")
	}
	if !l.Skip(7) {
		t.Fatal("Skip(7) should be true (above fade_out_end)")
	}
	if l.Skip(4) {
		t.Fatal("Skip(4) should be false (inside the band)")
	}
}

func TestOpacityRamps(t *testing.T) {
	l := &Layer{FadeInStart: 0, FadeInEnd: 2, FadeOutStart: 4, FadeOutEnd: 6}

	cases := []struct {
		level int
		want  float64
	}{
		{0, 0},
		{1, 0.5},
		{2, 1},
		{3, 1},
		{4, 1},
		{5, 0.5},
		{6, 0},
	}
	for _, c := range cases {
		if got := l.Opacity(c.level); got != c.want {
			t.Fatalf("Opacity(%d) = %v, want %v", c.level, got, c.want)
		}
	}
}

func TestOpacityZeroWidthBandIsStepFunction(t *testing.T) {
	l := &Layer{FadeInStart: 2, FadeInEnd: 2, FadeOutStart: 2, FadeOutEnd: 2}
	if got := l.Opacity(2); got != 1 {
		t.Fatalf("Opacity(2) = %v, want 1", got)
	}
	if !l.Skip(1) || !l.Skip(3) {
		t.Fatal("zero-width band should only admit level 2")
	}
}

type noopBackend struct {
	quadCalls int
	meshCalls int
}

func (b *noopBackend) CreateTexture2D(context.Context, int, int, int, string) (TextureHandle, error) {
	return nil, nil
}
func (b *noopBackend) SetRenderTargets([]TextureHandle, PixelRect) error { return nil }
func (b *noopBackend) SetScissor(PixelRect) error                       { return nil }
func (b *noopBackend) Clear([4]RGBA) error                               { return nil }
func (b *noopBackend) BindMaterial(MaterialInstance) error               { return nil }
func (b *noopBackend) DrawQuad(PixelRect, Vec2, Vec2) error {
	b.quadCalls++
	return nil
}
func (b *noopBackend) DrawSubmesh(SubmeshHandle) error {
	b.meshCalls++
	return nil
}
func (b *noopBackend) UpdateTextureSubRegion(TextureHandle, int, PixelRect, []byte) error {
	return nil
}

func TestOnDrawRoadCallsDrawSubmesh(t *testing.T) {
	l := NewRoadLayer(nil, NewAABB(Vec2{}, Vec2{X: 1, Z: 1}), "mesh", 1, [4]float64{}, PassDetail)
	b := &noopBackend{}
	if err := l.onDraw(context.Background(), b, PixelRect{W: 1, H: 1}, Vec2{}, Vec2{}); err != nil {
		t.Fatalf("onDraw: %v", err)
	}
	if b.meshCalls != 1 || b.quadCalls != 0 {
		t.Fatalf("meshCalls=%d quadCalls=%d, want 1,0", b.meshCalls, b.quadCalls)
	}
}

func TestOnDrawDecalBindsTransformAndCallsDrawQuad(t *testing.T) {
	mat := NewBasicMaterial(PassDetail)
	pose := TranslateTransform(3, 4)
	l := NewDecalLayer(mat, pose, 2, 2)
	b := &noopBackend{}

	if err := l.onDraw(context.Background(), b, PixelRect{W: 1, H: 1}, Vec2{}, Vec2{}); err != nil {
		t.Fatalf("onDraw: %v", err)
	}
	if b.quadCalls != 1 {
		t.Fatalf("quadCalls = %d, want 1", b.quadCalls)
	}

	transform, ok := GetParameter[Transform2D](mat, PassDetail, "DecalTransform")
	if !ok {
		t.Fatal("expected DecalTransform parameter to be set")
	}
	if transform != pose.Invert() {
		t.Fatalf("DecalTransform = %v, want %v", transform, pose.Invert())
	}

	size, ok := GetParameter[Vec2](mat, PassDetail, "DecalSize")
	if !ok || size != (Vec2{X: 2, Z: 2}) {
		t.Fatalf("DecalSize = %v, ok=%v, want (2,2)", size, ok)
	}
}

func TestOnDrawMaterialCallsDrawQuad(t *testing.T) {
	l := NewMaterialLayer(nil, nil, PassBase)
	b := &noopBackend{}
	if err := l.onDraw(context.Background(), b, PixelRect{W: 1, H: 1}, Vec2{}, Vec2{}); err != nil {
		t.Fatalf("onDraw: %v", err)
	}
	if b.quadCalls != 1 {
		t.Fatalf("quadCalls = %d, want 1", b.quadCalls)
	}
}
