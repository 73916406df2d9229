package software

import (
	"context"
	"testing"

	"github.com/gogpu/clipmap"
	"github.com/gogpu/clipmap/backend"
)

func TestRegistersAsSoftwareBackend(t *testing.T) {
	if !backend.IsRegistered(backend.BackendSoftware) {
		t.Fatal("software backend did not self-register")
	}
}

func TestCreateTexture2DRejectsZeroSize(t *testing.T) {
	b := New()
	if _, err := b.CreateTexture2D(context.Background(), 0, 16, 1, "rgba8"); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestClearFillsBoundRegion(t *testing.T) {
	b := New()
	ctx := context.Background()

	tex, err := b.CreateTexture2D(ctx, 64, 64, 1, "rgba8")
	if err != nil {
		t.Fatalf("CreateTexture2D: %v", err)
	}
	region := clipmap.PixelRect{X: 0, Y: 0, W: 32, H: 32}
	if err := b.SetRenderTargets([]clipmap.TextureHandle{tex}, region); err != nil {
		t.Fatalf("SetRenderTargets: %v", err)
	}
	if err := b.SetScissor(region); err != nil {
		t.Fatalf("SetScissor: %v", err)
	}

	red := clipmap.RGB(1, 0, 0)
	if err := b.Clear([4]clipmap.RGBA{red}); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	img, ok := Image(tex)
	if !ok {
		t.Fatal("Image() failed to resolve handle")
	}
	r, g, bl, a := img.At(5, 5).RGBA()
	if r>>8 != 255 || g>>8 != 0 || bl>>8 != 0 || a>>8 != 255 {
		t.Fatalf("pixel inside cleared region = (%d,%d,%d,%d), want red", r>>8, g>>8, bl>>8, a>>8)
	}

	// Outside the cleared region must remain untouched (transparent black).
	r, g, bl, a = img.At(40, 40).RGBA()
	if r != 0 || g != 0 || bl != 0 || a != 0 {
		t.Fatalf("pixel outside cleared region = (%d,%d,%d,%d), want zero", r, g, bl, a)
	}
}

func TestDrawQuadUsesMaterialDiffuseColor(t *testing.T) {
	b := New()
	ctx := context.Background()

	tex, err := b.CreateTexture2D(ctx, 16, 16, 1, "rgba8")
	if err != nil {
		t.Fatalf("CreateTexture2D: %v", err)
	}
	full := clipmap.PixelRect{X: 0, Y: 0, W: 16, H: 16}
	if err := b.SetRenderTargets([]clipmap.TextureHandle{tex}, full); err != nil {
		t.Fatalf("SetRenderTargets: %v", err)
	}
	if err := b.SetScissor(full); err != nil {
		t.Fatalf("SetScissor: %v", err)
	}

	mat := clipmap.NewBasicMaterial(clipmap.PassDetail)
	clipmap.SetParameter(mat, clipmap.PassDetail, "DiffuseColor", clipmap.RGB(0, 1, 0))
	if err := b.BindMaterial(clipmap.MaterialInstance{Material: mat, Pass: clipmap.PassDetail, Opacity: 1}); err != nil {
		t.Fatalf("BindMaterial: %v", err)
	}
	if err := b.DrawQuad(full, clipmap.V2(0, 0), clipmap.V2(1, 1)); err != nil {
		t.Fatalf("DrawQuad: %v", err)
	}

	img, _ := Image(tex)
	r, g, bl, _ := img.At(8, 8).RGBA()
	if r>>8 != 0 || g>>8 != 255 || bl>>8 != 0 {
		t.Fatalf("pixel = (%d,%d,%d), want green", r>>8, g>>8, bl>>8)
	}
}

func TestUpdateTextureSubRegionCopiesBytes(t *testing.T) {
	b := New()
	ctx := context.Background()

	tex, err := b.CreateTexture2D(ctx, 8, 8, 1, "rgba8")
	if err != nil {
		t.Fatalf("CreateTexture2D: %v", err)
	}

	rect := clipmap.PixelRect{X: 2, Y: 2, W: 2, H: 1}
	data := []byte{10, 20, 30, 255, 40, 50, 60, 255}
	if err := b.UpdateTextureSubRegion(tex, 0, rect, data); err != nil {
		t.Fatalf("UpdateTextureSubRegion: %v", err)
	}

	img, _ := Image(tex)
	r, g, bl, a := img.At(2, 2).RGBA()
	if r>>8 != 10 || g>>8 != 20 || bl>>8 != 30 || a>>8 != 255 {
		t.Fatalf("pixel (2,2) = (%d,%d,%d,%d), want (10,20,30,255)", r>>8, g>>8, bl>>8, a>>8)
	}
}

func TestDrawSubmeshIsNoop(t *testing.T) {
	b := New()
	if err := b.DrawSubmesh(nil); err != nil {
		t.Fatalf("DrawSubmesh returned error: %v", err)
	}
}
