package gogpu

import (
	"context"
	"fmt"
	"image"
	"image/draw"

	"github.com/gogpu/clipmap"
)

// CreateTexture2D builds the texture record returned by
// allocateGPUTexture (which reads only the device's surface format) and
// a same-sized CPU mirror used for the scissor-fill and sub-region
// paths.
func (b *Backend) CreateTexture2D(ctx context.Context, width, height, levels int, format string) (clipmap.TextureHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return nil, fmt.Errorf("gogpu: CreateTexture2D called before Init")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("gogpu: invalid texture size %dx%d", width, height)
	}

	gpuTex, err := allocateGPUTexture(b.device, width, height, levels, format)
	if err != nil {
		return nil, err
	}

	t := &texture{
		handle: gpuTex,
		mirror: image.NewRGBA(image.Rect(0, 0, width, height)),
		width:  width,
		height: height,
	}
	b.targets = append(b.targets, t)
	return t, nil
}

func (b *Backend) SetRenderTargets(targets []clipmap.TextureHandle, atlasRegion clipmap.PixelRect) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	bound := make([]*texture, 0, len(targets))
	for _, h := range targets {
		t, ok := h.(*texture)
		if !ok {
			return fmt.Errorf("gogpu: SetRenderTargets given a handle not created by this backend")
		}
		bound = append(bound, t)
	}
	b.targets = bound
	b.atlasRegion = atlasRegion
	b.hasScissor = false
	return nil
}

func (b *Backend) SetScissor(rect clipmap.PixelRect) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scissor = rect
	b.hasScissor = true
	return nil
}

func (b *Backend) effectiveRect() clipmap.PixelRect {
	if !b.hasScissor {
		return b.atlasRegion
	}
	return intersectPixelRect(b.scissor, b.atlasRegion)
}

// Clear fills the active scissor region of every bound target's CPU
// mirror. The following uploadMirror call performs no GPU upload (see
// texture.go).
func (b *Backend) Clear(values [4]clipmap.RGBA) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	rect := b.effectiveRect()
	for i, t := range b.targets {
		if t == nil || i >= len(values) {
			continue
		}
		fillMirror(t.mirror, rect, values[i])
		uploadMirror(b.device, t, rect)
	}
	return nil
}

func (b *Backend) BindMaterial(instance clipmap.MaterialInstance) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.material = instance
	b.hasMaterial = true
	return nil
}

// DrawQuad shades the first bound target using the material's
// DiffuseColor parameter. Decal transform and road-mesh rasterization
// need a real pipeline draw call against the compiled shader module
// (b.shader) that this backend does not yet issue; see the package doc.
func (b *Backend) DrawQuad(pixelRect clipmap.PixelRect, worldTL, worldBR clipmap.Vec2) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.targets) == 0 || b.targets[0] == nil {
		return nil
	}
	rect := intersectPixelRect(pixelRect, b.effectiveRect())

	color := clipmap.White
	if b.hasMaterial {
		if c, ok := clipmap.GetParameter[clipmap.RGBA](b.material.Material, b.material.Pass, "DiffuseColor"); ok {
			color = c
		}
	}
	color.A *= b.material.Opacity

	t := b.targets[0]
	fillMirror(t.mirror, rect, color)
	uploadMirror(b.device, t, rect)
	return nil
}

// DrawSubmesh is a deliberate no-op: the RasterBackend contract keeps
// submesh content opaque to the compositor, so road geometry can only
// be rasterized by a backend that owns a real triangle pipeline.
func (b *Backend) DrawSubmesh(clipmap.SubmeshHandle) error {
	return nil
}

func (b *Backend) UpdateTextureSubRegion(tex clipmap.TextureHandle, level int, rect clipmap.PixelRect, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := tex.(*texture)
	if !ok {
		return fmt.Errorf("gogpu: UpdateTextureSubRegion given a handle not created by this backend")
	}

	stride := rect.W * 4
	for row := 0; row < rect.H; row++ {
		srcOff := row * stride
		if srcOff+stride > len(data) {
			break
		}
		for col := 0; col < rect.W; col++ {
			px := data[srcOff+col*4 : srcOff+col*4+4]
			x, y := rect.X+col, rect.Y+row
			if x < 0 || y < 0 || x >= t.mirror.Bounds().Dx() || y >= t.mirror.Bounds().Dy() {
				continue
			}
			t.mirror.Set(x, y, image.NRGBA{R: px[0], G: px[1], B: px[2], A: px[3]})
		}
	}
	uploadMirror(b.device, t, rect)
	return nil
}

func fillMirror(img *image.RGBA, rect clipmap.PixelRect, c clipmap.RGBA) {
	if rect.W <= 0 || rect.H <= 0 {
		return
	}
	r, g, bl, a := toNRGBA8(c)
	draw.Draw(img, image.Rect(rect.X, rect.Y, rect.X+rect.W, rect.Y+rect.H),
		&image.Uniform{C: image.NRGBA{R: r, G: g, B: bl, A: a}}, image.Point{}, draw.Src)
}

func toNRGBA8(c clipmap.RGBA) (r, g, b, a uint8) {
	clamp := func(v float64) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v * 255)
	}
	return clamp(c.R), clamp(c.G), clamp(c.B), clamp(c.A)
}

func intersectPixelRect(a, b clipmap.PixelRect) clipmap.PixelRect {
	x0, y0 := max(a.X, b.X), max(a.Y, b.Y)
	x1, y1 := min(a.X+a.W, b.X+b.W), min(a.Y+a.H, b.Y+b.H)
	if x1 <= x0 || y1 <= y0 {
		return clipmap.PixelRect{}
	}
	return clipmap.PixelRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
