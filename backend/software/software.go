// Package software implements a CPU-only [backend.Backend], storing
// the atlas as a set of [image.RGBA] render targets and rasterizing
// draws with simple scanline fills rather than a GPU pipeline.
//
// It exists for tests, headless tooling, and any host without a GPU
// — the same role the teacher library's software rasterizer plays for
// gg. It deliberately does not attempt decal rotation or road-mesh
// triangle rasterization: those need real geometry the backend
// interface deliberately keeps opaque (spec.md §6's SubmeshHandle and
// the decal's DecalTransform/DecalSize material parameters are meant
// for a real pixel shader). Here they degrade to flat-color fills, which
// is sufficient for verifying the compositor's draw-call bookkeeping
// without a GPU.
package software

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/clipmap"
	"github.com/gogpu/clipmap/backend"
	"github.com/gogpu/clipmap/render"
)

func init() {
	backend.Register(backend.BackendSoftware, func() backend.Backend { return New() })
}

// texture is the handle CreateTexture2D returns: a mip chain of
// CPU-backed images. Mip 0 is backed by a render.PixmapTarget, the
// teacher library's CPU render-target abstraction, since it is the
// only level draws actually target; the remaining levels exist so
// UpdateTextureSubRegion can address whichever level a helper (e.g.
// mipmap generation) targets and stay plain *image.RGBA.
type texture struct {
	mip0    *render.PixmapTarget
	auxMips []*image.RGBA
	format  string
}

func (t *texture) levelCount() int { return 1 + len(t.auxMips) }

func (t *texture) level(l int) *image.RGBA {
	if l == 0 {
		return t.mip0.Image()
	}
	return t.auxMips[l-1]
}

// Backend is a CPU-only [clipmap.RasterBackend] and [backend.Backend].
// The zero value is not usable; construct with New.
type Backend struct {
	mu          sync.Mutex
	initialized bool

	targets      []*texture
	atlasRegion  clipmap.PixelRect
	scissor      clipmap.PixelRect
	hasScissor   bool
	material     clipmap.MaterialInstance
	hasMaterial  bool
}

// New creates an uninitialized software backend.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Name() string { return backend.BackendSoftware }

func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = true
	return nil
}

func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = false
	b.targets = nil
	b.hasMaterial = false
	return nil
}

func (b *Backend) CreateTexture2D(_ context.Context, width, height, levels int, format string) (clipmap.TextureHandle, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("software: invalid texture size %dx%d", width, height)
	}
	if levels < 1 {
		levels = 1
	}

	t := &texture{format: format, mip0: render.NewPixmapTarget(width, height), auxMips: make([]*image.RGBA, levels-1)}
	w, h := width, height
	for l := range t.auxMips {
		if w > 1 {
			w /= 2
		}
		if h > 1 {
			h /= 2
		}
		t.auxMips[l] = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	return t, nil
}

func (b *Backend) SetRenderTargets(targets []clipmap.TextureHandle, atlasRegion clipmap.PixelRect) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	resolved := make([]*texture, len(targets))
	for i, h := range targets {
		if h == nil {
			continue
		}
		t, ok := h.(*texture)
		if !ok {
			return fmt.Errorf("software: render target %d is not a software texture handle", i)
		}
		resolved[i] = t
	}
	b.targets = resolved
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

// effectiveRect intersects the current scissor (if any) with the bound
// atlas region, both in full-texture pixel space.
func (b *Backend) effectiveRect() clipmap.PixelRect {
	r := b.atlasRegion
	if b.hasScissor {
		r = intersectRect(r, b.scissor)
	}
	return r
}

func intersectRect(a, b clipmap.PixelRect) clipmap.PixelRect {
	x0 := max(a.X, b.X)
	y0 := max(a.Y, b.Y)
	x1 := min(a.X+a.W, b.X+b.W)
	y1 := min(a.Y+a.H, b.Y+b.H)
	if x1 <= x0 || y1 <= y0 {
		return clipmap.PixelRect{}
	}
	return clipmap.PixelRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func (b *Backend) Clear(values [4]clipmap.RGBA) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	rect := b.effectiveRect()
	if rect.IsEmpty() {
		return nil
	}
	for i, t := range b.targets {
		if t == nil {
			continue
		}
		fillRect(t.level(0), rect, values[i])
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

// DrawQuad fills the pixel rect (clipped to the current scissor and
// atlas region) on the first bound target with the current material's
// DiffuseColor parameter, modulated by the draw's opacity. Targets
// beyond the first are treated as auxiliary channels (normal, height)
// and left untouched — the software backend has no shading model for
// them.
func (b *Backend) DrawQuad(pixelRect clipmap.PixelRect, _, _ clipmap.Vec2) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	rect := intersectRect(b.effectiveRect(), pixelRect)
	if rect.IsEmpty() || len(b.targets) == 0 {
		return nil
	}

	color := clipmap.RGBA4(1, 1, 1, 1)
	if b.hasMaterial && b.material.Material != nil {
		if c, ok := clipmap.GetParameter[clipmap.RGBA](b.material.Material, b.material.Pass, "DiffuseColor"); ok {
			color = c
		}
	}
	color.A *= b.material.Opacity

	if t := b.targets[0]; t != nil {
		fillRect(t.level(0), rect, color)
	}
	return nil
}

// DrawSubmesh is a deliberate no-op: submesh content (road geometry)
// is opaque to the backend interface by design, and the software
// fallback has no triangle rasterizer. The gogpu backend's DrawSubmesh
// is a no-op as well.
func (b *Backend) DrawSubmesh(_ clipmap.SubmeshHandle) error {
	return nil
}

func (b *Backend) UpdateTextureSubRegion(tex clipmap.TextureHandle, level int, rect clipmap.PixelRect, data []byte) error {
	t, ok := tex.(*texture)
	if !ok {
		return fmt.Errorf("software: not a software texture handle")
	}
	if level < 0 || level >= t.levelCount() {
		return fmt.Errorf("software: mip level %d out of range [0,%d)", level, t.levelCount())
	}
	img := t.level(level)
	bounds := img.Bounds()
	clipped := intersectRect(clipmap.PixelRect{X: bounds.Min.X, Y: bounds.Min.Y, W: bounds.Dx(), H: bounds.Dy()}, rect)
	if clipped.IsEmpty() {
		return nil
	}

	stride := rect.W * 4
	for y := 0; y < clipped.H; y++ {
		srcY := y + (clipped.Y - rect.Y)
		srcOff := srcY*stride + (clipped.X-rect.X)*4
		if srcOff < 0 || srcOff+clipped.W*4 > len(data) {
			return fmt.Errorf("software: texture update data too short for rect")
		}
		dstOff := img.PixOffset(clipped.X, clipped.Y+y)
		copy(img.Pix[dstOff:dstOff+clipped.W*4], data[srcOff:srcOff+clipped.W*4])
	}
	return nil
}

func fillRect(img *image.RGBA, rect clipmap.PixelRect, c clipmap.RGBA) {
	bounds := img.Bounds()
	clipped := intersectRect(clipmap.PixelRect{X: bounds.Min.X, Y: bounds.Min.Y, W: bounds.Dx(), H: bounds.Dy()}, rect)
	if clipped.IsEmpty() {
		return
	}
	px := toRGBA8(c)
	for y := clipped.Y; y < clipped.Y+clipped.H; y++ {
		off := img.PixOffset(clipped.X, y)
		for x := 0; x < clipped.W; x++ {
			copy(img.Pix[off:off+4], px[:])
			off += 4
		}
	}
}

func toRGBA8(c clipmap.RGBA) [4]uint8 {
	conv := func(v float64) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v * 255)
	}
	return [4]uint8{conv(c.R), conv(c.G), conv(c.B), conv(c.A)}
}

// Image returns the CPU-backed mip-0 image for a texture handle
// created by this backend, for tests and tooling that need to inspect
// rendered output directly.
func Image(tex clipmap.TextureHandle) (*image.RGBA, bool) {
	t, ok := tex.(*texture)
	if !ok {
		return nil, false
	}
	return t.level(0), true
}

var _ clipmap.RasterBackend = (*Backend)(nil)
var _ backend.Backend = (*Backend)(nil)
