package clipmap

import "context"

// TextureHandle is an opaque reference to a GPU texture created through
// a RasterBackend. Its representation is backend-specific; the core
// never inspects it.
type TextureHandle any

// SubmeshHandle is an opaque reference to a pre-uploaded vertex/index
// buffer pair, as used by RoadLayer.
type SubmeshHandle any

// MaterialInstance is the backend-side binding of a Material for a
// particular draw call (the pair the compositor hands to BindMaterial).
type MaterialInstance struct {
	Material Material
	Pass     Pass
	Opacity  float64
}

// PixelRect is an integer pixel-space rectangle within an atlas texture,
// the unit RasterBackend scissoring and texture updates operate on.
type PixelRect struct {
	X, Y, W, H int
}

// IsEmpty reports whether the rectangle covers no pixels.
func (r PixelRect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

// RasterBackend is the externally supplied capability set the
// compositor requires (spec.md §6): create atlas textures, bind render
// targets and scissor, clear, bind a material, and draw either a
// screen-aligned quad or a pre-built submesh. Package backend ships a
// software (CPU, image.RGBA-backed) and a gogpu-native implementation.
type RasterBackend interface {
	// CreateTexture2D allocates an atlas texture with the given pixel
	// dimensions, mip level count, and surface format.
	CreateTexture2D(ctx context.Context, width, height, levels int, format string) (TextureHandle, error)

	// SetRenderTargets binds the given textures as the current MRT set,
	// restricted to the given atlas-space sub-region (a single level's
	// slot in the column-packed atlas).
	SetRenderTargets(targets []TextureHandle, atlasRegion PixelRect) error

	// SetScissor restricts subsequent draws to rect.
	SetScissor(rect PixelRect) error

	// Clear clears the currently bound render targets to the given
	// per-MRT-slot values within the current scissor rect.
	Clear(values [4]RGBA) error

	// BindMaterial binds a material instance for the named pass; every
	// draw call until the next BindMaterial uses it.
	BindMaterial(instance MaterialInstance) error

	// DrawQuad emits a screen-aligned quad covering pixelRect, with
	// per-corner (pixel_pos, world_xz) attributes interpolated between
	// worldTL and worldBR.
	DrawQuad(pixelRect PixelRect, worldTL, worldBR Vec2) error

	// DrawSubmesh issues the draw calls recorded in a pre-built submesh
	// (used by RoadLayer).
	DrawSubmesh(mesh SubmeshHandle) error

	// UpdateTextureSubRegion uploads raw texel data into a sub-rectangle
	// of a mip level, used by TileGeometryLayer and helper utilities.
	UpdateTextureSubRegion(tex TextureHandle, level int, rect PixelRect, data []byte) error
}
