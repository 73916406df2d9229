package clipmap

import "context"

// LevelMax is the default fade-band upper bound: "never fades out",
// since no clipmap configuration in this engine has anywhere near this
// many levels (spec.md §3 caps num_levels at 9).
const LevelMax = 1 << 30

// LayerKind tags which variant a Layer is. Replacing the source's
// TerrainLayer inheritance hierarchy with a tagged union plus a single
// onDraw dispatch is the re-architecture spec.md §9 calls for; Go has
// no sum types, so Kind plus one struct with variant-specific fields
// left zero for the variants that don't use them is the idiomatic
// stand-in (mirrored on the teacher's Tag-based encoding elsewhere in
// the corpus, adapted here to a plain enum since no serialization
// format needs to be preserved).
type LayerKind int

const (
	// LayerMaterial tiles a material over its AABB (or the whole tile).
	LayerMaterial LayerKind = iota
	// LayerDecal projects an oriented material footprint; detail pass only.
	LayerDecal
	// LayerRoad draws a precomputed submesh.
	LayerRoad
	// LayerClear is the internal first-drawn layer of every frame.
	LayerClear
	// LayerTileGeometry is the internal layer synthesized from a tile's
	// own height/normal/hole textures.
	LayerTileGeometry
)

func (k LayerKind) String() string {
	switch k {
	case LayerMaterial:
		return "Material"
	case LayerDecal:
		return "Decal"
	case LayerRoad:
		return "Road"
	case LayerClear:
		return "Clear"
	case LayerTileGeometry:
		return "TileGeometry"
	default:
		return "Unknown"
	}
}

// Layer is a drawable contribution to one or both clipmaps (spec.md
// §3's TerrainLayer). AABB is nil when the layer covers its containing
// tile in full.
type Layer struct {
	Kind     LayerKind
	Passes   []Pass
	AABB     *AABB
	Material Material

	FadeInStart, FadeInEnd, FadeOutStart, FadeOutEnd int

	// Decal-specific.
	Pose          Transform2D
	Width, Height float64

	// Road-specific.
	Submesh     SubmeshHandle
	RoadLength  float64
	BorderBlend [4]float64

	// TileGeometry-specific; nil for every other kind.
	tile *TerrainTile
}

// NewMaterialLayer creates a layer tiling mat over the given passes,
// covering aabb (or the containing tile, if aabb is nil).
func NewMaterialLayer(mat Material, aabb *AABB, passes ...Pass) *Layer {
	return &Layer{
		Kind:         LayerMaterial,
		Passes:       passes,
		AABB:         aabb,
		Material:     mat,
		FadeOutStart: LevelMax,
		FadeOutEnd:   LevelMax,
	}
}

// NewDecalLayer creates a decal of the given footprint size, centered
// at pose's translation and oriented by pose's rotation. Decals
// contribute only to the detail clipmap (spec.md §3).
func NewDecalLayer(mat Material, pose Transform2D, width, height float64) *Layer {
	box := pose.FootprintAABB(width, height)
	return &Layer{
		Kind:         LayerDecal,
		Passes:       []Pass{PassDetail},
		AABB:         &box,
		Material:     mat,
		Pose:         pose,
		Width:        width,
		Height:       height,
		FadeOutStart: LevelMax,
		FadeOutEnd:   LevelMax,
	}
}

// NewRoadLayer creates a road layer drawing a precomputed submesh
// spanning aabb, with per-edge border blend ranges (left, right, start,
// end, in that order).
func NewRoadLayer(mat Material, aabb AABB, mesh SubmeshHandle, roadLength float64, borderBlend [4]float64, passes ...Pass) *Layer {
	return &Layer{
		Kind:         LayerRoad,
		Passes:       passes,
		AABB:         &aabb,
		Material:     mat,
		Submesh:      mesh,
		RoadLength:   roadLength,
		BorderBlend:  borderBlend,
		FadeOutStart: LevelMax,
		FadeOutEnd:   LevelMax,
	}
}

// newClearLayer builds the internal layer the compositor draws first
// every frame (spec.md §4.6 step 5.iii). It has no material and is
// never appended to a tile's layer list.
func newClearLayer(pass Pass) *Layer {
	return &Layer{Kind: LayerClear, Passes: []Pass{pass}, FadeOutStart: LevelMax, FadeOutEnd: LevelMax}
}

// newTileGeometryLayer builds the internal layer synthesized from a
// tile's own height/normal/hole textures, drawn into the base clipmap
// ahead of the tile's user layers (spec.md §4.6 step 5.iv).
func newTileGeometryLayer(tile *TerrainTile) *Layer {
	return &Layer{
		Kind:         LayerTileGeometry,
		Passes:       []Pass{PassBase},
		Material:     tile.geometryMaterial,
		tile:         tile,
		FadeOutStart: LevelMax,
		FadeOutEnd:   LevelMax,
	}
}

// effectiveAABB returns the layer's AABB, falling back to the owning
// tile's AABB when the layer declares none.
func (l *Layer) effectiveAABB(tile *TerrainTile) AABB {
	if l.AABB != nil {
		return *l.AABB
	}
	return tile.AABB()
}

// ParticipatesIn reports whether the layer contributes to pass.
func (l *Layer) ParticipatesIn(pass Pass) bool {
	for _, p := range l.Passes {
		if p == pass {
			return true
		}
	}
	return false
}

// Skip reports whether the layer is entirely absent at level (spec.md
// §4.3: "a layer is entirely skipped for level l iff l < fade_in_start
// or l > fade_out_end").
func (l *Layer) Skip(level int) bool {
	return level < l.FadeInStart || level > l.FadeOutEnd
}

// Opacity computes the fade-band opacity at level (spec.md §4.3):
// 0 below fade_in_start or above fade_out_end, 1 between fade_in_end
// and fade_out_start, linear in between. The default band (0,0,MAX,MAX)
// yields constant opacity 1.
func (l *Layer) Opacity(level int) float64 {
	switch {
	case level < l.FadeInStart || level > l.FadeOutEnd:
		return 0
	case level >= l.FadeInEnd && level <= l.FadeOutStart:
		return 1
	case level < l.FadeInEnd:
		span := l.FadeInEnd - l.FadeInStart
		if span <= 0 {
			return 1
		}
		return float64(level-l.FadeInStart) / float64(span)
	default: // level > l.FadeOutStart
		span := l.FadeOutEnd - l.FadeOutStart
		if span <= 0 {
			return 1
		}
		return 1 - float64(level-l.FadeOutStart)/float64(span)
	}
}

// onDraw dispatches to the variant's drawing behavior. The default
// (Material, TileGeometry) draws a screen-aligned quad covering the
// scissor rect. Road draws its precomputed submesh. Decal keeps the
// same screen-aligned quad — the atlas pixels touched by a decal are
// always the scissor rect's — but first binds its pose and footprint
// size as material parameters so the pixel shader can reconstruct the
// rotated decal-space UV itself (spec.md §6's shader contract already
// has the pixel shader sampling by "the layer rule"; a rotation matrix
// is just another per-draw parameter, so no RasterBackend method needs
// extending to support oriented decals).
func (l *Layer) onDraw(ctx context.Context, backend RasterBackend, scissor PixelRect, worldTL, worldBR Vec2) error {
	switch l.Kind {
	case LayerRoad:
		return backend.DrawSubmesh(l.Submesh)
	case LayerDecal:
		if l.Material != nil {
			SetParameter(l.Material, PassDetail, "DecalTransform", l.Pose.Invert())
			SetParameter(l.Material, PassDetail, "DecalSize", Vec2{X: l.Width, Z: l.Height})
		}
		return backend.DrawQuad(scissor, worldTL, worldBR)
	default:
		return backend.DrawQuad(scissor, worldTL, worldBR)
	}
}
