package clipmap

import (
	"context"
	"math"

	"log/slog"
)

const maxClipmapLevels = 9

// Clipmap is a multi-level ring of GPU textures: one atlas per MRT
// slot, column-packed so cells_per_level columns hold one level and
// every level is stacked vertically in the same physical texture
// (spec.md §3). A Terrain is rendered into two Clipmaps — one for the
// base (geometry) pass, one for the detail (material) pass — by a
// shared [ClipmapUpdater].
type Clipmap struct {
	numTextures   int
	numLevels     int
	cellsPerLevel uint32
	levelBias     float64
	enableMipmap  bool
	enableAniso   bool
	minLevel      float64
	surfaceFormat string

	cellSizes       [maxClipmapLevels]float64
	actualCellSizes [maxClipmapLevels]float64

	origin     [maxClipmapLevels]Vec2
	prevOrigin [maxClipmapLevels]Vec2
	offset     [maxClipmapLevels]Vec2

	invalidRegions      [maxClipmapLevels][]AABB
	combinedInvalidAABB [maxClipmapLevels]AABB

	textures             []TextureHandle
	allocated            bool
	useIncrementalUpdate bool
}

// NewClipmap validates opts and builds a Clipmap. Textures are not
// allocated until the first ClipmapUpdater pass.
func NewClipmap(opts ...ClipmapOption) (*Clipmap, error) {
	o := defaultClipmapOptions()
	for _, apply := range opts {
		apply(&o)
	}

	if o.numLevels < 1 || o.numLevels > maxClipmapLevels {
		return nil, newError(OutOfRange, "NewClipmap", nil)
	}
	if o.cellsPerLevel < 1 {
		return nil, newError(OutOfRange, "NewClipmap", nil)
	}
	if o.numTextures < 1 || o.numTextures > 4 {
		return nil, newError(OutOfRange, "NewClipmap", nil)
	}
	if o.minLevel < 0 || o.minLevel > float64(o.numLevels-1) {
		return nil, newError(OutOfRange, "NewClipmap", nil)
	}
	if math.IsNaN(o.cellSizes[0]) {
		return nil, newError(InvalidArgument, "NewClipmap", nil)
	}

	cm := &Clipmap{
		numTextures:   o.numTextures,
		numLevels:     o.numLevels,
		cellsPerLevel: o.cellsPerLevel,
		levelBias:     o.levelBias,
		enableMipmap:  o.enableMipmap,
		enableAniso:   o.enableAniso,
		minLevel:      o.minLevel,
		surfaceFormat: o.surfaceFormat,
		cellSizes:     o.cellSizes,
	}
	cm.resolveCellSizes()
	return cm, nil
}

// resolveCellSizes fills actualCellSizes from cellSizes: level 0 is
// taken as-is (already validated non-NaN); each later NaN entry
// inherits twice the previous level's resolved size (spec.md §4.6
// step 1).
func (cm *Clipmap) resolveCellSizes() {
	cm.actualCellSizes[0] = cm.cellSizes[0]
	for l := 1; l < cm.numLevels; l++ {
		if math.IsNaN(cm.cellSizes[l]) {
			cm.actualCellSizes[l] = cm.actualCellSizes[l-1] * 2
		} else {
			cm.actualCellSizes[l] = cm.cellSizes[l]
		}
	}
}

// LevelSize returns the world-space extent of level l (its cell size
// times cells_per_level).
func (cm *Clipmap) LevelSize(l int) float64 {
	return cm.actualCellSizes[l] * float64(cm.cellsPerLevel)
}

// LevelWorldAABB returns level l's current world-space window.
func (cm *Clipmap) LevelWorldAABB(l int) AABB {
	size := cm.LevelSize(l)
	return AABB{
		Min: cm.origin[l],
		Max: Vec2{X: cm.origin[l].X + size, Z: cm.origin[l].Z + size},
	}
}

// recomputeOrigins snaps every level's origin to the largest multiple
// of its cell size that centers the camera within the level's extent
// (spec.md §4.5), records the previous frame's origins for motion-dirt
// computation, and derives each level's toroidal wrap offset.
func (cm *Clipmap) recomputeOrigins(camera Vec2) {
	cm.prevOrigin = cm.origin
	for l := 0; l < cm.numLevels; l++ {
		size := cm.LevelSize(l)
		half := size / 2
		cellSize := cm.actualCellSizes[l]

		originX := math.Floor((camera.X-half)/cellSize) * cellSize
		originZ := math.Floor((camera.Z-half)/cellSize) * cellSize
		cm.origin[l] = Vec2{X: originX, Z: originZ}

		texelsX := int64(math.Round(originX / cellSize))
		texelsZ := int64(math.Round(originZ / cellSize))
		n := int64(cm.cellsPerLevel)
		cm.offset[l] = Vec2{
			X: float64(((texelsX % n) + n) % n) / float64(n),
			Z: float64(((texelsZ % n) + n) % n) / float64(n),
		}
	}
}

// motionDirty returns the world-space rectangles newly exposed at
// level l by this frame's origin change — the part of the level's new
// window not covered by its previous window (spec.md §4.5: "the texels
// that move into view").
func (cm *Clipmap) motionDirty(l int) []AABB {
	size := cm.LevelSize(l)
	oldBox := AABB{Min: cm.prevOrigin[l], Max: cm.prevOrigin[l].Add(Vec2{X: size, Z: size})}
	newBox := cm.LevelWorldAABB(l)
	if oldBox == newBox {
		return nil
	}
	return newBox.ClipAgainst(oldBox)
}

// buildInvalidRegions computes level l's invalid_regions for this pass
// (spec.md §4.5's "per-level invalid-region build"). terrainDisjoint is
// the pass's already-disjoint set of Terrain-issued invalidations for
// this frame.
func (cm *Clipmap) buildInvalidRegions(l int, terrainDisjoint []AABB) {
	if !cm.useIncrementalUpdate {
		whole := cm.LevelWorldAABB(l)
		cm.invalidRegions[l] = []AABB{whole}
		cm.combinedInvalidAABB[l] = whole
		return
	}

	world := cm.LevelWorldAABB(l)
	regions := cm.motionDirty(l)
	for _, r := range terrainDisjoint {
		clipped := r.Intersect(world)
		if !clipped.IsEmpty() {
			regions = append(regions, clipped)
		}
	}

	regions = ClipSweep(Coalesce(regions))
	cm.invalidRegions[l] = regions
	cm.combinedInvalidAABB[l] = CombinedAABB(regions)
}

// InvalidRegions returns level l's invalid rectangles computed by the
// most recent ClipmapUpdater pass.
func (cm *Clipmap) InvalidRegions(l int) []AABB { return cm.invalidRegions[l] }

// CombinedInvalidAABB returns the union of level l's invalid rectangles
// computed by the most recent ClipmapUpdater pass.
func (cm *Clipmap) CombinedInvalidAABB(l int) AABB { return cm.combinedInvalidAABB[l] }

// Origin returns level l's current world-space origin.
func (cm *Clipmap) Origin(l int) Vec2 { return cm.origin[l] }

// Offset returns level l's current toroidal wrap offset, in [0,1)².
func (cm *Clipmap) Offset(l int) Vec2 { return cm.offset[l] }

// NumLevels returns the number of levels.
func (cm *Clipmap) NumLevels() int { return cm.numLevels }

// CellsPerLevel returns the texel width/height shared by every level.
func (cm *Clipmap) CellsPerLevel() uint32 { return cm.cellsPerLevel }

// MinLevel returns the most-detailed level actively drawn; finer levels
// are skipped (spec.md §4.5's level skipping).
func (cm *Clipmap) MinLevel() float64 { return cm.minLevel }

// Texture returns the i'th MRT slot's atlas texture handle, or nil if
// ensureTextures hasn't allocated yet. Exposed for hosts and tooling
// that need to read the composited atlas back (e.g. to present it, or
// to save it for inspection) after a call to [ClipmapUpdater.Update].
func (cm *Clipmap) Texture(i int) TextureHandle {
	if i < 0 || i >= len(cm.textures) {
		return nil
	}
	return cm.textures[i]
}

// atlasWidth/atlasHeight in texels: cells_per_level columns wide,
// levels stacked vertically, one physical texture per MRT slot.
func (cm *Clipmap) atlasWidth() int  { return int(cm.cellsPerLevel) }
func (cm *Clipmap) atlasHeight() int { return int(cm.cellsPerLevel) * cm.numLevels }

// levelAtlasRegion returns the pixel rectangle level l occupies within
// the column-packed atlas.
func (cm *Clipmap) levelAtlasRegion(l int) PixelRect {
	return PixelRect{X: 0, Y: l * int(cm.cellsPerLevel), W: int(cm.cellsPerLevel), H: int(cm.cellsPerLevel)}
}

// ensureTextures (re)allocates the clipmap's atlas textures if they are
// missing or if shape-affecting configuration changed, forcing a full
// refresh (spec.md §3's lifecycle rule, §4.6's edge-case policy).
func (cm *Clipmap) ensureTextures(ctx context.Context, backend RasterBackend, shapeChanged bool) error {
	if cm.allocated && !shapeChanged {
		return nil
	}
	w, h := cm.atlasWidth(), cm.atlasHeight()
	textures := make([]TextureHandle, cm.numTextures)
	for i := range textures {
		tex, err := backend.CreateTexture2D(ctx, w, h, 1, cm.surfaceFormat)
		if err != nil {
			return newError(BackendFailure, "Clipmap.ensureTextures", err)
		}
		textures[i] = tex
	}
	cm.textures = textures
	cm.allocated = true
	cm.useIncrementalUpdate = false
	Logger().Debug("clipmap atlas (re)allocated", slog.Int("width", w), slog.Int("height", h), slog.Int("textures", cm.numTextures))
	return nil
}

// Reconfigure applies opts, forcing a full refresh if any shape-
// affecting field changed (spec.md §4.6: "If any of enable_mipmap,
// enable_anisotropic, cells_per_level, num_levels, num_textures
// changes: set use_incremental_update = false and reallocate").
func (cm *Clipmap) Reconfigure(opts ...ClipmapOption) error {
	o := clipmapOptions{
		numTextures:   cm.numTextures,
		numLevels:     cm.numLevels,
		cellsPerLevel: cm.cellsPerLevel,
		levelBias:     cm.levelBias,
		cellSizes:     cm.cellSizes,
		enableMipmap:  cm.enableMipmap,
		enableAniso:   cm.enableAniso,
		minLevel:      cm.minLevel,
		surfaceFormat: cm.surfaceFormat,
	}
	for _, apply := range opts {
		apply(&o)
	}
	if o.numLevels < 1 || o.numLevels > maxClipmapLevels {
		return newError(OutOfRange, "Clipmap.Reconfigure", nil)
	}
	if o.cellsPerLevel < 1 {
		return newError(OutOfRange, "Clipmap.Reconfigure", nil)
	}

	shapeChanged := o.numTextures != cm.numTextures ||
		o.numLevels != cm.numLevels ||
		o.cellsPerLevel != cm.cellsPerLevel ||
		o.enableMipmap != cm.enableMipmap ||
		o.enableAniso != cm.enableAniso

	cm.numTextures = o.numTextures
	cm.numLevels = o.numLevels
	cm.cellsPerLevel = o.cellsPerLevel
	cm.levelBias = o.levelBias
	cm.cellSizes = o.cellSizes
	cm.enableMipmap = o.enableMipmap
	cm.enableAniso = o.enableAniso
	cm.minLevel = o.minLevel
	cm.surfaceFormat = o.surfaceFormat
	cm.resolveCellSizes()

	if shapeChanged {
		cm.allocated = false
		cm.useIncrementalUpdate = false
	}
	return nil
}
