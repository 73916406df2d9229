package clipmap

import "math"

// ClipmapOption configures a Clipmap during creation.
//
// Example:
//
//	cm, err := clipmap.NewClipmap(
//		clipmap.WithNumLevels(4),
//		clipmap.WithCellsPerLevel(64),
//		clipmap.WithCellSize(0, 1.0),
//	)
type ClipmapOption func(*clipmapOptions)

// clipmapOptions holds optional configuration for Clipmap creation.
type clipmapOptions struct {
	numTextures      int
	numLevels        int
	cellsPerLevel    uint32
	levelBias        float64
	cellSizes        [9]float64
	enableMipmap     bool
	enableAniso      bool
	minLevel         float64
	surfaceFormat    string
}

// defaultClipmapOptions returns the default clipmap configuration: one
// texture, three levels, the first level's cell size at 1.0, every later
// level NaN ("twice the previous").
func defaultClipmapOptions() clipmapOptions {
	o := clipmapOptions{
		numTextures:   1,
		numLevels:     3,
		cellsPerLevel: 64,
		levelBias:     0,
		minLevel:      0,
		surfaceFormat: "rgba8",
	}
	o.cellSizes[0] = 1.0
	for l := 1; l < 9; l++ {
		o.cellSizes[l] = math.NaN()
	}
	return o
}

// WithNumTextures sets the number of MRT slots sharing the clipmap's
// surface format (1..=4).
func WithNumTextures(n int) ClipmapOption {
	return func(o *clipmapOptions) { o.numTextures = n }
}

// WithNumLevels sets the number of clipmap levels (1..=9).
func WithNumLevels(n int) ClipmapOption {
	return func(o *clipmapOptions) { o.numLevels = n }
}

// WithCellsPerLevel sets the texel width/height of every level (>= 1).
func WithCellsPerLevel(n uint32) ClipmapOption {
	return func(o *clipmapOptions) { o.cellsPerLevel = n }
}

// WithLevelBias sets the fractional level-of-detail bias applied when
// choosing which level is "most detailed" for a given camera distance.
func WithLevelBias(bias float64) ClipmapOption {
	return func(o *clipmapOptions) { o.levelBias = bias }
}

// WithCellSize sets the cell size of a specific level explicitly. Pass
// math.NaN() (the package default beyond level 0) to request "twice the
// previous level's resolved cell size".
func WithCellSize(level int, size float64) ClipmapOption {
	return func(o *clipmapOptions) {
		if level >= 0 && level < len(o.cellSizes) {
			o.cellSizes[level] = size
		}
	}
}

// WithMipmap enables mipmap generation for the clipmap's atlas textures.
func WithMipmap(enable bool) ClipmapOption {
	return func(o *clipmapOptions) { o.enableMipmap = enable }
}

// WithAnisotropic enables anisotropic filtering for the clipmap's atlas
// textures.
func WithAnisotropic(enable bool) ClipmapOption {
	return func(o *clipmapOptions) { o.enableAniso = enable }
}

// WithMinLevel sets the most-detailed level actively drawn; levels finer
// than this are skipped entirely (their atlas entries remain stale).
func WithMinLevel(level float64) ClipmapOption {
	return func(o *clipmapOptions) { o.minLevel = level }
}

// WithSurfaceFormat sets the shared surface format of every MRT slot.
func WithSurfaceFormat(format string) ClipmapOption {
	return func(o *clipmapOptions) { o.surfaceFormat = format }
}

// TerrainOption configures a Terrain during creation.
type TerrainOption func(*terrainOptions)

type terrainOptions struct {
	baseClearValues   [4]RGBA
	detailClearValues [4]RGBA
}

func defaultTerrainOptions() terrainOptions {
	return terrainOptions{}
}

// WithBaseClearValues sets the per-MRT-slot clear values used by the
// base pass's ClearLayer.
func WithBaseClearValues(values [4]RGBA) TerrainOption {
	return func(o *terrainOptions) { o.baseClearValues = values }
}

// WithDetailClearValues sets the per-MRT-slot clear values used by the
// detail pass's ClearLayer.
func WithDetailClearValues(values [4]RGBA) TerrainOption {
	return func(o *terrainOptions) { o.detailClearValues = values }
}

// UpdaterOption configures a ClipmapUpdater during creation.
type UpdaterOption func(*updaterOptions)

type updaterOptions struct {
	pool *WorkerPool
}

func defaultUpdaterOptions() updaterOptions {
	return updaterOptions{}
}

// WithHelperPool attaches a fork-join worker pool to the updater. The
// updater keeps the pool, but nothing in Update runs work on it; see the
// package doc for the single-threaded contract.
func WithHelperPool(pool *WorkerPool) UpdaterOption {
	return func(o *updaterOptions) { o.pool = pool }
}
