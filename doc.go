// Package clipmap implements a terrain clipmap engine: the subsystem
// that turns heightfield tiles and stacked material layers into
// ring-buffered virtual textures consumed by a GPU to render
// view-dependent terrain with bounded memory and cost.
//
// # Overview
//
// A [Terrain] owns a set of [TerrainTile]s, each carrying an ordered
// list of [Layer]s (material, decal, road, or the internal clear and
// tile-geometry layers). A [Clipmap] is a multi-level ring of GPU
// textures, one atlas per pass, whose finest level tracks the camera.
// A [ClipmapUpdater] runs once per frame: it recomputes per-level
// origins from the camera position, merges the terrain's pending
// invalidations with the toroidal motion-dirty rectangles, and issues
// scissored draws through a [RasterBackend] to refresh only what
// changed.
//
// # Quick start
//
//	import "github.com/gogpu/clipmap"
//
//	terrain := clipmap.NewTerrain()
//	tile := clipmap.NewTerrainTile(0, 0, 1.0)
//	terrain.AddTile(tile)
//
//	base, _ := clipmap.NewClipmap(clipmap.WithNumLevels(3))
//	updater := clipmap.NewClipmapUpdater()
//	err := updater.Update(ctx, backend, terrain, base, clipmap.PassBase, cameraXZ)
//
// # Architecture
//
// The package is organized into:
//   - Core model: [AABB], [TerrainTile], [Layer], [Terrain], [Clipmap]
//   - Compositor: [ClipmapUpdater], the only caller of [RasterBackend]
//   - External interfaces: [RasterBackend] and [Material] (package backend
//     ships CPU and GPU implementations of RasterBackend)
//   - Helpers (package helpers): smoothing, mipmap generation, normal
//     synthesis, road carving — offline utilities, never invoked by the
//     compositor
//
// # Coordinate system
//
// All world-space math happens in the horizontal xz-plane ([Vec2]); the
// up axis never participates in clipmap bookkeeping. Clipmap atlases are
// column-packed: cells_per_level columns per level, levels stacked
// vertically in one texture per MRT slot.
//
// # Concurrency
//
// The compositor is cooperative single-threaded: one [ClipmapUpdater]
// pass per frame, never re-entered, the only caller of RasterBackend.
// Helper utilities in package helpers use a work-stealing fork-join
// pool instead and are never invoked from the compositor.
package clipmap
