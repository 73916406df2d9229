package clipmap

import (
	"context"
	"math"
)

// scissorDraw is one sub-rectangle of a (possibly toroidally-wrapped)
// invalid region, already translated into atlas pixel space plus the
// world-space corners the vertex shader needs.
type scissorDraw struct {
	Pixel           PixelRect
	WorldTL, WorldBR Vec2
}

type axisPiece struct {
	worldLo, worldHi float64
	pixelLo, pixelLen int
}

// splitAxis maps a continuous world-space interval [worldLo, worldHi]
// at the given cell size into one or two atlas-pixel intervals of
// [0, n), splitting at the toroidal seam when the interval wraps
// (spec.md §4.6: "if a rectangle crosses the toroidal seam, split into
// up to 4 rectangles" — up to 2 per axis, combined across both axes).
func splitAxis(worldLo, worldHi, cellSize float64, n int) []axisPiece {
	t0 := worldLo / cellSize
	t1 := worldHi / cellSize
	n64 := float64(n)

	m0 := math.Mod(t0, n64)
	if m0 < 0 {
		m0 += n64
	}
	span := t1 - t0

	// Round both endpoints once, from the same un-wrapped basis, instead
	// of rounding each split piece's length independently: independent
	// rounding can inflate the combined pixel footprint past round(span)
	// and, when the split lands on a half-texel boundary, emit a
	// pixelLo that reaches n itself (out of range for a 0..n-1 atlas
	// column).
	pixStart := int(math.Round(m0))
	totalLen := int(math.Round(m0+span)) - pixStart
	if totalLen <= 0 {
		return nil
	}

	pixLo := pixStart % n
	if pixLo+totalLen <= n {
		return []axisPiece{{worldLo: worldLo, worldHi: worldHi, pixelLo: pixLo, pixelLen: totalLen}}
	}

	firstLen := n - pixLo
	secondLen := totalLen - firstLen
	firstWorldHi := worldLo + float64(firstLen)*cellSize
	return []axisPiece{
		{worldLo: worldLo, worldHi: firstWorldHi, pixelLo: pixLo, pixelLen: firstLen},
		{worldLo: firstWorldHi, worldHi: worldHi, pixelLo: 0, pixelLen: secondLen},
	}
}

// scissorDraws converts a world-space invalid rectangle at level l into
// one to four atlas-space scissor draws, wrapping at the toroidal seam
// and offsetting into level l's vertical slot of the column-packed
// atlas.
func (cm *Clipmap) scissorDraws(l int, world AABB) []scissorDraw {
	cellSize := cm.actualCellSizes[l]
	n := int(cm.cellsPerLevel)
	rowBase := l * n

	xPieces := splitAxis(world.Min.X, world.Max.X, cellSize, n)
	zPieces := splitAxis(world.Min.Z, world.Max.Z, cellSize, n)

	draws := make([]scissorDraw, 0, len(xPieces)*len(zPieces))
	for _, xp := range xPieces {
		if xp.pixelLen <= 0 {
			continue
		}
		for _, zp := range zPieces {
			if zp.pixelLen <= 0 {
				continue
			}
			draws = append(draws, scissorDraw{
				Pixel: PixelRect{
					X: xp.pixelLo,
					Y: rowBase + zp.pixelLo,
					W: xp.pixelLen,
					H: zp.pixelLen,
				},
				WorldTL: Vec2{X: xp.worldLo, Z: zp.worldLo},
				WorldBR: Vec2{X: xp.worldHi, Z: zp.worldHi},
			})
		}
	}
	return draws
}

// ClipmapUpdater is the per-frame compositor (spec.md §4.6): the only
// code in this package that calls a RasterBackend. One updater can
// drive any number of Clipmaps; it holds no per-clipmap state of its
// own between calls.
type ClipmapUpdater struct {
	pool *WorkerPool
}

// NewClipmapUpdater creates a compositor.
func NewClipmapUpdater(opts ...UpdaterOption) *ClipmapUpdater {
	o := defaultUpdaterOptions()
	for _, apply := range opts {
		apply(&o)
	}
	return &ClipmapUpdater{pool: o.pool}
}

// Update runs one compositor pass: it recomputes cm's per-level origins
// from camera, drains terrain's pending invalidations for pass, and
// issues scissored draws through backend to refresh exactly the
// regions spec.md §4.6 calls for.
func (u *ClipmapUpdater) Update(ctx context.Context, backend RasterBackend, terrain *Terrain, cm *Clipmap, pass Pass, camera Vec2) error {
	cm.resolveCellSizes()
	cm.recomputeOrigins(camera)

	if err := cm.ensureTextures(ctx, backend, false); err != nil {
		return err
	}

	terrainDisjoint := terrain.drainInvalid(pass)

	minLevel := int(math.Ceil(cm.minLevel))
	for l := 0; l < cm.numLevels; l++ {
		if l < minLevel {
			continue
		}
		cm.buildInvalidRegions(l, terrainDisjoint)
		if len(cm.invalidRegions[l]) == 0 {
			continue
		}

		if err := backend.SetRenderTargets(cm.textures, cm.levelAtlasRegion(l)); err != nil {
			return newError(BackendFailure, "ClipmapUpdater.Update", err)
		}

		if err := u.drawClear(backend, terrain, cm, pass, l); err != nil {
			return err
		}

		for idx := 0; idx < terrain.TileCount(); idx++ {
			tile := terrain.Tile(idx)

			if pass == PassBase && tile.geometryMaterial != nil {
				geom := newTileGeometryLayer(tile)
				if err := u.drawLayer(ctx, backend, geom, tile, cm, pass, l); err != nil {
					return err
				}
			}

			for _, layer := range tile.layers {
				if !layer.ParticipatesIn(pass) {
					continue
				}
				if layer.Skip(l) {
					continue
				}
				if err := u.drawLayer(ctx, backend, layer, tile, cm, pass, l); err != nil {
					return err
				}
			}
		}
	}

	cm.useIncrementalUpdate = true
	return nil
}

// drawClear renders the internal ClearLayer into every invalid
// rectangle of level l (spec.md §4.6 step 5.iii).
func (u *ClipmapUpdater) drawClear(backend RasterBackend, terrain *Terrain, cm *Clipmap, pass Pass, l int) error {
	values := terrain.ClearValues(pass)
	for _, region := range cm.invalidRegions[l] {
		for _, draw := range cm.scissorDraws(l, region) {
			if err := backend.SetScissor(draw.Pixel); err != nil {
				return newError(BackendFailure, "ClipmapUpdater.drawClear", err)
			}
			if err := backend.Clear(values); err != nil {
				return newError(BackendFailure, "ClipmapUpdater.drawClear", err)
			}
		}
	}
	return nil
}

// drawLayer computes layer's effective dirt at level l (the
// intersection of its footprint with the level's invalid regions) and
// issues one scissored draw per resulting sub-rectangle, wrapping at
// the toroidal seam (spec.md §4.6 step 5.iv-v).
func (u *ClipmapUpdater) drawLayer(ctx context.Context, backend RasterBackend, layer *Layer, tile *TerrainTile, cm *Clipmap, pass Pass, l int) error {
	footprint := layer.effectiveAABB(tile)
	opacity := layer.Opacity(l)

	for _, invalid := range cm.invalidRegions[l] {
		dirt := footprint.Intersect(invalid)
		if dirt.IsEmpty() {
			continue
		}
		for _, draw := range cm.scissorDraws(l, dirt) {
			if err := backend.SetScissor(draw.Pixel); err != nil {
				return newError(BackendFailure, "ClipmapUpdater.drawLayer", err)
			}
			if layer.Material != nil {
				instance := MaterialInstance{Material: layer.Material, Pass: pass, Opacity: opacity}
				if err := backend.BindMaterial(instance); err != nil {
					return newError(BackendFailure, "ClipmapUpdater.drawLayer", err)
				}
			}
			if err := layer.onDraw(ctx, backend, draw.Pixel, draw.WorldTL, draw.WorldBR); err != nil {
				return newError(BackendFailure, "ClipmapUpdater.drawLayer", err)
			}
		}
	}
	return nil
}
