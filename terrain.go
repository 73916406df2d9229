package clipmap

import "log/slog"

// Terrain aggregates tiles and owns the two invalid-region lists (base,
// detail) and the per-clipmap clear values (spec.md §3). It is the
// arena the redesign in spec.md §9 calls for: tiles are referenced by
// index, and every mutation that needs to invalidate goes through a
// Terrain method instead of a tile calling back into its owner.
type Terrain struct {
	tiles []*TerrainTile

	invalidBase   regionList
	invalidDetail regionList

	baseClearValues   [4]RGBA
	detailClearValues [4]RGBA
}

// NewTerrain creates an empty Terrain.
func NewTerrain(opts ...TerrainOption) *Terrain {
	o := defaultTerrainOptions()
	for _, apply := range opts {
		apply(&o)
	}
	return &Terrain{
		baseClearValues:   o.baseClearValues,
		detailClearValues: o.detailClearValues,
	}
}

// AABB returns the union of every tile's AABB (y ignored).
func (t *Terrain) AABB() AABB {
	combined := EmptyAABB()
	for _, tile := range t.tiles {
		combined = combined.Union(tile.AABB())
	}
	return combined
}

// TileCount returns the number of tiles.
func (t *Terrain) TileCount() int { return len(t.tiles) }

// Tile returns the tile at idx.
func (t *Terrain) Tile(idx int) *TerrainTile { return t.tiles[idx] }

// ClearValues returns the per-MRT-slot clear values used by pass's
// ClearLayer.
func (t *Terrain) ClearValues(pass Pass) [4]RGBA {
	if pass == PassBase {
		return t.baseClearValues
	}
	return t.detailClearValues
}

// SetClearValues sets the per-MRT-slot clear values used by pass's
// ClearLayer.
func (t *Terrain) SetClearValues(pass Pass, values [4]RGBA) {
	if pass == PassBase {
		t.baseClearValues = values
	} else {
		t.detailClearValues = values
	}
}

// AddTile appends tile and invalidates its AABB, returning its index.
func (t *Terrain) AddTile(tile *TerrainTile) int {
	idx := len(t.tiles)
	t.tiles = append(t.tiles, tile)
	t.InvalidateTile(idx)
	return idx
}

// SetTileOrigin moves tile idx and invalidates the union of its old and
// new AABB.
func (t *Terrain) SetTileOrigin(idx int, x, z float64) error {
	tile := t.tiles[idx]
	old := tile.AABB()
	tile.setOrigin(x, z)
	t.invalidateBoth(old.Union(tile.AABB()))
	return nil
}

// SetTileCellSize changes tile idx's cell size and invalidates the
// union of its old and new AABB. size must be > 0.
func (t *Terrain) SetTileCellSize(idx int, size float64) error {
	if size <= 0 {
		return newError(InvalidArgument, "Terrain.SetTileCellSize", nil)
	}
	tile := t.tiles[idx]
	old := tile.AABB()
	tile.setCellSize(size)
	t.invalidateBoth(old.Union(tile.AABB()))
	return nil
}

// SetTileHeightTexture installs tile idx's height texture (and its
// texel dimensions, which feed the tile's AABB) and invalidates the
// union of its old and new AABB.
func (t *Terrain) SetTileHeightTexture(idx int, tex TextureHandle, width, height int) error {
	if width <= 0 || height <= 0 {
		return newError(InvalidArgument, "Terrain.SetTileHeightTexture", nil)
	}
	tile := t.tiles[idx]
	old := tile.AABB()
	tile.setHeightTexture(tex, width, height)
	t.invalidateBoth(old.Union(tile.AABB()))
	return nil
}

// SetTileNormalTexture installs tile idx's normal texture and
// invalidates the tile's AABB.
func (t *Terrain) SetTileNormalTexture(idx int, tex TextureHandle) {
	t.tiles[idx].setNormalTexture(tex)
	t.InvalidateTile(idx)
}

// SetTileHoleTexture installs tile idx's hole texture and invalidates
// the tile's AABB.
func (t *Terrain) SetTileHoleTexture(idx int, tex TextureHandle) {
	t.tiles[idx].setHoleTexture(tex)
	t.InvalidateTile(idx)
}

// SetTileGeometryMaterial installs the material the internal
// TileGeometryLayer binds when drawing tile idx's base pass, and
// invalidates the tile's AABB.
func (t *Terrain) SetTileGeometryMaterial(idx int, m Material) {
	t.tiles[idx].setGeometryMaterial(m)
	t.InvalidateTile(idx)
}

// AppendLayer appends layer to tile idx's layer list and invalidates
// it (spec.md §4.2: "any mutation of layers calls invalidate(layer) on
// the owning Terrain").
func (t *Terrain) AppendLayer(idx int, layer *Layer) {
	t.tiles[idx].appendLayer(layer)
	t.InvalidateTileLayer(idx, layer)
}

// InsertLayer inserts layer at position pos in tile idx's layer list
// and invalidates it.
func (t *Terrain) InsertLayer(idx, pos int, layer *Layer) {
	t.tiles[idx].insertLayer(pos, layer)
	t.InvalidateTileLayer(idx, layer)
}

// RemoveLayer removes the layer at position pos from tile idx's layer
// list and invalidates the removed layer's former footprint.
func (t *Terrain) RemoveLayer(idx, pos int) {
	removed := t.tiles[idx].removeLayer(pos)
	t.InvalidateTileLayer(idx, removed)
}

// ReplaceLayer replaces the layer at position pos in tile idx's layer
// list and invalidates both the old and the new layer's footprint.
func (t *Terrain) ReplaceLayer(idx, pos int, layer *Layer) {
	old := t.tiles[idx].replaceLayer(pos, layer)
	t.InvalidateTileLayer(idx, old)
	t.InvalidateTileLayer(idx, layer)
}

// Invalidate clears both invalid-region lists and inserts the whole
// terrain AABB, marked clipped (spec.md §4.4). Used when topology
// changes wholesale.
func (t *Terrain) Invalidate() {
	whole := t.AABB()
	t.invalidBase.reset()
	t.invalidDetail.reset()
	t.invalidBase.insert(whole)
	t.invalidDetail.insert(whole)
	Logger().Debug("terrain invalidated in full", slog.Any("aabb", whole))
}

// InvalidateTile inserts tile idx's AABB into both invalid-region
// lists.
func (t *Terrain) InvalidateTile(idx int) {
	t.invalidateBoth(t.tiles[idx].AABB())
}

// InvalidateTileLayer inserts layer's effective AABB (its own, or the
// owning tile's if it declares none) into the invalid-region list of
// each pass the layer participates in.
func (t *Terrain) InvalidateTileLayer(idx int, layer *Layer) {
	tile := t.tiles[idx]
	box := layer.effectiveAABB(tile)
	for _, pass := range layer.Passes {
		t.insertPass(pass, box)
	}
}

// InvalidateLayer inserts layer's own AABB, failing with MissingAABB if
// the layer declares none (spec.md §4.4: the caller must use
// InvalidateTileLayer instead when a layer has no local AABB).
func (t *Terrain) InvalidateLayer(layer *Layer) error {
	if layer.AABB == nil {
		return newError(MissingAABB, "Terrain.InvalidateLayer", nil)
	}
	for _, pass := range layer.Passes {
		t.insertPass(pass, *layer.AABB)
	}
	return nil
}

// InvalidateAABB unconditionally inserts aabb into both invalid-region
// lists.
func (t *Terrain) InvalidateAABB(aabb AABB) {
	t.invalidateBoth(aabb)
}

func (t *Terrain) invalidateBoth(box AABB) {
	t.invalidBase.insert(box)
	t.invalidDetail.insert(box)
}

func (t *Terrain) insertPass(pass Pass, box AABB) {
	if pass == PassBase {
		t.invalidBase.insert(box)
	} else {
		t.invalidDetail.insert(box)
	}
}

// drainInvalid returns pass's pending invalidations as a pairwise
// disjoint set, emptying Terrain's own list (spec.md §4.4: "Terrain's
// own lists are emptied only after the compositor has translated them
// into per-level rectangles").
func (t *Terrain) drainInvalid(pass Pass) []AABB {
	if pass == PassBase {
		return t.invalidBase.drain()
	}
	return t.invalidDetail.drain()
}
