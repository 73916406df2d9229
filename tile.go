package clipmap

// TerrainTile is a rectangular heightfield region: an origin, a cell
// size, optional height/normal/hole textures, and an ordered list of
// layers whose draw order is their blend order (spec.md §3).
//
// TerrainTile itself holds no reference back to its owning Terrain —
// the source's TerrainTile.Terrain backreference is re-expressed per
// spec.md §9 as an arena-and-indices relationship: [Terrain] owns the
// tiles slice and is the only thing that knows a tile's index, so every
// mutation that must also invalidate goes through a Terrain method
// ([Terrain.SetTileOrigin], [Terrain.AppendLayer], ...) rather than the
// tile calling back into its parent.
type TerrainTile struct {
	originX, originZ float64
	cellSize         float64

	heightTexture TextureHandle
	heightWidth   int
	heightHeight  int

	normalTexture TextureHandle
	holeTexture   TextureHandle

	geometryMaterial Material
	layers           []*Layer

	aabb AABB
}

// NewTerrainTile creates a tile at the given origin with no textures
// and no layers. cellSize must be > 0.
func NewTerrainTile(originX, originZ, cellSize float64) *TerrainTile {
	t := &TerrainTile{originX: originX, originZ: originZ, cellSize: cellSize}
	t.recomputeAABB()
	return t
}

// recomputeAABB rebuilds the tile's AABB from its origin, cell size,
// and height texture dimensions (spec.md §4.2: "recomputed whenever
// origin, cell size, or height texture dimensions change").
func (t *TerrainTile) recomputeAABB() {
	widthX := float64(t.heightWidth) * t.cellSize
	widthZ := float64(t.heightHeight) * t.cellSize
	t.aabb = NewAABB(
		Vec2{X: t.originX, Z: t.originZ},
		Vec2{X: t.originX + widthX, Z: t.originZ + widthZ},
	)
}

// AABB returns the tile's current world-space bounds.
func (t *TerrainTile) AABB() AABB { return t.aabb }

// Origin returns the tile's world-space origin.
func (t *TerrainTile) Origin() Vec2 { return Vec2{X: t.originX, Z: t.originZ} }

// CellSize returns the tile's world-units-per-texel cell size.
func (t *TerrainTile) CellSize() float64 { return t.cellSize }

// Layers returns the tile's layers in draw order. The returned slice
// must not be mutated directly; use Terrain's layer-mutation methods so
// invalidation stays consistent.
func (t *TerrainTile) Layers() []*Layer { return t.layers }

// setOrigin updates the tile's origin in place. Callers (Terrain) are
// responsible for invalidating the union of the old and new AABB.
func (t *TerrainTile) setOrigin(x, z float64) {
	t.originX, t.originZ = x, z
	t.recomputeAABB()
}

// setCellSize updates the tile's cell size in place. size must be > 0;
// the caller validates before calling this.
func (t *TerrainTile) setCellSize(size float64) {
	t.cellSize = size
	t.recomputeAABB()
}

// setHeightTexture installs the tile's height texture and its texel
// dimensions, which feed directly into the tile's AABB.
func (t *TerrainTile) setHeightTexture(tex TextureHandle, width, height int) {
	t.heightTexture, t.heightWidth, t.heightHeight = tex, width, height
	t.recomputeAABB()
}

func (t *TerrainTile) setNormalTexture(tex TextureHandle) { t.normalTexture = tex }
func (t *TerrainTile) setHoleTexture(tex TextureHandle)   { t.holeTexture = tex }

func (t *TerrainTile) setGeometryMaterial(m Material) { t.geometryMaterial = m }

func (t *TerrainTile) appendLayer(l *Layer) {
	t.layers = append(t.layers, l)
}

func (t *TerrainTile) insertLayer(pos int, l *Layer) {
	t.layers = append(t.layers, nil)
	copy(t.layers[pos+1:], t.layers[pos:])
	t.layers[pos] = l
}

func (t *TerrainTile) removeLayer(pos int) *Layer {
	removed := t.layers[pos]
	t.layers = append(t.layers[:pos], t.layers[pos+1:]...)
	return removed
}

func (t *TerrainTile) replaceLayer(pos int, l *Layer) *Layer {
	old := t.layers[pos]
	t.layers[pos] = l
	return old
}
