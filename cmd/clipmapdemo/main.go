// Command clipmapdemo drives a small Terrain through a handful of
// simulated camera moves against the software RasterBackend and saves
// the resulting base-pass atlas to a PNG, as a smoke test of the full
// Terrain -> Clipmap -> ClipmapUpdater -> RasterBackend pipeline.
package main

import (
	"context"
	"flag"
	"image/png"
	"log"
	"os"

	"github.com/gogpu/clipmap"
	"github.com/gogpu/clipmap/backend/software"
)

func main() {
	var (
		cellsPerLevel = flag.Uint("cells", 64, "texels per clipmap level, per axis")
		numLevels     = flag.Int("levels", 4, "number of clipmap ring levels")
		frames        = flag.Int("frames", 8, "number of simulated camera-move frames")
		output        = flag.String("output", "clipmap.png", "output PNG path")
	)
	flag.Parse()

	backend := software.New()
	if err := backend.Init(); err != nil {
		log.Fatalf("backend.Init: %v", err)
	}
	defer backend.Close()

	cm, err := clipmap.NewClipmap(
		clipmap.WithCellsPerLevel(uint32(*cellsPerLevel)),
		clipmap.WithNumLevels(*numLevels),
		clipmap.WithCellSize(0, 1.0),
	)
	if err != nil {
		log.Fatalf("NewClipmap: %v", err)
	}

	terrain := buildDemoTerrain(*cellsPerLevel)
	updater := clipmap.NewClipmapUpdater()

	ctx := context.Background()
	camera := clipmap.V2(0, 0)
	for f := 0; f < *frames; f++ {
		// Walk the camera diagonally so every level's ring eventually
		// shifts and exercises the toroidal re-wrap path.
		camera = camera.Add(clipmap.V2(3, 2))

		if err := updater.Update(ctx, backend, terrain, cm, clipmap.PassBase, camera); err != nil {
			log.Fatalf("frame %d: Update: %v", f, err)
		}
		log.Printf("frame %d: camera=(%.1f, %.1f)", f, camera.X, camera.Z)
	}

	tex := cm.Texture(0)
	img, ok := software.Image(tex)
	if !ok {
		log.Fatalf("could not recover atlas image from texture handle")
	}

	out, err := os.Create(*output)
	if err != nil {
		log.Fatalf("create %s: %v", *output, err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		log.Fatalf("encode PNG: %v", err)
	}
	log.Printf("wrote %s (%dx%d)", *output, img.Bounds().Dx(), img.Bounds().Dy())
}

// buildDemoTerrain places one tile, four ring levels' worth of cells
// wide, with two overlapping material layers: a ground layer over the
// whole tile and a rock layer over a central patch.
func buildDemoTerrain(cellsPerLevel uint) *clipmap.Terrain {
	terrain := clipmap.NewTerrain()

	span := float64(cellsPerLevel) * 4
	tile := clipmap.NewTerrainTile(-span/2, -span/2, 1.0)
	idx := terrain.AddTile(tile)
	if err := terrain.SetTileHeightTexture(idx, nil, int(span), int(span)); err != nil {
		log.Fatalf("SetTileHeightTexture: %v", err)
	}

	ground := clipmap.NewBasicMaterial(clipmap.PassBase)
	clipmap.SetParameter(ground, clipmap.PassBase, "DiffuseColor", clipmap.RGB(0.35, 0.55, 0.25))
	terrain.AppendLayer(idx, clipmap.NewMaterialLayer(ground, nil, clipmap.PassBase))

	patch := clipmap.AABB{
		Min: clipmap.V2(-span/8, -span/8),
		Max: clipmap.V2(span/8, span/8),
	}
	rock := clipmap.NewBasicMaterial(clipmap.PassBase)
	clipmap.SetParameter(rock, clipmap.PassBase, "DiffuseColor", clipmap.RGB(0.5, 0.5, 0.5))
	terrain.AppendLayer(idx, clipmap.NewMaterialLayer(rock, &patch, clipmap.PassBase))

	return terrain
}
