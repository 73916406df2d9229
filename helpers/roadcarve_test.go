package helpers

import (
	"testing"

	"github.com/gogpu/clipmap"
)

func flatHeightfield(size int, height float32) *Heightfield {
	hf := NewHeightfield(size, size)
	for i := range hf.Data {
		hf.Data[i] = height
	}
	return hf
}

func TestCarveRoadRejectsShortPath(t *testing.T) {
	hf := flatHeightfield(8, 0)
	_, err := CarveRoad(clipmap.NewWorkerPool(1), []clipmap.Vec2{clipmap.V2(0, 0)}, 2, hf, clipmap.V2(0, 0), 1, 1)
	if !clipmap.Is(err, clipmap.InvalidArgument) {
		t.Fatalf("err = %v, want InvalidArgument", err)
	}
}

func TestCarveRoadRejectsNonPositiveWidthOrCellSize(t *testing.T) {
	hf := flatHeightfield(8, 0)
	path := []clipmap.Vec2{clipmap.V2(0, 0), clipmap.V2(4, 0)}

	if _, err := CarveRoad(clipmap.NewWorkerPool(1), path, 0, hf, clipmap.V2(0, 0), 1, 1); !clipmap.Is(err, clipmap.InvalidArgument) {
		t.Fatalf("width=0: err = %v, want InvalidArgument", err)
	}
	if _, err := CarveRoad(clipmap.NewWorkerPool(1), path, 2, hf, clipmap.V2(0, 0), 0, 1); !clipmap.Is(err, clipmap.InvalidArgument) {
		t.Fatalf("cellSize=0: err = %v, want InvalidArgument", err)
	}
}

func TestCarveRoadProducesTriangulatedMesh(t *testing.T) {
	hf := flatHeightfield(16, 2)
	path := []clipmap.Vec2{clipmap.V2(2, 8), clipmap.V2(8, 8), clipmap.V2(14, 8)}

	mesh, err := CarveRoad(clipmap.NewWorkerPool(2), path, 2, hf, clipmap.V2(0, 0), 1, 1)
	if err != nil {
		t.Fatalf("CarveRoad returned error: %v", err)
	}

	if len(mesh.Positions) != 2*len(path) {
		t.Fatalf("len(Positions) = %d, want %d", len(mesh.Positions), 2*len(path))
	}
	if len(mesh.Heights) != len(mesh.Positions) {
		t.Fatalf("len(Heights) = %d, want %d", len(mesh.Heights), len(mesh.Positions))
	}
	if len(mesh.U) != len(mesh.Positions) {
		t.Fatalf("len(U) = %d, want %d", len(mesh.U), len(mesh.Positions))
	}
	wantIndices := (len(path) - 1) * 6
	if len(mesh.Indices) != wantIndices {
		t.Fatalf("len(Indices) = %d, want %d", len(mesh.Indices), wantIndices)
	}
	for _, idx := range mesh.Indices {
		if int(idx) >= len(mesh.Positions) {
			t.Fatalf("index %d out of range for %d positions", idx, len(mesh.Positions))
		}
	}
}

func TestCarveRoadFlattensCenterlineHeight(t *testing.T) {
	hf := NewHeightfield(20, 20)
	for y := 0; y < hf.Height; y++ {
		for x := 0; x < hf.Width; x++ {
			hf.Set(x, y, float32(y))
		}
	}

	path := []clipmap.Vec2{clipmap.V2(2, 10), clipmap.V2(17, 10)}
	want := hf.At(10, 10)

	_, err := CarveRoad(clipmap.NewWorkerPool(2), path, 4, hf, clipmap.V2(0, 0), 1, 0.001)
	if err != nil {
		t.Fatalf("CarveRoad returned error: %v", err)
	}

	if got := hf.At(10, 10); got != want {
		t.Fatalf("At(10,10) = %v after carving, want unchanged centerline height %v", got, want)
	}
	// A cell under the ribbon but off the original centerline height
	// should have been pulled toward the flattened level.
	if got := hf.At(10, 11); got == 11 {
		t.Fatalf("At(10,11) = %v, want it flattened away from the original slope value 11", got)
	}
}

func TestCarveRoadWithNilPoolStillWorks(t *testing.T) {
	hf := flatHeightfield(8, 1)
	path := []clipmap.Vec2{clipmap.V2(1, 4), clipmap.V2(6, 4)}

	mesh, err := CarveRoad(nil, path, 2, hf, clipmap.V2(0, 0), 1, 1)
	if err != nil {
		t.Fatalf("CarveRoad returned error: %v", err)
	}
	if mesh == nil {
		t.Fatalf("mesh is nil")
	}
}
