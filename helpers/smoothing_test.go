package helpers

import (
	"testing"

	"github.com/gogpu/clipmap"
)

func TestSmoothZeroIterationsIsNoop(t *testing.T) {
	hf := NewHeightfield(3, 3)
	hf.Set(1, 1, 7)

	out, err := Smooth(clipmap.NewWorkerPool(2), hf, 0)
	if err != nil {
		t.Fatalf("Smooth returned error: %v", err)
	}
	if out != hf {
		t.Fatalf("Smooth with 0 iterations returned a different heightfield")
	}
}

func TestSmoothPreservesFlatHeightfield(t *testing.T) {
	hf := NewHeightfield(5, 5)
	for i := range hf.Data {
		hf.Data[i] = 10
	}

	out, err := Smooth(clipmap.NewWorkerPool(2), hf, 3)
	if err != nil {
		t.Fatalf("Smooth returned error: %v", err)
	}
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			if got := out.At(x, y); got != 10 {
				t.Fatalf("At(%d,%d) = %v, want 10 on a flat field", x, y, got)
			}
		}
	}
}

func TestSmoothReducesSingleSpike(t *testing.T) {
	hf := NewHeightfield(5, 5)
	hf.Set(2, 2, 100)

	out, err := Smooth(clipmap.NewWorkerPool(4), hf, 1)
	if err != nil {
		t.Fatalf("Smooth returned error: %v", err)
	}
	if got := out.At(2, 2); got >= 100 {
		t.Fatalf("At(2,2) = %v after smoothing, want less than the original spike of 100", got)
	}
	if got := out.At(2, 1); got <= 0 {
		t.Fatalf("At(2,1) = %v after smoothing, want > 0 (spread from the spike)", got)
	}
}

func TestSmoothWithNilPoolStillWorks(t *testing.T) {
	hf := NewHeightfield(3, 3)
	for i := range hf.Data {
		hf.Data[i] = 4
	}
	out, err := Smooth(nil, hf, 1)
	if err != nil {
		t.Fatalf("Smooth returned error: %v", err)
	}
	if got := out.At(1, 1); got != 4 {
		t.Fatalf("At(1,1) = %v, want 4", got)
	}
}
