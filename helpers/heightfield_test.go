package helpers

import "testing"

func TestNewHeightfieldIsZeroed(t *testing.T) {
	hf := NewHeightfield(4, 3)
	if hf.Width != 4 || hf.Height != 3 {
		t.Fatalf("dimensions = %d x %d, want 4 x 3", hf.Width, hf.Height)
	}
	if len(hf.Data) != 12 {
		t.Fatalf("len(Data) = %d, want 12", len(hf.Data))
	}
	for i, v := range hf.Data {
		if v != 0 {
			t.Fatalf("Data[%d] = %v, want 0", i, v)
		}
	}
}

func TestHeightfieldSetAndAt(t *testing.T) {
	hf := NewHeightfield(4, 4)
	hf.Set(2, 1, 5)
	if got := hf.At(2, 1); got != 5 {
		t.Fatalf("At(2,1) = %v, want 5", got)
	}
}

func TestHeightfieldAtClampsToEdge(t *testing.T) {
	hf := NewHeightfield(3, 3)
	hf.Set(0, 0, 1)
	hf.Set(2, 2, 9)

	if got := hf.At(-5, -5); got != 1 {
		t.Fatalf("At(-5,-5) = %v, want 1 (clamped to corner 0,0)", got)
	}
	if got := hf.At(50, 50); got != 9 {
		t.Fatalf("At(50,50) = %v, want 9 (clamped to corner 2,2)", got)
	}
}

func TestHeightfieldSetOutOfRangeIsNoop(t *testing.T) {
	hf := NewHeightfield(2, 2)
	hf.Set(-1, 0, 3)
	hf.Set(0, -1, 3)
	hf.Set(2, 0, 3)
	hf.Set(0, 2, 3)
	for i, v := range hf.Data {
		if v != 0 {
			t.Fatalf("Data[%d] = %v after out-of-range Set calls, want unchanged 0", i, v)
		}
	}
}
