package helpers

import "github.com/gogpu/clipmap"

// Smooth applies iterations passes of 3x3 weighted-average heightfield
// smoothing (spec.md §4.7), where each cell's new height is a weighted
// blend of its 3x3 neighborhood biased toward cells closer in height to
// the center — a cheap edge-preserving filter that avoids eroding sharp
// cliffs the way a plain box blur would. Each row is independent, so
// rows are distributed across pool.
func Smooth(pool *clipmap.WorkerPool, hf *Heightfield, iterations int) (*Heightfield, error) {
	if iterations <= 0 {
		return hf, nil
	}

	src := hf
	for i := 0; i < iterations; i++ {
		dst := NewHeightfield(src.Width, src.Height)
		err := parallelRows(pool, src.Height, func(y int) error {
			smoothRow(src, dst, y)
			return nil
		})
		if err != nil {
			return nil, err
		}
		src = dst
	}
	return src, nil
}

func smoothRow(src, dst *Heightfield, y int) {
	for x := 0; x < src.Width; x++ {
		center := src.At(x, y)

		var weightedSum, weightTotal float32
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				v := src.At(x+dx, y+dy)
				// Weight falls off with distance from the center height,
				// so a cliff's far side contributes little to its near side.
				diff := v - center
				if diff < 0 {
					diff = -diff
				}
				w := float32(1) / (1 + diff)
				weightedSum += v * w
				weightTotal += w
			}
		}
		dst.Set(x, y, weightedSum/weightTotal)
	}
}
