package helpers

import (
	"image"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/clipmap"
)

// SynthesizeNormals derives a normal map from hf using a Sobel gradient
// estimate (spec.md §4.7), encoded rgba8 y-up/green-up: R = x*0.5+0.5,
// G = y*0.5+0.5 (world y, the height axis, is "up"; a flat field gives
// G = 255), B = z*0.5+0.5, A = 255. cellSize scales the gradient so
// normals are correct in world units regardless of texel density.
func SynthesizeNormals(pool *clipmap.WorkerPool, hf *Heightfield, cellSize float64) (*image.RGBA, error) {
	if cellSize <= 0 {
		return nil, &clipmap.Error{Kind: clipmap.InvalidArgument, Op: "helpers.SynthesizeNormals"}
	}

	out := image.NewRGBA(image.Rect(0, 0, hf.Width, hf.Height))
	err := parallelRows(pool, hf.Height, func(y int) error {
		synthesizeNormalRow(hf, out, y, float32(cellSize))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func synthesizeNormalRow(hf *Heightfield, out *image.RGBA, y int, cellSize float32) {
	for x := 0; x < hf.Width; x++ {
		// Sobel horizontal and vertical kernels over the 3x3 neighborhood,
		// accumulated as a f32.Vec2 gradient before being folded into the
		// 3-component surface normal.
		grad := f32.Vec2{
			(hf.At(x+1, y-1) + 2*hf.At(x+1, y) + hf.At(x+1, y+1)) -
				(hf.At(x-1, y-1) + 2*hf.At(x-1, y) + hf.At(x-1, y+1)),
			(hf.At(x-1, y+1) + 2*hf.At(x, y+1) + hf.At(x+1, y+1)) -
				(hf.At(x-1, y-1) + 2*hf.At(x, y-1) + hf.At(x+1, y-1)),
		}

		nx, ny, nz := normalize(-grad[0]/(8*cellSize), 1, -grad[1]/(8*cellSize))

		off := out.PixOffset(x, y)
		out.Pix[off+0] = encodeUnit(nx)
		out.Pix[off+1] = encodeUnit(ny)
		out.Pix[off+2] = encodeUnit(nz)
		out.Pix[off+3] = 255
	}
}

func normalize(x, y, z float32) (float32, float32, float32) {
	length := sqrt32(x*x + y*y + z*z)
	if length == 0 {
		return 0, 1, 0
	}
	return x / length, y / length, z / length
}

func sqrt32(v float32) float32 {
	// Newton-Raphson refinement from a crude initial guess avoids
	// pulling in math.Sqrt's float64 round trip for a hot per-texel path.
	if v <= 0 {
		return 0
	}
	x := v
	for range 4 {
		x = 0.5 * (x + v/x)
	}
	return x
}

func encodeUnit(v float32) uint8 {
	c := v*0.5 + 0.5
	if c <= 0 {
		return 0
	}
	if c >= 1 {
		return 255
	}
	return uint8(c * 255)
}
