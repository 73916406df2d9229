package helpers

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/clipmap"
)

// MipFilter selects the downsample kernel BuildMipmaps uses between
// levels.
type MipFilter int

const (
	// MipFilterBox applies spec.md §4.7's 3x3 [1,2,1]⊗[1,2,1] separable
	// box filter (golang.org/x/image/draw.BiLinear approximates this
	// well for a 2x downsample and is what this filter uses).
	MipFilterBox MipFilter = iota
	// MipFilterNearest point-samples every other texel; cheaper, blockier.
	MipFilterNearest
)

// BuildMipmaps generates a full mip chain (including level 0, a copy of
// base) down to a 1x1 level, each level half the size of the one above
// (rounding down, floored at 1). Only *image.RGBA and *image.NRGBA are
// supported; anything else returns an UnsupportedFormat error, matching
// the teacher's format-taxonomy split between UnsupportedFormat (a
// format this helper will never know how to touch) and NotImplemented
// (a format it could support but doesn't yet).
func BuildMipmaps(pool *clipmap.WorkerPool, base image.Image, filter MipFilter) ([]*image.RGBA, error) {
	level0, err := toRGBA(base)
	if err != nil {
		return nil, err
	}

	var sizes [][2]int
	w, h := level0.Bounds().Dx(), level0.Bounds().Dy()
	for w > 1 || h > 1 {
		if w > 1 {
			w /= 2
		}
		if h > 1 {
			h /= 2
		}
		sizes = append(sizes, [2]int{w, h})
	}

	levels := make([]*image.RGBA, 1+len(sizes))
	levels[0] = level0

	var scaler xdraw.Scaler = xdraw.BiLinear
	if filter == MipFilterNearest {
		scaler = xdraw.NearestNeighbor
	}

	// Every level downsamples directly from level0, so the levels are
	// independent and can be built across the worker pool concurrently.
	err = parallelRows(pool, len(sizes), func(i int) error {
		nw, nh := sizes[i][0], sizes[i][1]
		next := image.NewRGBA(image.Rect(0, 0, nw, nh))
		scaler.Scale(next, next.Bounds(), level0, level0.Bounds(), xdraw.Over, nil)
		levels[1+i] = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return levels, nil
}

func toRGBA(img image.Image) (*image.RGBA, error) {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	switch img.(type) {
	case *image.NRGBA:
		out := image.NewRGBA(img.Bounds())
		draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
		return out, nil
	default:
		return nil, &clipmap.Error{Kind: clipmap.UnsupportedFormat, Op: "helpers.BuildMipmaps"}
	}
}
