package helpers

import (
	"github.com/gogpu/clipmap"
)

// RoadMesh is the triangulated submesh CarveRoad produces, handed back
// as the [clipmap.SubmeshHandle] a [clipmap.RoadLayer] draws. Vertex
// layout is (position.xz, position.y, uv along the road), one quad
// (two triangles) per path segment.
type RoadMesh struct {
	Positions []clipmap.Vec2 // xz, one pair per vertex
	Heights   []float64      // y, parallel to Positions
	U         []float64      // distance along the road, parallel to Positions
	Indices   []uint32       // triangle list, 6 per segment
}

// CarveRoad triangulates a ribbon of the given width along path (a
// polyline in world xz), bilinearly samples hf for each vertex's
// height, and flattens hf's cells under the ribbon to the road's
// centerline height with linear falloff over falloffWidth beyond the
// ribbon's edge — spec.md §4.7's "triangulates a road submesh... and
// applies side falloff along the road's segments." origin and cellSize
// map hf's grid to world space.
//
// Segments are independent once the centerline heights are resolved, so
// the falloff pass is distributed across pool by segment.
func CarveRoad(pool *clipmap.WorkerPool, path []clipmap.Vec2, width float64, hf *Heightfield, origin clipmap.Vec2, cellSize float64, falloffWidth float64) (*RoadMesh, error) {
	if len(path) < 2 {
		return nil, &clipmap.Error{Kind: clipmap.InvalidArgument, Op: "helpers.CarveRoad"}
	}
	if width <= 0 || cellSize <= 0 {
		return nil, &clipmap.Error{Kind: clipmap.InvalidArgument, Op: "helpers.CarveRoad"}
	}

	mesh := &RoadMesh{}
	half := width / 2
	dist := 0.0

	for i, p := range path {
		tangent := roadTangent(path, i)
		normal := clipmap.V2(-tangent.Z, tangent.X)

		left := p.Add(normal.Mul(half))
		right := p.Sub(normal.Mul(half))

		if i > 0 {
			dist += path[i].Sub(path[i-1]).Length()
		}

		mesh.Positions = append(mesh.Positions, left, right)
		mesh.U = append(mesh.U, dist, dist)
		mesh.Heights = append(mesh.Heights, sampleBilinear(hf, origin, cellSize, left), sampleBilinear(hf, origin, cellSize, right))

		if i < len(path)-1 {
			base := uint32(len(mesh.Positions) - 2)
			mesh.Indices = append(mesh.Indices,
				base, base+1, base+2,
				base+1, base+3, base+2,
			)
		}
	}

	// Adjacent segments' falloff can touch the same cells near their
	// shared vertex, so carving runs in two passes — even-indexed then
	// odd-indexed segments — each internally pool-parallel but never
	// running two segments that share a boundary at the same time.
	numSegments := len(path) - 1
	for _, parity := range [2]int{0, 1} {
		err := parallelRows(pool, (numSegments-parity+1)/2, func(k int) error {
			i := parity + 2*k
			carveSegment(hf, origin, cellSize, path[i], path[i+1], half, falloffWidth)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return mesh, nil
}

func roadTangent(path []clipmap.Vec2, i int) clipmap.Vec2 {
	switch {
	case i == 0:
		return normalized(path[1].Sub(path[0]))
	case i == len(path)-1:
		return normalized(path[i].Sub(path[i-1]))
	default:
		return normalized(path[i+1].Sub(path[i-1]))
	}
}

func normalized(v clipmap.Vec2) clipmap.Vec2 {
	l := v.Length()
	if l == 0 {
		return clipmap.V2(1, 0)
	}
	return clipmap.V2(v.X/l, v.Z/l)
}

// sampleBilinear reads hf at world position p, bilinearly interpolating
// between its four nearest grid cells.
func sampleBilinear(hf *Heightfield, origin clipmap.Vec2, cellSize float64, p clipmap.Vec2) float64 {
	gx := (p.X - origin.X) / cellSize
	gz := (p.Z - origin.Z) / cellSize

	x0, z0 := int(gx), int(gz)
	fx, fz := gx-float64(x0), gz-float64(z0)

	h00 := float64(hf.At(x0, z0))
	h10 := float64(hf.At(x0+1, z0))
	h01 := float64(hf.At(x0, z0+1))
	h11 := float64(hf.At(x0+1, z0+1))

	top := h00 + (h10-h00)*fx
	bottom := h01 + (h11-h01)*fx
	return top + (bottom-top)*fz
}

// carveSegment flattens hf's cells near the [a,b] segment to the
// road's centerline height, with a linear falloff beyond the ribbon
// half-width out to half+falloffWidth.
func carveSegment(hf *Heightfield, origin clipmap.Vec2, cellSize float64, a, b clipmap.Vec2, half, falloffWidth float64) {
	reach := half + falloffWidth
	minX := minF(a.X, b.X) - reach
	maxX := maxF(a.X, b.X) + reach
	minZ := minF(a.Z, b.Z) - reach
	maxZ := maxF(a.Z, b.Z) + reach

	gx0 := int((minX - origin.X) / cellSize)
	gx1 := int((maxX-origin.X)/cellSize) + 1
	gz0 := int((minZ - origin.Z) / cellSize)
	gz1 := int((maxZ-origin.Z)/cellSize) + 1

	segVec := b.Sub(a)
	segLenSq := segVec.X*segVec.X + segVec.Z*segVec.Z
	centerline := (float64(hf.At(int((a.X-origin.X)/cellSize), int((a.Z-origin.Z)/cellSize))) +
		float64(hf.At(int((b.X-origin.X)/cellSize), int((b.Z-origin.Z)/cellSize)))) / 2

	for gz := gz0; gz <= gz1; gz++ {
		for gx := gx0; gx <= gx1; gx++ {
			world := clipmap.V2(origin.X+float64(gx)*cellSize, origin.Z+float64(gz)*cellSize)
			t := 0.0
			if segLenSq > 0 {
				t = (world.Sub(a).X*segVec.X + world.Sub(a).Z*segVec.Z) / segLenSq
			}
			t = clampUnit(t)
			closest := a.Add(segVec.Mul(t))
			dist := world.Sub(closest).Length()

			switch {
			case dist <= half:
				hf.Set(gx, gz, float32(centerline))
			case dist <= half+falloffWidth:
				blend := (dist - half) / falloffWidth
				original := float64(hf.At(gx, gz))
				hf.Set(gx, gz, float32(centerline+(original-centerline)*blend))
			}
		}
	}
}

func clampUnit(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
