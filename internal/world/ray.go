package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/subsurface/internal/world/block"
	"github.com/OCharnyshevich/subsurface/internal/world/cube"
)

// Hit is the first non-empty voxel a ray enters and the face it entered by.
type Hit struct {
	Pos  cube.Pos
	Face block.Face
}

// Adjacent returns the empty cell in front of the hit face, where a block
// placed against it would go.
func (h Hit) Adjacent() cube.Pos {
	return h.Pos.Add(h.Face.Normal())
}

// CastRay walks the voxels along dir from origin, for at most |dir| units,
// and returns the first non-empty one. The voxel containing origin is not
// tested. Axes where dir is zero are never stepped along.
func (w *World) CastRay(origin, dir mgl32.Vec3) (Hit, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	h, ok := w.castRay(origin, dir)
	w.metrics.RayCast(ok)
	return h, ok
}

func (w *World) castRay(origin, dir mgl32.Vec3) (Hit, bool) {
	length := float64(dir.Len())
	if length == 0 {
		return Hit{}, false
	}

	var (
		voxel  [3]int
		step   [3]int
		tMax   [3]float64 // distance along the ray to the next boundary per axis
		tDelta [3]float64 // distance along the ray between boundaries per axis
	)
	for i := range 3 {
		o, d := float64(origin[i]), float64(dir[i])
		cell := math.Floor(o)
		voxel[i] = int(cell)
		switch {
		case d > 0:
			step[i] = 1
			tDelta[i] = length / d
			tMax[i] = (cell + 1 - o) * tDelta[i]
		case d < 0:
			step[i] = -1
			tDelta[i] = length / -d
			tMax[i] = (o - cell) * tDelta[i]
		default:
			tDelta[i] = math.Inf(1)
			tMax[i] = math.Inf(1)
		}
	}

	for {
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		if tMax[axis] > length {
			return Hit{}, false
		}

		voxel[axis] += step[axis]
		tMax[axis] += tDelta[axis]

		p := cube.P(voxel[0], voxel[1], voxel[2])
		if !w.block(p).Empty() {
			normal := cube.Pos{}.WithAxis(axis, -step[axis])
			return Hit{Pos: p, Face: block.FaceFromNormal(normal)}, true
		}
	}
}
