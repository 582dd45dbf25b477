package gen

import (
	"github.com/OCharnyshevich/subsurface/internal/world/block"
	"github.com/OCharnyshevich/subsurface/internal/world/chunk"
	"github.com/OCharnyshevich/subsurface/internal/world/cube"
	"github.com/OCharnyshevich/subsurface/internal/world/registry"
)

const (
	heightScale = 0.07
	caveScale   = 0.15
	// Blocks are only placed where the cave noise is below this.
	caveThreshold = 0.25
	dirtDepth     = 3
)

// Simplex derives a column height in [Low, High] from 2D noise and carves
// caves with 3D noise.
type Simplex struct {
	Low, High int
	noise     *Noise
}

// NewSimplex returns a simplex terrain generator for seed.
func NewSimplex(low, high int, seed int64) *Simplex {
	return &Simplex{Low: low, High: high, noise: NewNoise(seed)}
}

func (g *Simplex) Check(reg *registry.Registry) error {
	return checkNames(reg, "grass", "dirt", "stone")
}

// HeightAt returns the surface Y of the column at (x, z).
func (g *Simplex) HeightAt(x, z int) int {
	s := g.noise.Noise2D(float64(x)*heightScale, float64(z)*heightScale)
	return g.Low + int(float64(g.High-g.Low)*(s+1)/2)
}

func (g *Simplex) solid(p cube.Pos) bool {
	return g.noise.Noise3D(float64(p.X)*caveScale, float64(p.Y)*caveScale, float64(p.Z)*caveScale) < caveThreshold
}

func (g *Simplex) Generate(origin cube.Pos, reg *registry.Registry) *chunk.Chunk {
	layers := surfaceLayers{
		grass: block.New(reg.MustID("grass")),
		dirt:  block.New(reg.MustID("dirt")),
		stone: block.New(reg.MustID("stone")),
	}

	c := chunk.New(origin)
	for x := origin.X; x < origin.X+chunk.Size; x++ {
		for z := origin.Z; z < origin.Z+chunk.Size; z++ {
			h := g.HeightAt(x, z)
			top := min(h, origin.Y+chunk.Size-1)
			for y := origin.Y; y <= top; y++ {
				p := cube.P(x, y, z)
				if g.solid(p) {
					c.SetBlockImmediate(p, layers.at(y, h))
				}
			}
		}
	}
	return c
}

type surfaceLayers struct {
	grass, dirt, stone block.Block
}

// at picks grass on the surface, dirt for dirtDepth blocks below it, then stone.
func (l surfaceLayers) at(y, surface int) block.Block {
	switch {
	case y == surface:
		return l.grass
	case y >= surface-dirtDepth:
		return l.dirt
	default:
		return l.stone
	}
}
