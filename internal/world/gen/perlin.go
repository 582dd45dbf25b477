package gen

import (
	"github.com/aquilax/go-perlin"

	"github.com/OCharnyshevich/subsurface/internal/world/block"
	"github.com/OCharnyshevich/subsurface/internal/world/chunk"
	"github.com/OCharnyshevich/subsurface/internal/world/cube"
	"github.com/OCharnyshevich/subsurface/internal/world/registry"
)

const (
	perlinAlpha  = 2.0
	perlinBeta   = 2.0
	perlinOctave = 3
	hillScale    = 0.02
)

// Perlin produces rolling hills without caves.
type Perlin struct {
	Low, High int
	noise     *perlin.Perlin
}

// NewPerlin returns a hills generator for seed.
func NewPerlin(low, high int, seed int64) *Perlin {
	return &Perlin{
		Low:   low,
		High:  high,
		noise: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctave, seed),
	}
}

func (g *Perlin) Check(reg *registry.Registry) error {
	return checkNames(reg, "grass", "dirt", "stone")
}

// HeightAt returns the surface Y of the column at (x, z).
func (g *Perlin) HeightAt(x, z int) int {
	s := g.noise.Noise2D(float64(x)*hillScale, float64(z)*hillScale)
	s = min(max((s+1)/2, 0), 1)
	return g.Low + int(float64(g.High-g.Low)*s)
}

func (g *Perlin) Generate(origin cube.Pos, reg *registry.Registry) *chunk.Chunk {
	layers := surfaceLayers{
		grass: block.New(reg.MustID("grass")),
		dirt:  block.New(reg.MustID("dirt")),
		stone: block.New(reg.MustID("stone")),
	}

	c := chunk.New(origin)
	for x := origin.X; x < origin.X+chunk.Size; x++ {
		for z := origin.Z; z < origin.Z+chunk.Size; z++ {
			h := g.HeightAt(x, z)
			for y := origin.Y; y <= min(h, origin.Y+chunk.Size-1); y++ {
				c.SetBlockImmediate(cube.P(x, y, z), layers.at(y, h))
			}
		}
	}
	return c
}
