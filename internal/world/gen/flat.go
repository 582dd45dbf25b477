package gen

import (
	"github.com/OCharnyshevich/subsurface/internal/world/block"
	"github.com/OCharnyshevich/subsurface/internal/world/chunk"
	"github.com/OCharnyshevich/subsurface/internal/world/cube"
	"github.com/OCharnyshevich/subsurface/internal/world/registry"
)

// Flat fills every block whose Y lies in [Low, High] with Block.
type Flat struct {
	Low, High int
	Block     string
}

func (g *Flat) Check(reg *registry.Registry) error {
	return checkNames(reg, g.Block)
}

func (g *Flat) Generate(origin cube.Pos, reg *registry.Registry) *chunk.Chunk {
	c := chunk.New(origin)
	lo := max(g.Low, origin.Y)
	hi := min(g.High, origin.Y+chunk.Size-1)
	if lo > hi {
		return c
	}

	b := block.New(reg.MustID(g.Block))
	layer := cube.NewRange(cube.P(origin.X, lo, origin.Z), cube.P(origin.X+chunk.Size-1, hi, origin.Z+chunk.Size-1))
	for p := range layer.All() {
		c.SetBlockImmediate(p, b)
	}
	return c
}
