package chunk

import (
	"fmt"

	"github.com/OCharnyshevich/subsurface/internal/world/block"
	"github.com/OCharnyshevich/subsurface/internal/world/cube"
)

// Size is the edge length of a chunk in blocks. It must stay a power of two.
const Size = 16

// Volume is the number of blocks in a chunk.
const Volume = Size * Size * Size

// OriginOf returns the origin of the chunk that contains p. Masking with -Size
// floors toward negative infinity, so (-1,-1,-1) belongs to (-16,-16,-16).
func OriginOf(p cube.Pos) cube.Pos {
	return cube.Pos{X: p.X & -Size, Y: p.Y & -Size, Z: p.Z & -Size}
}

// Aligned reports whether p is a valid chunk origin.
func Aligned(p cube.Pos) bool {
	return OriginOf(p) == p
}

// LocalIndex maps a chunk-local position to its slot in the block array.
func LocalIndex(l cube.Local) int {
	if l.X >= Size || l.Y >= Size || l.Z >= Size {
		panic(fmt.Sprintf("chunk: local position %v out of range", l))
	}
	return int(l.X) + int(l.Y)*Size + int(l.Z)*Size*Size
}

// Chunk is a dense Size³ volume of blocks anchored at a chunk-aligned origin.
type Chunk struct {
	origin cube.Pos
	blocks []block.Block
	dirty  bool
}

// New returns a chunk at origin filled with empty blocks.
func New(origin cube.Pos) *Chunk {
	if !Aligned(origin) {
		panic(fmt.Sprintf("chunk: origin %v is not aligned to %d", origin, Size))
	}
	blocks := make([]block.Block, Volume)
	empty := block.Empty()
	for i := range blocks {
		blocks[i] = empty
	}
	return &Chunk{origin: origin, blocks: blocks}
}

// Origin returns the minimum corner of the chunk in world space.
func (c *Chunk) Origin() cube.Pos {
	return c.origin
}

// Contains reports whether the world position p lies inside the chunk.
func (c *Chunk) Contains(p cube.Pos) bool {
	return OriginOf(p) == c.origin
}

func (c *Chunk) local(p cube.Pos) cube.Local {
	d := p.Sub(c.origin)
	if d.X < 0 || d.X >= Size || d.Y < 0 || d.Y >= Size || d.Z < 0 || d.Z >= Size {
		panic(fmt.Sprintf("chunk: %v is outside chunk %v", p, c.origin))
	}
	return cube.Local{X: uint8(d.X), Y: uint8(d.Y), Z: uint8(d.Z)}
}

// SetBlockImmediate writes b at world position p. p must lie in the chunk.
func (c *Chunk) SetBlockImmediate(p cube.Pos, b block.Block) {
	c.blocks[LocalIndex(c.local(p))] = b
}

// Block returns the block at world position p. p must lie in the chunk.
func (c *Chunk) Block(p cube.Pos) block.Block {
	return c.blocks[LocalIndex(c.local(p))]
}

// BlockLocal returns the block at chunk-local position l.
func (c *Chunk) BlockLocal(l cube.Local) block.Block {
	return c.blocks[LocalIndex(l)]
}

// SetBlockLocal writes b at chunk-local position l.
func (c *Chunk) SetBlockLocal(l cube.Local, b block.Block) {
	c.blocks[LocalIndex(l)] = b
}

// Dirty reports whether the chunk changed since it was last remeshed.
func (c *Chunk) Dirty() bool {
	return c.dirty
}

// MarkDirty sets the dirty flag and reports whether it was previously clear.
func (c *Chunk) MarkDirty() bool {
	if c.dirty {
		return false
	}
	c.dirty = true
	return true
}

// ClearDirty resets the dirty flag.
func (c *Chunk) ClearDirty() {
	c.dirty = false
}

// Empty reports whether every block in the chunk is air.
func (c *Chunk) Empty() bool {
	for _, b := range c.blocks {
		if !b.Empty() {
			return false
		}
	}
	return true
}

// LocalPositions returns a fresh range over every chunk-local position.
func LocalPositions() *cube.Range[uint8] {
	return cube.NewRange(cube.Local{}, cube.Local{X: Size - 1, Y: Size - 1, Z: Size - 1})
}

// Positions returns a fresh range over every world position in the chunk.
func (c *Chunk) Positions() *cube.Range[int] {
	return cube.NewRange(c.origin, c.origin.Add(cube.P(Size-1, Size-1, Size-1)))
}
