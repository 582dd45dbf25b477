package world

import (
	"fmt"

	"github.com/OCharnyshevich/subsurface/internal/world/block"
	"github.com/OCharnyshevich/subsurface/internal/world/cube"
	"github.com/OCharnyshevich/subsurface/internal/world/registry"
)

// RemoveBlock is the block name Edit treats as a request to break.
const RemoveBlock = "remove"

// Edit applies an input-layer request: a registered block name places that
// block, RemoveBlock breaks whatever is at p.
func (w *World) Edit(p cube.Pos, name string) error {
	if name == RemoveBlock {
		w.BreakBlock(p)
		return nil
	}
	id, err := w.reg.Lookup(name)
	if err != nil {
		return fmt.Errorf("edit %v: %w", p, err)
	}
	return w.PlaceBlock(p, id)
}

// PlaceBlock writes id at p and updates the visibility of p and its six
// neighbours. A neighbour whose visibility was never computed gets it
// computed in full. Placing air is the same as BreakBlock.
func (w *World) PlaceBlock(p cube.Pos, id block.ID) error {
	if id == block.Air {
		w.BreakBlock(p)
		return nil
	}
	if _, ok := w.reg.Render(id); !ok {
		return fmt.Errorf("place %v: %w: id %d", p, registry.ErrUnknownBlock, id)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.setBlockImmediate(p, block.Block{ID: id, Visibility: w.exposedFaces(p), Light: block.FullBright})
	for _, f := range block.Faces() {
		np := p.Add(f.Normal())
		nb := w.block(np)
		if nb.Empty() {
			continue
		}
		if nb.Visibility.Unset() {
			nb.Visibility = w.exposedFaces(np)
		} else {
			nb.Visibility = nb.Visibility.Without(f.Opposite())
		}
		w.setBlockImmediate(np, nb)
	}
	return nil
}

// BreakBlock empties p and exposes the faces of its non-empty neighbours
// that pointed at it.
func (w *World) BreakBlock(p cube.Pos) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.setBlockImmediate(p, block.Empty())
	for _, f := range block.Faces() {
		np := p.Add(f.Normal())
		nb := w.block(np)
		if nb.Empty() {
			continue
		}
		if nb.Visibility.Unset() {
			nb.Visibility = w.exposedFaces(np)
		} else {
			nb.Visibility = nb.Visibility.With(f.Opposite())
		}
		w.setBlockImmediate(np, nb)
	}
}
