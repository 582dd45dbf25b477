// Package world owns the resident chunk map and keeps block visibility,
// lighting and the remesh queue consistent as blocks change.
package world

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/OCharnyshevich/subsurface/internal/metrics"
	"github.com/OCharnyshevich/subsurface/internal/world/block"
	"github.com/OCharnyshevich/subsurface/internal/world/chunk"
	"github.com/OCharnyshevich/subsurface/internal/world/cube"
	"github.com/OCharnyshevich/subsurface/internal/world/gen"
	"github.com/OCharnyshevich/subsurface/internal/world/mesh"
	"github.com/OCharnyshevich/subsurface/internal/world/registry"
)

// Mesher turns a chunk into renderable geometry.
type Mesher interface {
	Build(c *chunk.Chunk, reg *registry.Registry) (*mesh.Mesh, bool)
}

// Config wires a World to its collaborators. Generator and Store are
// required; the rest have defaults.
type Config struct {
	Generator gen.Generator
	Registry  *registry.Registry
	Store     chunk.Store
	Mesher    Mesher
	Metrics   *metrics.World
	Log       *slog.Logger
}

// World is a sparse map of resident chunks keyed by origin.
type World struct {
	mu     sync.Mutex
	chunks map[cube.Pos]*chunk.Chunk
	// dirty holds origins awaiting remesh in the order they became dirty.
	dirty []cube.Pos

	gen     gen.Generator
	reg     *registry.Registry
	store   chunk.Store
	mesher  Mesher
	metrics *metrics.World
	log     *slog.Logger
}

// New validates cfg and returns an empty world.
func New(cfg Config) (*World, error) {
	if cfg.Generator == nil {
		return nil, errors.New("world: no generator")
	}
	if cfg.Store == nil {
		return nil, errors.New("world: no chunk store")
	}
	if cfg.Registry == nil {
		cfg.Registry = registry.Default()
	}
	if cfg.Mesher == nil {
		cfg.Mesher = mesh.Builder{}
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	if err := cfg.Generator.Check(cfg.Registry); err != nil {
		return nil, fmt.Errorf("world: generator: %w", err)
	}

	return &World{
		chunks:  make(map[cube.Pos]*chunk.Chunk),
		gen:     cfg.Generator,
		reg:     cfg.Registry,
		store:   cfg.Store,
		mesher:  cfg.Mesher,
		metrics: cfg.Metrics,
		log:     cfg.Log,
	}, nil
}

// Registry returns the block catalog the world was built with.
func (w *World) Registry() *registry.Registry {
	return w.reg
}

// ChunkOrigin returns the origin of the chunk containing p.
func ChunkOrigin(p cube.Pos) cube.Pos {
	return chunk.OriginOf(p)
}

// Chunk returns the resident chunk at origin.
func (w *World) Chunk(origin cube.Pos) (*chunk.Chunk, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	c, ok := w.chunks[origin]
	return c, ok
}

// ChunkCount returns the number of resident chunks.
func (w *World) ChunkCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.chunks)
}

// Origins returns the resident chunk origins ordered by Z, then Y, then X.
func (w *World) Origins() []cube.Pos {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.origins()
}

func (w *World) origins() []cube.Pos {
	out := make([]cube.Pos, 0, len(w.chunks))
	for o := range w.chunks {
		out = append(out, o)
	}
	slices.SortFunc(out, func(a, b cube.Pos) int {
		return cmp.Or(cmp.Compare(a.Z, b.Z), cmp.Compare(a.Y, b.Y), cmp.Compare(a.X, b.X))
	})
	return out
}

// LoadRegion makes every chunk overlapping the inclusive box [lo, hi]
// resident, reading from the store and generating what is missing, then
// recomputes visibility across all resident chunks.
func (w *World) LoadRegion(lo, hi cube.Pos) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	first := chunk.OriginOf(lo)
	last := chunk.OriginOf(hi)
	idx := cube.NewRange(
		cube.P(first.X/chunk.Size, first.Y/chunk.Size, first.Z/chunk.Size),
		cube.P(last.X/chunk.Size, last.Y/chunk.Size, last.Z/chunk.Size),
	)

	var loaded, generated int
	for i := range idx.All() {
		origin := i.Scale(chunk.Size)
		if _, ok := w.chunks[origin]; ok {
			continue
		}
		c, fromStore, err := w.loadOrGenerate(origin)
		if err != nil {
			return err
		}
		if fromStore {
			loaded++
		} else {
			generated++
		}
		w.chunks[origin] = c
	}

	w.fixVisibility()
	w.log.Info("loaded region", "min", lo, "max", hi,
		"from_store", loaded, "generated", generated, "resident", len(w.chunks))
	return nil
}

func (w *World) loadOrGenerate(origin cube.Pos) (*chunk.Chunk, bool, error) {
	c, ok, err := w.store.Load(origin)
	if err != nil {
		return nil, false, fmt.Errorf("load region: %w", err)
	}
	source := metrics.SourceStore
	if !ok {
		c = w.gen.Generate(origin, w.reg)
		source = metrics.SourceGenerator
	}
	if c.Origin() != origin {
		panic(fmt.Sprintf("world: %s returned chunk %v for origin %v", source, c.Origin(), origin))
	}
	w.metrics.ChunkLoaded(source)
	w.log.Debug("chunk resident", "origin", origin, "source", source)
	return c, ok, nil
}

// FixVisibility recomputes face visibility and light for every non-empty
// block in every resident chunk.
func (w *World) FixVisibility() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fixVisibility()
}

func (w *World) fixVisibility() {
	for _, origin := range w.origins() {
		c := w.chunks[origin]
		for p := range c.Positions().All() {
			b := c.Block(p)
			if b.Empty() {
				continue
			}
			b.Visibility = w.exposedFaces(p)
			b.Light = block.FullBright
			w.setBlockImmediate(p, b)
		}
	}
}

// exposedFaces returns the faces of p whose neighbour is empty.
func (w *World) exposedFaces(p cube.Pos) block.FaceVisibility {
	vis := block.VisibleNone
	for _, f := range block.Faces() {
		if w.block(p.Add(f.Normal())).Empty() {
			vis = vis.With(f)
		}
	}
	return vis
}

// Block returns the block at p. Positions in non-resident chunks read as air.
func (w *World) Block(p cube.Pos) block.Block {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.block(p)
}

func (w *World) block(p cube.Pos) block.Block {
	c, ok := w.chunks[chunk.OriginOf(p)]
	if !ok {
		return block.Block{ID: block.Air, Visibility: block.VisibleNone, Light: block.NoLight}
	}
	return c.Block(p)
}

// SetBlockImmediate writes b at p without touching neighbours. The owning
// chunk is created if it is not resident, and is queued for remesh if it
// was clean.
func (w *World) SetBlockImmediate(p cube.Pos, b block.Block) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.setBlockImmediate(p, b)
}

func (w *World) setBlockImmediate(p cube.Pos, b block.Block) {
	origin := chunk.OriginOf(p)
	c, ok := w.chunks[origin]
	if !ok {
		c = chunk.New(origin)
		w.chunks[origin] = c
	}
	c.SetBlockImmediate(p, b)
	if c.MarkDirty() {
		w.dirty = append(w.dirty, origin)
		w.metrics.SetDirty(len(w.dirty))
	}
}
