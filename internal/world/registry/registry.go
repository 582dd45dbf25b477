package registry

import (
	"errors"
	"fmt"
	"image/color"
	"slices"

	"github.com/OCharnyshevich/subsurface/internal/world/block"
)

// ErrUnknownBlock is returned for names or ids missing from the catalog.
var ErrUnknownBlock = errors.New("unknown block")

// RenderKind selects how a block type is drawn.
type RenderKind uint8

const (
	RenderColor RenderKind = iota
	RenderTexture
)

// AtlasCoord addresses a tile in the texture atlas.
type AtlasCoord struct {
	U, V uint16
}

// Render is the per-id render metadata. Faces is indexed by block.Face.
type Render struct {
	Kind  RenderKind
	Color color.RGBA
	Faces [block.FaceCount]AtlasCoord
}

// Colored returns flat-colour render metadata.
func Colored(r, g, b uint8) Render {
	return Render{Kind: RenderColor, Color: color.RGBA{R: r, G: g, B: b, A: 0xFF}}
}

// Textured returns render metadata that uses tile for every face.
func Textured(tile AtlasCoord) Render {
	r := Render{Kind: RenderTexture}
	for i := range r.Faces {
		r.Faces[i] = tile
	}
	return r
}

// Registry maps block names to ids and ids to render metadata.
type Registry struct {
	ids    map[string]block.ID
	names  map[block.ID]string
	render map[block.ID]Render
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		ids:    make(map[string]block.ID),
		names:  make(map[block.ID]string),
		render: make(map[block.ID]Render),
	}
}

// Default returns the built-in catalog.
func Default() *Registry {
	r := New()
	r.mustRegister("stone", 1, Colored(64, 64, 64))
	r.mustRegister("dirt", 2, Colored(122, 48, 0))
	r.mustRegister("grass", 3, Colored(0, 127, 14))
	return r
}

func (r *Registry) mustRegister(name string, id block.ID, rd Render) {
	if err := r.Register(name, id, rd); err != nil {
		panic(err)
	}
}

// Register adds a block type. Air cannot be registered, and neither the name
// nor the id may already be taken.
func (r *Registry) Register(name string, id block.ID, rd Render) error {
	if id == block.Air {
		return fmt.Errorf("register %q: id 0 is reserved for air", name)
	}
	if name == "" {
		return fmt.Errorf("register id %d: empty name", id)
	}
	if old, ok := r.ids[name]; ok {
		return fmt.Errorf("register %q: name already bound to id %d", name, old)
	}
	if old, ok := r.names[id]; ok {
		return fmt.Errorf("register %q: id %d already bound to %q", name, id, old)
	}
	r.ids[name] = id
	r.names[id] = name
	r.render[id] = rd
	return nil
}

// ID looks up a block id by name.
func (r *Registry) ID(name string) (block.ID, bool) {
	id, ok := r.ids[name]
	return id, ok
}

// Lookup is ID with a wrapped ErrUnknownBlock on failure.
func (r *Registry) Lookup(name string) (block.ID, error) {
	id, ok := r.ids[name]
	if !ok {
		return block.Air, fmt.Errorf("%w: %q", ErrUnknownBlock, name)
	}
	return id, nil
}

// MustID is Lookup for callers that validated the name up front.
func (r *Registry) MustID(name string) block.ID {
	id, err := r.Lookup(name)
	if err != nil {
		panic(err)
	}
	return id
}

// Render returns the render metadata for id.
func (r *Registry) Render(id block.ID) (Render, bool) {
	rd, ok := r.render[id]
	return rd, ok
}

// MustRender panics when id has no render metadata.
func (r *Registry) MustRender(id block.ID) Render {
	rd, ok := r.render[id]
	if !ok {
		panic(fmt.Errorf("%w: id %d", ErrUnknownBlock, id))
	}
	return rd
}

// Name returns the name bound to id.
func (r *Registry) Name(id block.ID) (string, bool) {
	n, ok := r.names[id]
	return n, ok
}

// Names returns every registered name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ids))
	for n := range r.ids {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered block types.
func (r *Registry) Len() int {
	return len(r.ids)
}
