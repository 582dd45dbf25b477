// Package gen produces chunk contents from a chunk origin.
package gen

import (
	"errors"
	"fmt"

	"github.com/OCharnyshevich/subsurface/internal/world/chunk"
	"github.com/OCharnyshevich/subsurface/internal/world/cube"
	"github.com/OCharnyshevich/subsurface/internal/world/registry"
)

// ErrUnknownGenerator is returned by New for an unrecognised generator type.
var ErrUnknownGenerator = errors.New("unknown generator")

// Generator fills chunks. Generate must be deterministic, must return a chunk
// whose origin equals origin, and does not compute visibility.
type Generator interface {
	Generate(origin cube.Pos, reg *registry.Registry) *chunk.Chunk
	// Check reports configuration errors, such as block names missing from
	// reg, before any chunk is generated.
	Check(reg *registry.Registry) error
}

// Generator type names accepted by New.
const (
	TypeFlat    = "flat"
	TypeSimplex = "simplex"
	TypePerlin  = "perlin"
)

// DefaultSeed is the seed used by the simplex terrain when none is configured.
const DefaultSeed int64 = 87

// Options selects and parameterises a generator.
type Options struct {
	Type  string
	Seed  int64
	Low   int
	High  int
	Block string // flat only
}

// New builds the generator named by opts.Type.
func New(opts Options) (Generator, error) {
	if opts.High < opts.Low {
		return nil, fmt.Errorf("generator %s: high %d below low %d", opts.Type, opts.High, opts.Low)
	}
	switch opts.Type {
	case TypeFlat:
		return &Flat{Low: opts.Low, High: opts.High, Block: opts.Block}, nil
	case TypeSimplex:
		return NewSimplex(opts.Low, opts.High, opts.Seed), nil
	case TypePerlin:
		return NewPerlin(opts.Low, opts.High, opts.Seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, opts.Type)
	}
}

func checkNames(reg *registry.Registry, names ...string) error {
	for _, n := range names {
		if _, err := reg.Lookup(n); err != nil {
			return err
		}
	}
	return nil
}
