package cube

import (
	"iter"

	"golang.org/x/exp/constraints"
)

// Range lazily walks every lattice point of the inclusive box [start, stop].
// X varies fastest, then Y, then Z. A Range is consumed as it is walked and
// cannot be restarted; build a new one to iterate again.
type Range[T constraints.Integer] struct {
	start, stop Point[T]
	cur         Point[T]
	done        bool
}

// NewRange returns a Range over the inclusive box spanned by start and stop.
// The range is empty when stop is below start on any axis.
func NewRange[T constraints.Integer](start, stop Point[T]) *Range[T] {
	return &Range[T]{
		start: start,
		stop:  stop,
		cur:   start,
		done:  stop.X < start.X || stop.Y < start.Y || stop.Z < start.Z,
	}
}

// Next returns the next point, or false once the box is exhausted.
func (r *Range[T]) Next() (Point[T], bool) {
	if r.done {
		return Point[T]{}, false
	}
	p := r.cur

	// Advance without ever stepping past stop, so the full width of T is usable.
	switch {
	case r.cur.X < r.stop.X:
		r.cur.X++
	case r.cur.Y < r.stop.Y:
		r.cur.X = r.start.X
		r.cur.Y++
	case r.cur.Z < r.stop.Z:
		r.cur.X = r.start.X
		r.cur.Y = r.start.Y
		r.cur.Z++
	default:
		r.done = true
	}
	return p, true
}

// All adapts the remaining points to a range-over-func sequence.
func (r *Range[T]) All() iter.Seq[Point[T]] {
	return func(yield func(Point[T]) bool) {
		for {
			p, ok := r.Next()
			if !ok || !yield(p) {
				return
			}
		}
	}
}

// Len reports how many points the full box holds.
func (r *Range[T]) Len() int {
	if r.stop.X < r.start.X || r.stop.Y < r.start.Y || r.stop.Z < r.start.Z {
		return 0
	}
	// Widen before subtracting; stop-start can overflow narrow signed T.
	return (int(r.stop.X) - int(r.start.X) + 1) *
		(int(r.stop.Y) - int(r.start.Y) + 1) *
		(int(r.stop.Z) - int(r.start.Z) + 1)
}
