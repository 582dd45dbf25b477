package block

// ID identifies a block type. Air is reserved for empty space.
type ID uint32

// Air is the empty block.
const Air ID = 0

// FaceVisibility holds one bit per face; a set bit means the neighbour across
// that face was empty when the block was last recomputed.
type FaceVisibility uint8

const (
	VisibleTop FaceVisibility = 1 << iota
	VisibleBottom
	VisibleLeft
	VisibleRight
	VisibleFront
	VisibleBack

	// VisibleNone means every face is hidden.
	VisibleNone FaceVisibility = 0
	// VisibleAll has every face bit set.
	VisibleAll FaceVisibility = 0b00111111
	// VisibleUnset marks visibility that has not been computed yet.
	VisibleUnset FaceVisibility = 0xFF
)

// Has reports whether the bit for f is set.
func (v FaceVisibility) Has(f Face) bool {
	return v&f.Mask() != 0
}

// With returns v with the bit for f set.
func (v FaceVisibility) With(f Face) FaceVisibility {
	return v | f.Mask()
}

// Without returns v with the bit for f cleared.
func (v FaceVisibility) Without(f Face) FaceVisibility {
	return v &^ f.Mask()
}

// Unset reports whether v is still the not-yet-computed sentinel.
func (v FaceVisibility) Unset() bool {
	return v == VisibleUnset
}

// Count returns the number of visible faces.
func (v FaceVisibility) Count() int {
	n := 0
	for _, f := range faces {
		if v.Has(f) {
			n++
		}
	}
	return n
}

// Block is a single voxel. It is a small value type stored inline in chunks.
type Block struct {
	ID         ID
	Visibility FaceVisibility
	Light      Light
}

// Empty returns the block a fresh chunk is filled with.
func Empty() Block {
	return Block{ID: Air, Visibility: VisibleUnset, Light: NoLight}
}

// New returns a freshly placed or generated block of the given type. Its
// visibility is left unset for the world to compute.
func New(id ID) Block {
	return Block{ID: id, Visibility: VisibleUnset, Light: FullBright}
}

// Empty reports whether the block is air.
func (b Block) Empty() bool {
	return b.ID == Air
}
