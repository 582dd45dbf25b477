package block

import (
	"fmt"

	"github.com/OCharnyshevich/subsurface/internal/world/cube"
)

// Face is one of the six sides of a voxel.
type Face uint8

// The declaration order is the index order used by every per-face array.
const (
	Top Face = iota
	Bottom
	Left
	Right
	Front
	Back
)

// FaceCount is the number of faces of a cube.
const FaceCount = 6

var faces = [FaceCount]Face{Top, Bottom, Left, Right, Front, Back}

var faceNormals = [FaceCount]cube.Pos{
	Top:    {X: 0, Y: 1, Z: 0},
	Bottom: {X: 0, Y: -1, Z: 0},
	Left:   {X: -1, Y: 0, Z: 0},
	Right:  {X: 1, Y: 0, Z: 0},
	Front:  {X: 0, Y: 0, Z: 1},
	Back:   {X: 0, Y: 0, Z: -1},
}

var faceNames = [FaceCount]string{"top", "bottom", "left", "right", "front", "back"}

// Faces returns all faces in index order.
func Faces() [FaceCount]Face {
	return faces
}

// Index returns the stable 0-5 index of the face.
func (f Face) Index() int {
	return int(f)
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() cube.Pos {
	return faceNormals[f]
}

// Mask returns the visibility bit that belongs to the face.
func (f Face) Mask() FaceVisibility {
	return 1 << f
}

// Opposite returns the face on the other side of the cube.
func (f Face) Opposite() Face {
	// Faces are declared in opposing pairs.
	return f ^ 1
}

func (f Face) String() string {
	if int(f) < FaceCount {
		return faceNames[f]
	}
	return fmt.Sprintf("face(%d)", uint8(f))
}

// FaceFromNormal recovers the face whose outward normal is n. n must be an
// axis-aligned unit vector; anything else panics.
func FaceFromNormal(n cube.Pos) Face {
	for _, f := range faces {
		if faceNormals[f] == n {
			return f
		}
	}
	panic(fmt.Sprintf("block: %v is not an axis-aligned unit normal", n))
}
