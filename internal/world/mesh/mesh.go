// Package mesh turns chunk contents into triangle lists for a renderer.
package mesh

import (
	"github.com/OCharnyshevich/subsurface/internal/world/block"
	"github.com/OCharnyshevich/subsurface/internal/world/chunk"
	"github.com/OCharnyshevich/subsurface/internal/world/cube"
	"github.com/OCharnyshevich/subsurface/internal/world/registry"
)

// VerticesPerFace is two triangles without indexing.
const VerticesPerFace = 6

// Vertex is a chunk-local corner position with colour and atlas coordinates.
// Positions run 0..16 inclusive.
type Vertex struct {
	Pos   [3]uint8
	Color [3]uint8
	UV    [2]uint16
}

// Mesh is the geometry for one chunk, drawn as a plain triangle list.
type Mesh struct {
	Origin   cube.Pos
	Vertices []Vertex
}

// Faces returns how many quads the mesh holds.
func (m *Mesh) Faces() int {
	return len(m.Vertices) / VerticesPerFace
}

// corners holds the unit-cube offsets of the two triangles for each face,
// indexed by block.Face.
var corners = [block.FaceCount][VerticesPerFace][3]uint8{
	block.Top: {
		{0, 1, 1}, {1, 1, 1}, {0, 1, 0},
		{1, 1, 1}, {1, 1, 0}, {0, 1, 0},
	},
	block.Bottom: {
		{0, 0, 1}, {0, 0, 0}, {1, 0, 1},
		{0, 0, 0}, {1, 0, 0}, {1, 0, 1},
	},
	block.Left: {
		{0, 0, 0}, {0, 0, 1}, {0, 1, 0},
		{0, 0, 1}, {0, 1, 1}, {0, 1, 0},
	},
	block.Right: {
		{1, 0, 0}, {1, 1, 0}, {1, 0, 1},
		{1, 1, 0}, {1, 1, 1}, {1, 0, 1},
	},
	block.Front: {
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1},
		{1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	},
	block.Back: {
		{0, 0, 0}, {0, 1, 0}, {1, 0, 0},
		{0, 1, 0}, {1, 1, 0}, {1, 0, 0},
	},
}

// uvAxes names the two corner axes that span each face in texture space.
var uvAxes = [block.FaceCount][2]int{
	block.Top:    {0, 2},
	block.Bottom: {0, 2},
	block.Left:   {2, 1},
	block.Right:  {2, 1},
	block.Front:  {0, 1},
	block.Back:   {0, 1},
}

// Builder builds meshes from chunks.
type Builder struct{}

// Build emits one quad per visible face of every non-empty block. It returns
// false when the chunk holds no geometry.
func (Builder) Build(c *chunk.Chunk, reg *registry.Registry) (*Mesh, bool) {
	m := &Mesh{Origin: c.Origin()}
	for l := range chunk.LocalPositions().All() {
		b := c.BlockLocal(l)
		if b.Empty() || b.Visibility.Unset() {
			continue
		}
		rd := reg.MustRender(b.ID)
		for _, f := range block.Faces() {
			if b.Visibility.Has(f) {
				m.Vertices = appendFace(m.Vertices, l, f, rd, b.Light.At(f))
			}
		}
	}
	if len(m.Vertices) == 0 {
		return nil, false
	}
	return m, true
}

func appendFace(dst []Vertex, l cube.Local, f block.Face, rd registry.Render, light block.LightPair) []Vertex {
	col := shade(rd, light)
	tile := rd.Faces[f.Index()]
	axes := uvAxes[f]
	for _, off := range corners[f] {
		v := Vertex{
			Pos:   [3]uint8{l.X + off[0], l.Y + off[1], l.Z + off[2]},
			Color: col,
		}
		if rd.Kind == registry.RenderTexture {
			v.UV = [2]uint16{tile.U + uint16(off[axes[0]]), tile.V + uint16(off[axes[1]])}
		}
		dst = append(dst, v)
	}
	return dst
}

// shade scales the base colour by the face brightness. Textured blocks start
// from white.
func shade(rd registry.Render, light block.LightPair) [3]uint8 {
	base := [3]uint8{0xFF, 0xFF, 0xFF}
	if rd.Kind == registry.RenderColor {
		base = [3]uint8{rd.Color.R, rd.Color.G, rd.Color.B}
	}
	lvl := uint32(light.Brightness())
	for i, c := range base {
		base[i] = uint8(uint32(c) * lvl / block.MaxLight)
	}
	return base
}
