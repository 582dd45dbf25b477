package registry

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/OCharnyshevich/subsurface/internal/world/block"
)

// catalogFile is the on-disk layout of a block catalog:
//
//	blocks:
//	  - name: stone
//	    id: 1
//	    color: "#404040"
//	  - name: grass
//	    id: 3
//	    texture:
//	      all: [2, 0]
//	      top: [0, 0]
type catalogFile struct {
	Blocks []catalogEntry `yaml:"blocks"`
}

type catalogEntry struct {
	Name    string               `yaml:"name"`
	ID      uint32               `yaml:"id"`
	Color   string               `yaml:"color"`
	Texture map[string][2]uint16 `yaml:"texture"`
}

// LoadCatalog reads a YAML catalog into a new registry.
func LoadCatalog(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog builds a registry from YAML catalog bytes.
func ParseCatalog(data []byte) (*Registry, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Blocks) == 0 {
		return nil, fmt.Errorf("parse catalog: no blocks")
	}

	r := New()
	for _, e := range f.Blocks {
		rd, err := e.render()
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", e.Name, err)
		}
		if err := r.Register(e.Name, block.ID(e.ID), rd); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (e catalogEntry) render() (Render, error) {
	switch {
	case e.Color != "" && len(e.Texture) > 0:
		return Render{}, fmt.Errorf("both color and texture set")
	case e.Color != "":
		c, err := parseHexColor(e.Color)
		if err != nil {
			return Render{}, err
		}
		return Render{Kind: RenderColor, Color: c}, nil
	case len(e.Texture) > 0:
		return textureRender(e.Texture)
	}
	return Render{}, fmt.Errorf("needs color or texture")
}

var sideFaces = []block.Face{block.Left, block.Right, block.Front, block.Back}

// textureRender applies "all", then "side", then individual face keys.
func textureRender(tex map[string][2]uint16) (Render, error) {
	rd := Render{Kind: RenderTexture}
	set := func(faces []block.Face, uv [2]uint16) {
		for _, f := range faces {
			rd.Faces[f.Index()] = AtlasCoord{U: uv[0], V: uv[1]}
		}
	}

	if uv, ok := tex["all"]; ok {
		f := block.Faces()
		set(f[:], uv)
	}
	if uv, ok := tex["side"]; ok {
		set(sideFaces, uv)
	}
	for key, uv := range tex {
		if key == "all" || key == "side" {
			continue
		}
		f, ok := faceByName(key)
		if !ok {
			return Render{}, fmt.Errorf("unknown texture key %q", key)
		}
		set([]block.Face{f}, uv)
	}
	return rd, nil
}

func faceByName(name string) (block.Face, bool) {
	for _, f := range block.Faces() {
		if f.String() == name {
			return f, true
		}
	}
	return 0, false
}

func parseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}
