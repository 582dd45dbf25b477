package chunk

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/OCharnyshevich/subsurface/internal/world/cube"
)

// FileName is the name of the chunk file inside its origin directory.
const FileName = "chunk.bin"

// Path returns root/X/Y/Z/chunk.bin for the chunk at origin.
func Path(root string, origin cube.Pos) string {
	return filepath.Join(root,
		strconv.Itoa(origin.X),
		strconv.Itoa(origin.Y),
		strconv.Itoa(origin.Z),
		FileName)
}

// Write persists the chunk under root, creating intermediate directories.
// The file is replaced atomically.
func (c *Chunk) Write(root string) error {
	path := Path(root, c.origin)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create chunk directory: %w", err)
	}
	data, err := c.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode chunk %v: %w", c.origin, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Read loads the chunk at origin from root. A missing file is reported as
// (nil, false, nil). Undecodable contents wrap ErrCorrupt.
func Read(origin cube.Pos, root string) (*Chunk, bool, error) {
	path := Path(root, origin)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read chunk %v: %w", origin, err)
	}
	c, err := Decode(origin, data)
	if err != nil {
		return nil, false, fmt.Errorf("read chunk %s: %w", path, err)
	}
	return c, true, nil
}
