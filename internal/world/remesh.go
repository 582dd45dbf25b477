package world

import (
	"fmt"

	"github.com/OCharnyshevich/subsurface/internal/world/cube"
	"github.com/OCharnyshevich/subsurface/internal/world/mesh"
)

// Remesh is the result of consuming one dirty chunk. Mesh is nil when the
// chunk holds no visible geometry.
type Remesh struct {
	Origin cube.Pos
	Mesh   *mesh.Mesh
}

// CleanChunk pops the oldest dirty chunk, clears its flag and builds its
// mesh. It reports false when no chunk is dirty.
func (w *World) CleanChunk() (Remesh, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.dirty) == 0 {
		return Remesh{}, false
	}
	origin := w.dirty[0]
	w.dirty = w.dirty[1:]
	w.metrics.SetDirty(len(w.dirty))

	c := w.chunks[origin]
	c.ClearDirty()
	m, ok := w.mesher.Build(c, w.reg)
	w.metrics.Remeshed(!ok)
	if !ok {
		return Remesh{Origin: origin}, true
	}
	return Remesh{Origin: origin, Mesh: m}, true
}

// DirtyLen returns how many chunks await remesh.
func (w *World) DirtyLen() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.dirty)
}

// WriteAllChunks flushes every resident chunk to the store.
func (w *World) WriteAllChunks() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, origin := range w.origins() {
		if err := w.store.Save(w.chunks[origin]); err != nil {
			return fmt.Errorf("write chunk %v: %w", origin, err)
		}
		w.metrics.ChunkWritten()
	}
	w.log.Info("wrote chunks", "count", len(w.chunks))
	return nil
}

// Close releases the chunk store. Resident chunks are not flushed.
func (w *World) Close() error {
	return w.store.Close()
}
