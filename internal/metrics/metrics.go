// Package metrics exposes Prometheus instrumentation for a world.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "subsurface"

// Chunk sources for ChunkLoaded.
const (
	SourceStore     = "store"
	SourceGenerator = "generator"
)

// World holds the counters a world updates. A nil *World is valid and
// records nothing.
type World struct {
	chunksLoaded *prometheus.CounterVec
	chunkWrites  prometheus.Counter
	dirtyChunks  prometheus.Gauge
	remeshes     *prometheus.CounterVec
	rayCasts     *prometheus.CounterVec
}

// NewWorld registers the world metrics with reg.
func NewWorld(reg prometheus.Registerer) *World {
	f := promauto.With(reg)
	return &World{
		chunksLoaded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_loaded_total",
			Help:      "Chunks made resident, by source.",
		}, []string{"source"}),
		chunkWrites: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunk_writes_total",
			Help:      "Chunks flushed to the store.",
		}),
		dirtyChunks: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dirty_chunks",
			Help:      "Chunks waiting to be remeshed.",
		}),
		remeshes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remeshes_total",
			Help:      "Dirty chunks consumed, by whether they produced geometry.",
		}, []string{"result"}),
		rayCasts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ray_casts_total",
			Help:      "Ray casts, by result.",
		}, []string{"result"}),
	}
}

// ChunkLoaded counts a chunk made resident, labelled by where it came from.
func (m *World) ChunkLoaded(source string) {
	if m == nil {
		return
	}
	m.chunksLoaded.WithLabelValues(source).Inc()
}

// ChunkWritten counts a chunk persisted to the store.
func (m *World) ChunkWritten() {
	if m == nil {
		return
	}
	m.chunkWrites.Inc()
}

// SetDirty records the current length of the dirty queue.
func (m *World) SetDirty(n int) {
	if m == nil {
		return
	}
	m.dirtyChunks.Set(float64(n))
}

// Remeshed counts a rebuilt chunk mesh, split by whether it came out empty.
func (m *World) Remeshed(empty bool) {
	if m == nil {
		return
	}
	result := "mesh"
	if empty {
		result = "empty"
	}
	m.remeshes.WithLabelValues(result).Inc()
}

// RayCast counts a ray cast, split by hit or miss.
func (m *World) RayCast(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.rayCasts.WithLabelValues(result).Inc()
}
