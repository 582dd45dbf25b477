package chunk

import (
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/subsurface/internal/world/block"
	"github.com/OCharnyshevich/subsurface/internal/world/cube"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOriginOf(t *testing.T) {
	tests := []struct {
		in, want cube.Pos
	}{
		{cube.P(0, 0, 0), cube.P(0, 0, 0)},
		{cube.P(4, 4, 5), cube.P(0, 0, 0)},
		{cube.P(-1, -1, -1), cube.P(-16, -16, -16)},
		{cube.P(15, 16, 17), cube.P(0, 16, 16)},
		{cube.P(-16, -17, 31), cube.P(-16, -32, 16)},
	}
	for _, tt := range tests {
		if got := OriginOf(tt.in); got != tt.want {
			t.Errorf("OriginOf(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOriginOfProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for range 10000 {
		p := cube.P(rng.Intn(2000)-1000, rng.Intn(2000)-1000, rng.Intn(2000)-1000)
		o := OriginOf(p)
		d := p.Sub(o)
		for axis := range 3 {
			require.Zero(t, o.Axis(axis)%Size, "origin %v of %v not aligned", o, p)
			require.GreaterOrEqual(t, d.Axis(axis), 0, "offset of %v", p)
			require.Less(t, d.Axis(axis), Size, "offset of %v", p)
		}
	}
}

func TestLocalIndex(t *testing.T) {
	assert.Equal(t, 0, LocalIndex(cube.Local{}))
	assert.Equal(t, 1, LocalIndex(cube.Local{X: 1}))
	assert.Equal(t, Size, LocalIndex(cube.Local{Y: 1}))
	assert.Equal(t, Size*Size, LocalIndex(cube.Local{Z: 1}))
	assert.Equal(t, Volume-1, LocalIndex(cube.Local{X: 15, Y: 15, Z: 15}))
	assert.Panics(t, func() { LocalIndex(cube.Local{X: 16}) })
}

func TestNewChunkIsEmpty(t *testing.T) {
	c := New(cube.P(16, -32, 0))
	assert.True(t, c.Empty())
	assert.False(t, c.Dirty())
	for p := range c.Positions().All() {
		require.Equal(t, block.Empty(), c.Block(p))
	}
	assert.Equal(t, Volume, LocalPositions().Len())
}

func TestNewChunkUnalignedPanics(t *testing.T) {
	assert.Panics(t, func() { New(cube.P(1, 0, 0)) })
}

func TestSetBlockImmediate(t *testing.T) {
	c := New(cube.P(-16, 0, 0))
	p := cube.P(-1, 3, 15)
	c.SetBlockImmediate(p, block.New(7))

	assert.Equal(t, block.ID(7), c.Block(p).ID)
	assert.Equal(t, block.ID(7), c.BlockLocal(cube.Local{X: 15, Y: 3, Z: 15}).ID)
	assert.True(t, c.Contains(p))
	assert.False(t, c.Contains(cube.P(0, 3, 15)))
	assert.False(t, c.Empty())
}

func TestOutOfChunkAccessPanics(t *testing.T) {
	c := New(cube.P(0, 0, 0))
	assert.Panics(t, func() { c.SetBlockImmediate(cube.P(16, 0, 0), block.New(1)) })
	assert.Panics(t, func() { c.SetBlockImmediate(cube.P(-1, 0, 0), block.New(1)) })
	assert.Panics(t, func() { c.Block(cube.P(0, 0, 16)) })
}

func TestMarkDirtyTransition(t *testing.T) {
	c := New(cube.P(0, 0, 0))
	assert.True(t, c.MarkDirty())
	assert.False(t, c.MarkDirty())
	c.ClearDirty()
	assert.False(t, c.Dirty())
	assert.True(t, c.MarkDirty())
}

func mixedChunk(origin cube.Pos) *Chunk {
	c := New(origin)
	i := 0
	for l := range LocalPositions().All() {
		switch i % 4 {
		case 0:
		case 1:
			c.SetBlockLocal(l, block.New(block.ID(i%5+1)))
		case 2:
			b := block.New(2)
			b.Visibility = block.VisibleNone.With(block.Top).With(block.Back)
			c.SetBlockLocal(l, b)
		case 3:
			var faces [block.FaceCount]block.LightPair
			for j := range faces {
				faces[j] = block.LightPair{Sun: block.SunLightLevel(j), Block: block.LightLevel(15 - j)}
			}
			c.SetBlockLocal(l, block.Block{ID: 3, Visibility: block.VisibleAll, Light: block.SolidLight(faces)})
		}
		i++
	}
	return c
}

func solidChunk(origin cube.Pos) *Chunk {
	c := New(origin)
	for l := range LocalPositions().All() {
		c.SetBlockLocal(l, block.New(1))
	}
	return c
}

func TestWriteReadRoundTrip(t *testing.T) {
	root := t.TempDir()
	for name, c := range map[string]*Chunk{
		"empty": New(cube.P(0, 0, 0)),
		"solid": solidChunk(cube.P(16, 0, -16)),
		"mixed": mixedChunk(cube.P(-32, 48, 0)),
	} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, c.Write(root))

			got, ok, err := Read(c.Origin(), root)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, c.Origin(), got.Origin())
			assert.Equal(t, c.blocks, got.blocks)
		})
	}
}

func TestChunkPath(t *testing.T) {
	got := Path("/w", cube.P(-16, 0, 32))
	assert.Equal(t, filepath.Join("/w", "-16", "0", "32", FileName), got)
}

func TestReadMissingIsAbsent(t *testing.T) {
	c, ok, err := Read(cube.P(0, 0, 0), t.TempDir())
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, c)
}

func TestReadCorrupt(t *testing.T) {
	root := t.TempDir()
	origin := cube.P(0, 16, 0)
	path := Path(root, origin)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("not a chunk"), 0o644))

	_, ok, err := Read(origin, root)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestDecodeWrongLength(t *testing.T) {
	short := encoder.EncodeAll([]byte{1, 0, 0, 0, 9}, nil)
	_, err := Decode(cube.P(0, 0, 0), short)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "chunks"), discardLogger())
	require.NoError(t, err)
	defer s.Close()

	origin := cube.P(0, -16, 0)
	_, ok, err := s.Load(origin)
	require.NoError(t, err)
	assert.False(t, ok)

	c := mixedChunk(origin)
	require.NoError(t, s.Save(c))
	got, ok, err := s.Load(origin)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, c.blocks, got.blocks)
	assert.FileExists(t, Path(s.Root(), origin))
}

func TestBadgerStore(t *testing.T) {
	s, err := OpenBadgerStore(t.TempDir(), discardLogger())
	require.NoError(t, err)
	defer s.Close()

	origin := cube.P(16, 16, -16)
	_, ok, err := s.Load(origin)
	require.NoError(t, err)
	assert.False(t, ok)

	c := solidChunk(origin)
	require.NoError(t, s.Save(c))
	got, ok, err := s.Load(origin)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, c.blocks, got.blocks)
}
