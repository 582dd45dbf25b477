package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/subsurface/internal/world/cube"
	"github.com/OCharnyshevich/subsurface/internal/world/gen"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, gen.TypeSimplex, cfg.Generator.Type)
	assert.Equal(t, gen.DefaultSeed, cfg.Generator.Seed)

	_, err := gen.New(cfg.Generator.Options())
	assert.NoError(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subsurface.yaml")
	data := `
world_dir: /srv/world
store: badger
log_level: debug
generator:
  type: flat
  low: -4
  high: 2
  block: dirt
region:
  min: [-16, -16, -16]
  max: [15, 15, 15]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/world", cfg.WorldDir)
	assert.Equal(t, StoreBadger, cfg.Store)
	assert.Equal(t, "flat", cfg.Generator.Type)
	assert.Equal(t, gen.DefaultSeed, cfg.Generator.Seed, "unset keys keep defaults")
	assert.Equal(t, "dirt", cfg.Generator.Block)

	lo, hi := cfg.Region.Bounds()
	assert.Equal(t, cube.P(-16, -16, -16), lo)
	assert.Equal(t, cube.P(15, 15, 15), hi)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"store":  "store: sqlite",
		"level":  "log_level: loud",
		"region": "region: {min: [0, 0, 0], max: [0, -1, 0]}",
		"yaml":   "store: [",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestMergeKeepsExplicitFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldDir = "from-flag"
	cfg.Generator.Seed = 1

	file := DefaultConfig()
	file.WorldDir = "from-file"
	file.Store = StoreBadger
	file.Generator.Seed = 2
	file.Generator.High = 99

	Merge(cfg, file, map[string]bool{"world": true, "seed": true})
	assert.Equal(t, "from-flag", cfg.WorldDir)
	assert.Equal(t, int64(1), cfg.Generator.Seed)
	assert.Equal(t, StoreBadger, cfg.Store)
	assert.Equal(t, 99, cfg.Generator.High)
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("chatty")
	assert.Error(t, err)
}
