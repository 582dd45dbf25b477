package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/OCharnyshevich/subsurface/internal/world/cube"
	"github.com/OCharnyshevich/subsurface/internal/world/gen"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreBadger = "badger"
)

// Config holds the engine configuration.
type Config struct {
	WorldDir    string    `yaml:"world_dir"`
	Store       string    `yaml:"store"` // "file" or "badger"
	Catalog     string    `yaml:"catalog"` // optional block catalog; built-in when empty
	LogLevel    string    `yaml:"log_level"`
	MetricsAddr string    `yaml:"metrics_addr"` // empty disables the endpoint
	Generator   Generator `yaml:"generator"`
	Region      Region    `yaml:"region"`
}

// Generator selects the terrain strategy.
type Generator struct {
	Type  string `yaml:"type"` // "flat", "simplex" or "perlin"
	Seed  int64  `yaml:"seed"`
	Low   int    `yaml:"low"`
	High  int    `yaml:"high"`
	Block string `yaml:"block"` // flat only
}

// Options converts to the generator factory input.
func (g Generator) Options() gen.Options {
	return gen.Options{Type: g.Type, Seed: g.Seed, Low: g.Low, High: g.High, Block: g.Block}
}

// Region is the inclusive block-space box loaded at startup.
type Region struct {
	Min [3]int `yaml:"min"`
	Max [3]int `yaml:"max"`
}

// Bounds returns the region corners as positions.
func (r Region) Bounds() (lo, hi cube.Pos) {
	return cube.P(r.Min[0], r.Min[1], r.Min[2]), cube.P(r.Max[0], r.Max[1], r.Max[2])
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		WorldDir: "world",
		Store:    StoreFile,
		LogLevel: "info",
		Generator: Generator{
			Type:  gen.TypeSimplex,
			Seed:  gen.DefaultSeed,
			Low:   0,
			High:  32,
			Block: "stone",
		},
		Region: Region{
			Min: [3]int{-64, 0, -64},
			Max: [3]int{63, 47, 63},
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file yields
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks values that have a fixed set of choices.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreFile, StoreBadger:
	default:
		return fmt.Errorf("config: unknown store %q", c.Store)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	for i := range 3 {
		if c.Region.Max[i] < c.Region.Min[i] {
			return fmt.Errorf("config: region max %v below min %v", c.Region.Max, c.Region.Min)
		}
	}
	return nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["world"] {
		cfg.WorldDir = fromFile.WorldDir
	}
	if !explicitFlags["store"] {
		cfg.Store = fromFile.Store
	}
	if !explicitFlags["catalog"] {
		cfg.Catalog = fromFile.Catalog
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
	if !explicitFlags["metrics-addr"] {
		cfg.MetricsAddr = fromFile.MetricsAddr
	}
	if !explicitFlags["generator"] {
		cfg.Generator.Type = fromFile.Generator.Type
	}
	if !explicitFlags["seed"] {
		cfg.Generator.Seed = fromFile.Generator.Seed
	}
	// Band and region have no flags.
	cfg.Generator.Low = fromFile.Generator.Low
	cfg.Generator.High = fromFile.Generator.High
	cfg.Generator.Block = fromFile.Generator.Block
	cfg.Region = fromFile.Region
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("config: log level %q: %w", s, err)
	}
	return l, nil
}
