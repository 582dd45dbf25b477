package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Meta describes a persisted world. It is written once when the world is
// created and read back on later runs.
type Meta struct {
	ID        uuid.UUID `yaml:"id"`
	Generator string    `yaml:"generator"`
	Seed      int64     `yaml:"seed"`
	Created   time.Time `yaml:"created"`
}

// Storage handles the on-disk layout of a world directory.
type Storage struct {
	dir string
	log *slog.Logger
}

// New creates a new Storage rooted at dir, creating subdirectories as needed.
func New(dir string, log *slog.Logger) (*Storage, error) {
	dirs := []string{
		dir,
		filepath.Join(dir, "chunks"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", d, err)
		}
	}
	return &Storage{dir: dir, log: log}, nil
}

// Dir returns the world root.
func (s *Storage) Dir() string {
	return s.dir
}

// ChunkDir is where the file store keeps chunk files.
func (s *Storage) ChunkDir() string {
	return filepath.Join(s.dir, "chunks")
}

// BadgerDir is where the badger store keeps its database.
func (s *Storage) BadgerDir() string {
	return filepath.Join(s.dir, "badger")
}

func (s *Storage) metaPath() string {
	return filepath.Join(s.dir, "world.yaml")
}

// LoadMeta reads world.yaml, or returns nil if the world is new.
func (s *Storage) LoadMeta() (*Meta, error) {
	data, err := os.ReadFile(s.metaPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read world meta: %w", err)
	}

	var m Meta
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse world meta: %w", err)
	}
	return &m, nil
}

// SaveMeta writes world.yaml atomically.
func (s *Storage) SaveMeta(m *Meta) error {
	return s.atomicWriteYAML(s.metaPath(), m)
}

// EnsureMeta returns the stored metadata, creating it for a new world. A
// stored generator that differs from the configured one is logged and kept.
func (s *Storage) EnsureMeta(generator string, seed int64) (*Meta, error) {
	m, err := s.LoadMeta()
	if err != nil {
		return nil, err
	}
	if m != nil {
		if m.Generator != generator || m.Seed != seed {
			s.log.Warn("world was created with a different generator",
				"stored", m.Generator, "stored_seed", m.Seed,
				"configured", generator, "configured_seed", seed)
		}
		s.log.Info("opened world", "id", m.ID, "created", m.Created)
		return m, nil
	}

	m = &Meta{
		ID:        uuid.New(),
		Generator: generator,
		Seed:      seed,
		Created:   time.Now().UTC().Truncate(time.Second),
	}
	if err := s.SaveMeta(m); err != nil {
		return nil, err
	}
	s.log.Info("created world", "id", m.ID, "dir", s.dir)
	return m, nil
}

// atomicWriteYAML marshals v to YAML and writes it atomically using a temp file + rename.
func (s *Storage) atomicWriteYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
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
