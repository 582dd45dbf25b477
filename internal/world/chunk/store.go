package chunk

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v3"

	"github.com/OCharnyshevich/subsurface/internal/world/cube"
)

// Store persists chunks by origin.
type Store interface {
	// Load returns (nil, false, nil) when nothing is stored for origin.
	Load(origin cube.Pos) (*Chunk, bool, error)
	Save(c *Chunk) error
	Close() error
}

// FileStore keeps one file per chunk under a root directory.
type FileStore struct {
	root string
	log  *slog.Logger
}

// NewFileStore creates root if needed and returns a store over it.
func NewFileStore(root string, log *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", root, err)
	}
	return &FileStore{root: root, log: log}, nil
}

// Root returns the directory chunks are written under.
func (s *FileStore) Root() string {
	return s.root
}

func (s *FileStore) Load(origin cube.Pos) (*Chunk, bool, error) {
	s.log.Debug("reading chunk", "path", Path(s.root, origin))
	return Read(origin, s.root)
}

func (s *FileStore) Save(c *Chunk) error {
	s.log.Debug("writing chunk", "path", Path(s.root, c.Origin()))
	return c.Write(s.root)
}

func (s *FileStore) Close() error { return nil }

// BadgerStore keeps chunks in a badger key/value database.
type BadgerStore struct {
	db  *badger.DB
	log *slog.Logger
}

// OpenBadgerStore opens or creates a badger database in dir.
func OpenBadgerStore(dir string, log *slog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger %s: %w", dir, err)
	}
	log.Info("opened chunk database", "dir", dir)
	return &BadgerStore{db: db, log: log}, nil
}

func badgerKey(origin cube.Pos) []byte {
	return []byte(fmt.Sprintf("chunk:%d:%d:%d", origin.X, origin.Y, origin.Z))
}

func (s *BadgerStore) Load(origin cube.Pos) (*Chunk, bool, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(origin))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load chunk %v: %w", origin, err)
	}

	c, err := Decode(origin, data)
	if err != nil {
		return nil, false, fmt.Errorf("load chunk %v: %w", origin, err)
	}
	return c, true, nil
}

func (s *BadgerStore) Save(c *Chunk) error {
	data, err := c.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode chunk %v: %w", c.Origin(), err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(c.Origin()), data)
	})
	if err != nil {
		return fmt.Errorf("save chunk %v: %w", c.Origin(), err)
	}
	return nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
