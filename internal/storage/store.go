// Package storage is the record store: it owns the in-memory Dataset and
// mirrors it 1:1 onto three JSON files (users, books, transactions).
//
// Every mutating service call ends in Save, which rewrites all three files in
// full and then reloads them, so the in-memory state always reflects what is
// on disk. There is no locking; a single interactive session is the only
// writer.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kjk/common/atomicfile"

	"github.com/mrlokans/librarian/internal/entities"
	"github.com/mrlokans/librarian/internal/logging"
)

const fileExtension = ".json"

type Options struct {
	// Dir holds the collection files; created if missing.
	Dir string
	// AtomicWrites writes each file through a temp file + rename. Off by
	// default: a crash mid-write can then truncate a file.
	AtomicWrites bool
}

type Store struct {
	opts Options
	log  logging.Logger
	data *entities.Dataset
}

// New creates a store without touching the disk. Call Load before use.
func New(opts Options, log logging.Logger) *Store {
	return &Store{
		opts: opts,
		log:  log,
		data: &entities.Dataset{},
	}
}

// Open creates a store and loads it.
func Open(opts Options, log logging.Logger) (*Store, error) {
	s := New(opts, log)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dataset returns the live dataset. The pointer stays valid across Load and
// Refresh; its collections are replaced in place.
func (s *Store) Dataset() *entities.Dataset {
	return s.data
}

// Path returns the backing file of a collection.
func (s *Store) Path(c entities.Collection) string {
	return filepath.Join(s.opts.Dir, string(c)+fileExtension)
}

// Load reads every collection file. A missing file is created holding the
// collection's empty form. The dataset is only replaced once all three
// collections parsed.
func (s *Store) Load() error {
	if err := os.MkdirAll(s.opts.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	raw := make(map[entities.Collection][]byte, len(entities.Collections))
	for _, c := range entities.Collections {
		data, err := s.readOrCreate(c)
		if err != nil {
			return err
		}
		raw[c] = data
	}

	members, err := decodeMembers(raw[entities.CollectionMembers])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", s.Path(entities.CollectionMembers), err)
	}
	books, err := decodeBooks(raw[entities.CollectionBooks])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", s.Path(entities.CollectionBooks), err)
	}
	txs, err := decodeTransactions(raw[entities.CollectionTransactions])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", s.Path(entities.CollectionTransactions), err)
	}

	s.data.Members = members
	s.data.Books = books
	s.data.Transactions = txs
	return nil
}

func (s *Store) readOrCreate(c entities.Collection) ([]byte, error) {
	path := s.Path(c)
	data, err := os.ReadFile(path)
	if err == nil {
		s.log.Debug("Loaded data into storage from file", "path", path)
		return data, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	data = emptyForm(c)
	if err := s.write(path, data); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	s.log.Debug("Created empty collection file", "path", path)
	return data, nil
}

// Save serializes all three collections to their files, then reloads them.
func (s *Store) Save() error {
	if err := s.ValidatePresence(); err != nil {
		return err
	}

	payloads := map[entities.Collection]any{
		entities.CollectionMembers:      s.data.Members,
		entities.CollectionBooks:        s.data.Books,
		entities.CollectionTransactions: s.data.Transactions,
	}
	for _, c := range entities.Collections {
		data, err := Encode(payloads[c])
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", c, err)
		}
		path := s.Path(c)
		if err := s.write(path, data); err != nil {
			return fmt.Errorf("failed to save %s: %w", path, err)
		}
		s.log.Debug("Saved data into file", "path", path)
	}

	return s.Refresh()
}

// Refresh discards in-memory state and reloads it from the files.
func (s *Store) Refresh() error {
	if err := s.Load(); err != nil {
		return err
	}
	s.log.Debug("Refreshed/reloaded the fresh data from files")
	return nil
}

// ValidatePresence fails if any collection is absent from the dataset.
func (s *Store) ValidatePresence() error {
	for _, c := range entities.Collections {
		if !s.data.Has(c) {
			return fmt.Errorf("%w: %s", ErrMissingCollection, c)
		}
	}
	return nil
}

func (s *Store) write(path string, data []byte) error {
	if !s.opts.AtomicWrites {
		return os.WriteFile(path, data, 0644)
	}
	return WriteAtomic(path, data)
}

// WriteAtomic writes to a temp file next to path and renames it over path
// once everything is on disk. The result is world-readable like a file
// written with os.WriteFile.
func WriteAtomic(path string, data []byte) error {
	f, err := atomicfile.New(path)
	if err != nil {
		return err
	}
	defer f.RemoveIfNotClosed()

	if _, err := f.Write(data); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Chmod(path, 0644)
}
