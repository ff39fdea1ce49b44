// Package blob stores recorded media outside the journal database. Entries
// reference their media by key; the bytes live in a BadgerDB value log,
// which handles the multi-megabyte webm blobs better than sqlite rows.
package blob

import (
	"errors"
	"fmt"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned by Get when no blob exists under the key.
var ErrNotFound = errors.New("blob: not found")

// Store is a BadgerDB-backed media blob store.
type Store struct {
	db *badger.DB
}

// MediaKey returns the blob key for a journal entry id.
func MediaKey(entryID int64) string {
	return fmt.Sprintf("media:%d", entryID)
}

// Open opens the blob store under dataDir.
func Open(dataDir string) (*Store, error) {
	opts := badger.DefaultOptions(filepath.Join(dataDir, "media")).
		WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open blob store: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a memory-only store, for tests.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory blob store: %w", err)
	}
	return &Store{db: db}, nil
}

// Put stores data under key, replacing any existing blob.
func (s *Store) Put(key string, data []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("put blob %s: %w", key, err)
	}
	return nil
}

// Get returns the blob stored under key.
func (s *Store) Get(key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get blob %s: %w", key, err)
	}
	return data, nil
}

// Delete removes the blob under key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete blob %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
