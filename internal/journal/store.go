package journal

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrNotFound is returned by Update and Delete for an unknown id. The
	// collection is left untouched.
	ErrNotFound = errors.New("journal: entry not found")
)

// Store is the in-memory working set, newest first, mirrored to a Persister
// on every mutation. Single-writer: the app event loop owns it.
type Store struct {
	persister Persister
	entries   []Entry
}

// Open loads the persisted entries into a new store.
func Open(p Persister) (*Store, error) {
	entries, err := p.Load()
	if err != nil {
		return nil, fmt.Errorf("load journal: %w", err)
	}
	return &Store{persister: p, entries: entries}, nil
}

// Insert prepends entry and enforces the entry cap, evicting the oldest
// entries past MaxEntries. It returns the evicted entries so the caller can
// release their media blobs. Insert never fails the cap; a persistence error
// is returned after the in-memory state is already updated.
func (s *Store) Insert(entry Entry) (evicted []Entry, err error) {
	s.entries = append([]Entry{entry}, s.entries...)
	if len(s.entries) > MaxEntries {
		evicted = s.entries[MaxEntries:]
		s.entries = s.entries[:MaxEntries]
	}
	if err := s.persist(); err != nil {
		return evicted, err
	}
	return evicted, nil
}

// Update merges patch into the entry with the given id. Unknown ids return
// ErrNotFound and change nothing. A rejected patch applies none of its
// fields, even the valid ones. Identity fields and collection position are
// never affected.
func (s *Store) Update(id int64, patch Patch) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}

	// Validate the whole patch before touching the entry.
	if patch.Rating != nil {
		if r := *patch.Rating; r < 0 || r > 5 {
			return fmt.Errorf("journal: rating %d out of range 0..5", r)
		}
	}
	if patch.Bookmark != nil && *patch.Bookmark < 0 {
		return fmt.Errorf("journal: bookmark offset %v is negative", *patch.Bookmark)
	}

	if patch.Rating != nil {
		s.entries[idx].Rating = *patch.Rating
	}
	if patch.Notes != nil {
		s.entries[idx].Notes = *patch.Notes
	}
	if patch.Bookmark != nil {
		offset := *patch.Bookmark
		s.entries[idx].Bookmark = &offset
	}

	return s.persist()
}

// Delete removes the entry with the given id. Unknown ids return ErrNotFound
// and change nothing.
func (s *Store) Delete(id int64) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	return s.persist()
}

// List returns a snapshot of the entries, newest first.
func (s *Store) List() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// FindByID returns the entry with the given id.
func (s *Store) FindByID(id int64) (Entry, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Entry{}, false
	}
	return s.entries[idx], true
}

// Len returns the number of stored entries.
func (s *Store) Len() int { return len(s.entries) }

func (s *Store) indexOf(id int64) int {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persist() error {
	if err := s.persister.Save(s.entries); err != nil {
		return fmt.Errorf("save journal: %w", err)
	}
	return nil
}
