package journal

// MemoryPersister keeps the persisted slot in memory. For tests and for
// running without a writable data directory.
type MemoryPersister struct {
	entries   []Entry
	saveCalls int
}

// NewMemoryPersister returns an empty in-memory slot.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

// Load returns a copy of the stored entries.
func (p *MemoryPersister) Load() ([]Entry, error) {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out, nil
}

// Save replaces the stored entries with a copy of entries.
func (p *MemoryPersister) Save(entries []Entry) error {
	p.entries = make([]Entry, len(entries))
	copy(p.entries, entries)
	p.saveCalls++
	return nil
}

// SaveCalls reports how many times Save ran. Test hook.
func (p *MemoryPersister) SaveCalls() int { return p.saveCalls }
