package simplecal

import (
	"fmt"
)

// NewStoreWithPersistence creates a Store backed by the JSON file in dataDir.
// Every applied event rewrites the file.
func NewStoreWithPersistence(dataDir string, opts ...Option) (*Store, error) {
	repo, err := NewFileRepository(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create file repository: %w", err)
	}
	return NewStore(repo, opts...)
}

// MemoryRepository keeps the snapshot in memory. Useful for tests and for
// running without a data directory.
type MemoryRepository struct {
	snap  *Snapshot
	Saves int
	// Err, when set, fails every Save
	Err error
}

// NewMemoryRepository optionally seeds the repository with snap
func NewMemoryRepository(snap *Snapshot) *MemoryRepository {
	return &MemoryRepository{snap: snap}
}

func (r *MemoryRepository) Load() (*Snapshot, error) {
	if r.snap == nil {
		return NewSnapshot(), nil
	}
	return r.snap.Clone(), nil
}

func (r *MemoryRepository) Save(snap *Snapshot) error {
	if r.Err != nil {
		return r.Err
	}
	r.snap = snap.Clone()
	r.Saves++
	return nil
}
