package simplecal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// SnapshotFileName is the file FileRepository keeps in its data directory
const SnapshotFileName = "goals.json"

// FileRepository stores the snapshot as one JSON document.
// No caching - always reads/writes the file. A lock file serializes processes.
type FileRepository struct {
	filePath string
}

// NewFileRepository creates a file repository in dataDir, creating the directory
func NewFileRepository(dataDir string) (*FileRepository, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileRepository{
		filePath: filepath.Join(dataDir, SnapshotFileName),
	}, nil
}

// Path returns the snapshot file path
func (r *FileRepository) Path() string {
	return r.filePath
}

// Load reads the snapshot. A missing or empty file yields an empty snapshot.
// Lock → Read → Unmarshal → Unlock
func (r *FileRepository) Load() (*Snapshot, error) {
	var snap *Snapshot
	err := r.withFileLock(func() error {
		data, err := os.ReadFile(r.filePath)
		if errors.Is(err, os.ErrNotExist) {
			snap = NewSnapshot()
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		if len(data) == 0 {
			snap = NewSnapshot()
			return nil
		}

		snap = NewSnapshot()
		if err := json.Unmarshal(data, snap); err != nil {
			return fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	snap.Normalize()
	return snap, nil
}

// Save replaces the file with snap. The write goes to a temp file that is
// renamed over the old one, so readers see either the old or the new document.
// Lock → Write temp → Rename → Unlock
func (r *FileRepository) Save(snap *Snapshot) error {
	out := snap.Clone()
	out.Normalize()
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	return r.withFileLock(func() error {
		tmp, err := os.CreateTemp(filepath.Dir(r.filePath), ".goals-*.json")
		if err != nil {
			return fmt.Errorf("failed to create temp file: %w", err)
		}
		defer os.Remove(tmp.Name())

		if _, err := tmp.Write(data); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write file: %w", err)
		}
		if err := tmp.Sync(); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to sync file: %w", err)
		}
		if err := tmp.Close(); err != nil {
			return fmt.Errorf("failed to close file: %w", err)
		}
		if err := os.Rename(tmp.Name(), r.filePath); err != nil {
			return fmt.Errorf("failed to replace snapshot: %w", err)
		}
		return nil
	})
}

// withFileLock executes fn while holding an exclusive lock on the sidecar lock file
func (r *FileRepository) withFileLock(fn func() error) error {
	lock, err := os.OpenFile(r.filePath+".lock", os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}
	defer lock.Close()

	if err := syscall.Flock(int(lock.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("failed to lock file: %w", err)
	}
	defer syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)

	return fn()
}
