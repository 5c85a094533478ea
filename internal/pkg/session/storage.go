package session

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
)

// Snapshot is the single persisted session record. Absence of the
// record means logged out.
type Snapshot struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Storage is the durable persistence boundary for the session store.
// Load returns (nil, nil) when no record exists.
type Storage interface {
	Load() (*Snapshot, error)
	Save(snapshot *Snapshot) error
	Clear() error
}

// FileStorage persists the session snapshot as a JSON file
type FileStorage struct {
	path string
}

// NewFileStorage creates a file-backed storage at the given path
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load reads the snapshot from disk
func (f *FileStorage) Load() (*Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Save writes the snapshot to disk
func (f *FileStorage) Save(snapshot *Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0600)
}

// Clear removes the persisted record
func (f *FileStorage) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryStorage keeps the snapshot in memory. Used in tests and as a
// fallback when no session file path is configured.
type MemoryStorage struct {
	mu       sync.Mutex
	snapshot *Snapshot
}

// NewMemoryStorage creates an in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Load returns the stored snapshot
func (m *MemoryStorage) Load() (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snapshot == nil {
		return nil, nil
	}
	copied := *m.snapshot
	return &copied, nil
}

// Save stores a copy of the snapshot
func (m *MemoryStorage) Save(snapshot *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *snapshot
	m.snapshot = &copied
	return nil
}

// Clear removes the stored snapshot
func (m *MemoryStorage) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = nil
	return nil
}
