package store

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"stockpile/internal/model"
)

const envStorageBackend = "STOCKPILE_STORAGE"

// BackendKind selects the snapshot storage backend.
type BackendKind string

const (
	BackendAuto   BackendKind = ""
	BackendJSON   BackendKind = "json"
	BackendSQLite BackendKind = "sqlite"
)

// Snapshot is the persisted wire format: everything the store keeps between
// sessions. Search text is deliberately absent.
type Snapshot struct {
	Version int           `json:"version"`
	Items   []model.Item  `json:"items"`
	SortBy  model.SortBy  `json:"sortBy"`
	SortDir model.SortDir `json:"sortDir"`
}

// Storage is the durable key-value blob collaborator the store serializes
// into and hydrates from. Load reports ok=false when no snapshot exists yet.
type Storage interface {
	Load() (snap *Snapshot, ok bool, err error)
	Save(snap *Snapshot) error
}

// OpenStorage resolves the backend for dir. An explicit kind wins, then
// STOCKPILE_STORAGE, then autodetect: an existing snapshot.json keeps the
// JSON backend, everything else gets SQLite.
func OpenStorage(dir string, kind BackendKind) Storage {
	if kind == BackendAuto {
		kind = BackendKind(strings.TrimSpace(os.Getenv(envStorageBackend)))
	}
	switch kind {
	case BackendJSON:
		return FileStorage{Dir: dir}
	case BackendSQLite:
		return SQLiteStorage{Dir: dir}
	}
	if _, err := os.Stat(filepath.Join(dir, snapshotFileName)); err == nil {
		return FileStorage{Dir: dir}
	}
	return SQLiteStorage{Dir: dir}
}

// MemoryStorage keeps the snapshot in memory. Used by tests and as a
// stand-in when no durable dir is configured.
type MemoryStorage struct {
	mu   sync.Mutex
	snap *Snapshot

	// FailLoads / FailSaves let tests exercise the silent-degrade paths.
	FailLoads bool
	FailSaves bool
}

func (m *MemoryStorage) Load() (*Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailLoads {
		return nil, false, errBackendFailure
	}
	if m.snap == nil {
		return nil, false, nil
	}
	cp := cloneSnapshot(m.snap)
	return cp, true, nil
}

func (m *MemoryStorage) Save(snap *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSaves {
		return errBackendFailure
	}
	m.snap = cloneSnapshot(snap)
	return nil
}

func cloneSnapshot(snap *Snapshot) *Snapshot {
	cp := *snap
	cp.Items = append([]model.Item(nil), snap.Items...)
	return &cp
}
