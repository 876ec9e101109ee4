package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

const snapshotFileName = "snapshot.json"

var errBackendFailure = errors.New("storage backend failure")

// FileStorage persists the snapshot as a single pretty-printed JSON file.
type FileStorage struct {
	Dir string
}

func (f FileStorage) path() string {
	return filepath.Join(f.Dir, snapshotFileName)
}

func (f FileStorage) Load() (*Snapshot, bool, error) {
	b, err := os.ReadFile(f.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, false, err
	}
	return &snap, true, nil
}

func (f FileStorage) Save(snap *Snapshot) error {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	// Write-then-rename so a crash mid-write never truncates the snapshot.
	tmp := f.path() + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path())
}
