package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"stockpile/internal/model"

	_ "modernc.org/sqlite"
)

const sqliteFileName = "state.sqlite"

// SQLiteStorage persists the snapshot in a local SQLite database: one row per
// item (id + JSON blob) plus a small k/v meta table for sort state.
type SQLiteStorage struct {
	Dir string
}

func (s SQLiteStorage) path() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s SQLiteStorage) open(ctx context.Context) (*sql.DB, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.path())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout helps avoid
	// "database is locked" flakiness when a CLI runs next to the TUI.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_items_name ON items(name);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sqlite state: %w", err)
		}
	}
	return nil
}

func (s SQLiteStorage) Load() (*Snapshot, bool, error) {
	ctx := context.Background()
	db, err := s.open(ctx)
	if err != nil {
		return nil, false, err
	}
	defer db.Close()

	has, err := hasAnyState(ctx, db)
	if err != nil {
		return nil, false, err
	}
	if !has {
		// One-time import of a legacy snapshot.json if present.
		legacy, ok, err := (FileStorage{Dir: s.Dir}).Load()
		if err != nil || !ok {
			return nil, false, err
		}
		if err := s.save(ctx, db, legacy); err != nil {
			return nil, false, err
		}
		return legacy, true, nil
	}

	snap, err := loadState(ctx, db)
	if err != nil {
		return nil, false, err
	}
	return snap, true, nil
}

func (s SQLiteStorage) Save(snap *Snapshot) error {
	if snap == nil {
		return errors.New("nil snapshot")
	}
	ctx := context.Background()
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	return s.save(ctx, db, snap)
}

func (s SQLiteStorage) save(ctx context.Context, db *sql.DB, snap *Snapshot) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	meta := [][2]string{
		{"version", strconv.Itoa(snap.Version)},
		{"sort_by", string(snap.SortBy)},
		{"sort_dir", string(snap.SortDir)},
	}
	for _, kv := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, kv[0], kv[1]); err != nil {
			return err
		}
	}

	// Replace-all strategy: the whole list is small and always written as one
	// snapshot, so incremental writes would only add failure modes.
	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return err
	}
	nowMs := time.Now().UTC().UnixMilli()
	for _, it := range snap.Items {
		raw, err := json.Marshal(it)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO items(id, name, json, updated_at_unixms) VALUES(?, ?, ?, ?)`,
			it.ID, it.Name, string(raw), nowMs); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func hasAnyState(ctx context.Context, db *sql.DB) (bool, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM state_meta`).Scan(&n); err != nil {
		// Tables missing means empty state.
		return false, nil
	}
	return n > 0, nil
}

func loadState(ctx context.Context, db *sql.DB) (*Snapshot, error) {
	out := &Snapshot{Version: 1}

	readMeta := func(k string) string {
		var v string
		_ = db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, k).Scan(&v)
		return strings.TrimSpace(v)
	}
	if v := readMeta("version"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			out.Version = n
		}
	}
	out.SortBy = model.SortBy(readMeta("sort_by"))
	out.SortDir = model.SortDir(readMeta("sort_dir"))

	rows, err := db.QueryContext(ctx, `SELECT json FROM items ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out.Items = []model.Item{}
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var it model.Item
		if err := json.Unmarshal([]byte(js), &it); err != nil {
			return nil, err
		}
		out.Items = append(out.Items, it)
	}
	return out, rows.Err()
}
