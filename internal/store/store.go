package store

import (
	"sync"
	"time"

	"stockpile/internal/model"

	"github.com/bep/debounce"
)

// Mutations coalesce into one snapshot write after a quiet period, the same
// delay the search box uses.
const persistDebounce = 500 * time.Millisecond

const (
	defaultSortBy  = model.SortByUpdatedAt
	defaultSortDir = model.SortDesc
)

// Store owns the authoritative in-memory item list plus the UI-adjacent sort
// and search state. All mutations go through it; persistence is best-effort
// through the injected Storage and never surfaces to callers.
type Store struct {
	mu      sync.Mutex
	storage Storage

	items   []model.Item
	sortBy  model.SortBy
	sortDir model.SortDir
	search  string

	now       func() int64
	newID     func() string
	debounced func(func())
}

// New returns a store bound to storage. Call Hydrate before first use.
func New(storage Storage) *Store {
	return &Store{
		storage:   storage,
		sortBy:    defaultSortBy,
		sortDir:   defaultSortDir,
		now:       func() int64 { return time.Now().UnixMilli() },
		newID:     newItemID,
		debounced: debounce.New(persistDebounce),
	}
}

// Hydrate loads the persisted snapshot into memory. A missing or unreadable
// snapshot falls back to the seed dataset; hydrate never fails the caller.
func (s *Store) Hydrate() {
	snap, ok, err := s.storage.Load()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil || !ok || snap == nil {
		s.seedLocked()
		return
	}
	s.items = append([]model.Item(nil), snap.Items...)
	s.sortBy = snap.SortBy
	s.sortDir = snap.SortDir
	if s.sortBy != model.SortByName && s.sortBy != model.SortByUpdatedAt {
		s.sortBy = defaultSortBy
	}
	if s.sortDir != model.SortAsc && s.sortDir != model.SortDesc {
		s.sortDir = defaultSortDir
	}
}

// Seed discards the current list and restores the demo dataset.
func (s *Store) Seed() {
	s.mu.Lock()
	s.seedLocked()
	s.mu.Unlock()
	s.schedulePersist()
}

func (s *Store) seedLocked() {
	s.items = model.SeedItems()
	s.sortBy = defaultSortBy
	s.sortDir = defaultSortDir
}

// Add assigns a fresh id and timestamp, appends the item and schedules a
// persist. The created item is visible to reads as soon as Add returns.
func (s *Store) Add(draft model.Draft) model.Item {
	s.mu.Lock()
	it := model.FromDraft(draft, s.newID(), s.now())
	s.items = append(s.items, it)
	s.mu.Unlock()
	s.schedulePersist()
	return it
}

// Update merges the patch over the item with the given id and refreshes its
// timestamp. A missing id is a silent no-op: the end state (no such item to
// change) is already consistent.
func (s *Store) Update(id string, patch model.Patch) {
	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		it := patch.Apply(s.items[i])
		ts := s.now()
		if ts < s.items[i].UpdatedAt {
			ts = s.items[i].UpdatedAt
		}
		it.UpdatedAt = ts
		s.items[i] = it
		changed = true
		break
	}
	s.mu.Unlock()
	if changed {
		s.schedulePersist()
	}
}

// Remove deletes the item with the given id. Idempotent; removing an absent
// id is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	changed := false
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ID == id {
			changed = true
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept
	s.mu.Unlock()
	if changed {
		s.schedulePersist()
	}
}

// SetSort toggles direction when by is already active, otherwise switches to
// by ascending. The sort state is part of the persisted snapshot.
func (s *Store) SetSort(by model.SortBy) {
	s.mu.Lock()
	if s.sortBy == by {
		if s.sortDir == model.SortAsc {
			s.sortDir = model.SortDesc
		} else {
			s.sortDir = model.SortAsc
		}
	} else {
		s.sortBy = by
		s.sortDir = model.SortAsc
	}
	s.mu.Unlock()
	s.schedulePersist()
}

// SetSearch replaces the session search text. Never persisted.
func (s *Store) SetSearch(q string) {
	s.mu.Lock()
	s.search = q
	s.mu.Unlock()
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (model.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}

// Items returns a copy of the raw list in insertion order.
func (s *Store) Items() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Item(nil), s.items...)
}

// Len returns the number of items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Search returns the session search text.
func (s *Store) Search() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search
}

// SortState returns the active sort key and direction.
func (s *Store) SortState() (model.SortBy, model.SortDir) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortBy, s.sortDir
}

// View returns the derived display list for the current search/sort state.
func (s *Store) View() []model.Item {
	s.mu.Lock()
	items := append([]model.Item(nil), s.items...)
	search, by, dir := s.search, s.sortBy, s.sortDir
	s.mu.Unlock()
	return View(items, search, by, dir)
}

// Flush writes the snapshot now instead of waiting for the debounce window.
// Short-lived CLI invocations call this before exiting; the TUI calls it on
// quit. Like the debounced path, failures are dropped.
func (s *Store) Flush() {
	s.writeSnapshot()
}

func (s *Store) schedulePersist() {
	s.debounced(s.writeSnapshot)
}

func (s *Store) writeSnapshot() {
	s.mu.Lock()
	snap := &Snapshot{
		Version: 1,
		Items:   append([]model.Item(nil), s.items...),
		SortBy:  s.sortBy,
		SortDir: s.sortDir,
	}
	s.mu.Unlock()
	// Best-effort: memory stays authoritative for the session either way.
	_ = s.storage.Save(snap)
}
