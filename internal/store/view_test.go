package store

import (
	"testing"

	"stockpile/internal/model"
)

func viewFixture() []model.Item {
	return []model.Item{
		{ID: "item-a", Name: "banana", UpdatedAt: 300},
		{ID: "item-b", Name: "Apple", UpdatedAt: 100},
		{ID: "item-c", Name: "apricot", UpdatedAt: 400},
		{ID: "item-d", Name: "Cherry", UpdatedAt: 200},
	}
}

func ids(items []model.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func equalIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestView_FilterIsCaseInsensitiveSubstring(t *testing.T) {
	t.Parallel()

	got := View(viewFixture(), "AP", model.SortByUpdatedAt, model.SortAsc)
	if !equalIDs(ids(got), "item-b", "item-c") {
		t.Fatalf("expected Apple and apricot, got %v", ids(got))
	}

	// Whitespace around the query is ignored; an all-space query matches all.
	got = View(viewFixture(), "   ", model.SortByUpdatedAt, model.SortAsc)
	if len(got) != 4 {
		t.Fatalf("blank query must match everything, got %v", ids(got))
	}
}

func TestView_FilterMatchesNameOnly(t *testing.T) {
	t.Parallel()

	items := []model.Item{
		{ID: "item-a", Name: "Milk", Category: "apricot", Notes: "apricot"},
		{ID: "item-b", Name: "apricot"},
	}
	got := View(items, "apricot", model.SortByUpdatedAt, model.SortAsc)
	if !equalIDs(ids(got), "item-b") {
		t.Fatalf("filter must only look at names, got %v", ids(got))
	}
}

func TestView_SortByNameIgnoresCase(t *testing.T) {
	t.Parallel()

	got := View(viewFixture(), "", model.SortByName, model.SortAsc)
	if !equalIDs(ids(got), "item-b", "item-c", "item-a", "item-d") {
		t.Fatalf("unexpected name-asc order: %v", ids(got))
	}
}

func TestView_SortByUpdatedAtIsNumeric(t *testing.T) {
	t.Parallel()

	got := View(viewFixture(), "", model.SortByUpdatedAt, model.SortAsc)
	if !equalIDs(ids(got), "item-b", "item-d", "item-a", "item-c") {
		t.Fatalf("unexpected updatedAt-asc order: %v", ids(got))
	}
}

func TestView_DescIsExactReverseOfAsc(t *testing.T) {
	t.Parallel()

	for _, by := range []model.SortBy{model.SortByName, model.SortByUpdatedAt} {
		asc := View(viewFixture(), "", by, model.SortAsc)
		desc := View(viewFixture(), "", by, model.SortDesc)
		if len(asc) != len(desc) {
			t.Fatalf("length mismatch for %s", by)
		}
		for i := range asc {
			if asc[i].ID != desc[len(desc)-1-i].ID {
				t.Fatalf("%s desc is not the reverse of asc:\nasc:  %v\ndesc: %v", by, ids(asc), ids(desc))
			}
		}
	}
}

func TestView_SortIsStableOnEqualKeys(t *testing.T) {
	t.Parallel()

	items := []model.Item{
		{ID: "item-1", Name: "Milk", UpdatedAt: 100},
		{ID: "item-2", Name: "Milk", UpdatedAt: 100},
		{ID: "item-3", Name: "Milk", UpdatedAt: 100},
	}
	got := View(items, "", model.SortByName, model.SortAsc)
	if !equalIDs(ids(got), "item-1", "item-2", "item-3") {
		t.Fatalf("equal keys must keep input order, got %v", ids(got))
	}
}

func TestView_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	items := viewFixture()
	_ = View(items, "", model.SortByName, model.SortDesc)

	want := viewFixture()
	for i := range items {
		if items[i] != want[i] {
			t.Fatalf("input slice modified at %d: %+v", i, items[i])
		}
	}
}
