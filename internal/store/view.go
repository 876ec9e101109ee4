package store

import (
	"sort"
	"strings"

	"stockpile/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// View computes the display list: a case-insensitive substring filter of
// search against item names, ordered by the requested key. It is pure; the
// input slice is never modified.
//
// Descending order is the exact reverse of ascending, and equal keys keep
// their relative input order.
func View(items []model.Item, search string, by model.SortBy, dir model.SortDir) []model.Item {
	needle := strings.ToLower(strings.TrimSpace(search))

	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if needle != "" && !strings.Contains(strings.ToLower(it.Name), needle) {
			continue
		}
		out = append(out, it)
	}

	switch by {
	case model.SortByName:
		// Loose collation: locale-aware, ignores case like the UI filter does.
		c := collate.New(language.Und, collate.Loose)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Name, out[j].Name) < 0
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].UpdatedAt < out[j].UpdatedAt
		})
	}

	if dir == model.SortDesc {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
