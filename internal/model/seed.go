package model

// SeedItems returns the demo dataset used when no persisted state exists.
// Callers get a fresh slice each time; the contents are fixed so tests can
// rely on them.
func SeedItems() []Item {
	return []Item{
		{
			ID:        "item-001",
			Name:      "Apples",
			Category:  "Fruits",
			Quantity:  10,
			Notes:     "Green Granny Smith apples",
			PhotoURI:  "file://photos/apples.jpg",
			UpdatedAt: 1698075600000,
		},
		{
			ID:        "item-002",
			Name:      "Toothbrush",
			Category:  "Toiletries",
			Quantity:  2,
			UpdatedAt: 1698158400000,
		},
		{
			ID:        "item-003",
			Name:      "Notebook",
			Category:  "Stationery",
			Quantity:  5,
			Notes:     "A5 size, ruled",
			UpdatedAt: 1698244800000,
		},
		{
			ID:        "item-004",
			Name:      "Canned Beans",
			Quantity:  12,
			Notes:     "Expires Dec 2026",
			PhotoURI:  "file://photos/beans.jpg",
			UpdatedAt: 1698331200000,
		},
		{
			ID:        "item-005",
			Name:      "LED Light Bulb",
			Category:  "Electronics",
			Quantity:  4,
			PhotoURI:  "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAUA...",
			UpdatedAt: 1698417600000,
		},
	}
}
