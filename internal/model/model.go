package model

// SortBy selects the key the item list is ordered by.
type SortBy string

const (
	SortByName      SortBy = "name"
	SortByUpdatedAt SortBy = "updatedAt"
)

// SortDir selects the direction of the ordering.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Item is a persisted inventory entry. ID is assigned at creation and never
// changes; UpdatedAt is refreshed on every mutation (epoch milliseconds).
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Quantity float64 `json:"quantity"`
	Notes    string  `json:"notes,omitempty"`

	// PhotoURI is an opaque reference (file path or data URI) owned by the
	// image capability; it is stored as-is and never dereferenced here.
	PhotoURI string `json:"photoUri,omitempty"`

	UpdatedAt int64 `json:"updatedAt"`
}

// Draft is the shape accepted by create: an Item before id/updatedAt exist.
type Draft struct {
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Quantity float64 `json:"quantity"`
	Notes    string  `json:"notes,omitempty"`
	PhotoURI string  `json:"photoUri,omitempty"`
}

// Patch is a partial Draft; only non-nil fields are applied on update.
type Patch struct {
	Name     *string  `json:"name,omitempty"`
	Category *string  `json:"category,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	Notes    *string  `json:"notes,omitempty"`
	PhotoURI *string  `json:"photoUri,omitempty"`
}

// Apply merges the patch into a copy of the item and returns the result.
// UpdatedAt is left alone; the store owns timestamps.
func (p Patch) Apply(it Item) Item {
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Category != nil {
		it.Category = *p.Category
	}
	if p.Quantity != nil {
		it.Quantity = *p.Quantity
	}
	if p.Notes != nil {
		it.Notes = *p.Notes
	}
	if p.PhotoURI != nil {
		it.PhotoURI = *p.PhotoURI
	}
	return it
}

// FromDraft builds an Item from a Draft; the caller supplies id and timestamp.
func FromDraft(d Draft, id string, updatedAt int64) Item {
	return Item{
		ID:        id,
		Name:      d.Name,
		Category:  d.Category,
		Quantity:  d.Quantity,
		Notes:     d.Notes,
		PhotoURI:  d.PhotoURI,
		UpdatedAt: updatedAt,
	}
}
