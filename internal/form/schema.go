// Package form holds the item schema validation and the controller that binds
// in-progress field values to it.
package form

import (
	"math"
	"strconv"
	"strings"

	"stockpile/internal/model"
)

// Field names, also used as keys in the error map.
const (
	FieldName     = "name"
	FieldQuantity = "quantity"
	FieldCategory = "category"
	FieldNotes    = "notes"
	FieldPhotoURI = "photoUri"
)

// Messages surfaced inline next to the offending field.
const (
	MsgNameRequired  = "Name is required"
	MsgQuantityRange = "Quantity must be greater than 0"
)

// RawDraft is a draft as typed: every field a string, nothing coerced yet.
type RawDraft struct {
	Name     string
	Quantity string
	Category string
	Notes    string
	PhotoURI string
}

// RawFromDraft turns a normalized draft back into editable field text, for
// pre-filling the edit form.
func RawFromDraft(d model.Draft) RawDraft {
	return RawDraft{
		Name:     d.Name,
		Quantity: formatQuantity(d.Quantity),
		Category: d.Category,
		Notes:    d.Notes,
		PhotoURI: d.PhotoURI,
	}
}

// Fields maps a field name to a human-readable error message.
type Fields map[string]string

// Validate checks a raw draft against the item schema and either returns the
// normalized draft or the per-field errors. Pure; safe to run on every
// keystroke.
//
// Rules:
//   - name: trimmed, required
//   - quantity: coerced from text, must be a finite number > 0
//   - category, notes: optional, trimmed, empty means absent
//   - photoUri: opaque pass-through
func Validate(raw RawDraft) (model.Draft, Fields) {
	errs := Fields{}

	name := strings.TrimSpace(raw.Name)
	if name == "" {
		errs[FieldName] = MsgNameRequired
	}

	qty, err := strconv.ParseFloat(strings.TrimSpace(raw.Quantity), 64)
	if err != nil || math.IsNaN(qty) || math.IsInf(qty, 0) || qty <= 0 {
		errs[FieldQuantity] = MsgQuantityRange
	}

	if len(errs) > 0 {
		return model.Draft{}, errs
	}
	return model.Draft{
		Name:     name,
		Category: strings.TrimSpace(raw.Category),
		Quantity: qty,
		Notes:    strings.TrimSpace(raw.Notes),
		PhotoURI: raw.PhotoURI,
	}, nil
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
