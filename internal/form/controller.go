package form

import (
	"context"
	"errors"
	"sync"

	"stockpile/internal/model"
	"stockpile/internal/photo"
	"stockpile/internal/store"
)

// Advisory messages for photo capability failures. They block the form until
// dismissed but never change field values.
const (
	advisoryLibraryDenied = "Please allow photo library access to attach a photo."
	advisoryCameraDenied  = "Please allow camera access to take a photo."
	advisoryPickFailed    = "Could not pick image. You can retry later."
	advisoryCameraFailed  = "Could not open camera. You can retry later."
)

// Controller owns the in-progress draft for the create and edit screens. It
// revalidates on every field change (live validation), gates Submit on
// validity and the busy flag, and delegates photo acquisition to the image
// capability. It holds no item list of its own; a successful submit goes
// straight to the store.
type Controller struct {
	mu     sync.Mutex
	store  *store.Store
	photos photo.Capability

	itemID string // empty for create
	raw    RawDraft
	errs   Fields
	busy   bool
}

// NewCreate returns a controller for the create screen with the default
// draft (quantity pre-filled with 1, like the form has always opened).
func NewCreate(st *store.Store, photos photo.Capability) *Controller {
	c := &Controller{store: st, photos: photos, raw: RawDraft{Quantity: "1"}}
	c.revalidate()
	return c
}

// NewEdit returns a controller pre-filled from an existing item.
func NewEdit(st *store.Store, photos photo.Capability, it model.Item) *Controller {
	c := &Controller{
		store:  st,
		photos: photos,
		itemID: it.ID,
		raw: RawFromDraft(model.Draft{
			Name:     it.Name,
			Category: it.Category,
			Quantity: it.Quantity,
			Notes:    it.Notes,
			PhotoURI: it.PhotoURI,
		}),
	}
	c.revalidate()
	return c
}

// Editing reports whether the controller targets an existing item.
func (c *Controller) Editing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.itemID != ""
}

func (c *Controller) SetName(v string)     { c.setField(&c.raw.Name, v) }
func (c *Controller) SetQuantity(v string) { c.setField(&c.raw.Quantity, v) }
func (c *Controller) SetCategory(v string) { c.setField(&c.raw.Category, v) }
func (c *Controller) SetNotes(v string)    { c.setField(&c.raw.Notes, v) }

func (c *Controller) setField(dst *string, v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*dst = v
	c.revalidate()
}

func (c *Controller) revalidate() {
	_, errs := Validate(c.raw)
	c.errs = errs
}

// Raw returns the current field text.
func (c *Controller) Raw() RawDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.raw
}

// FieldError returns the message for a field, or "" when the field is valid.
func (c *Controller) FieldError(field string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errs[field]
}

// Valid reports whether the draft currently passes the schema.
func (c *Controller) Valid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errs) == 0
}

// Busy reports whether a submit or capability call is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// CanSubmit is the submit button's enabled state.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errs) == 0 && !c.busy
}

// Submit validates once more and delegates to the store: Add for a create
// controller, Update for an edit controller. It reports whether the caller
// should navigate back. The busy flag is cleared on every path.
func (c *Controller) Submit() bool {
	c.mu.Lock()
	if c.busy || len(c.errs) > 0 {
		c.mu.Unlock()
		return false
	}
	c.busy = true
	draft, errs := Validate(c.raw)
	c.mu.Unlock()

	defer c.clearBusy()

	if len(errs) > 0 {
		return false
	}
	if c.itemID == "" {
		c.store.Add(draft)
		return true
	}
	c.store.Update(c.itemID, model.Patch{
		Name:     &draft.Name,
		Category: &draft.Category,
		Quantity: &draft.Quantity,
		Notes:    &draft.Notes,
		PhotoURI: &draft.PhotoURI,
	})
	return true
}

func (c *Controller) clearBusy() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

// PhotoSource selects which capability operation to use.
type PhotoSource int

const (
	PhotoFromLibrary PhotoSource = iota
	PhotoFromCamera
)

// AcquirePhoto runs the capability and applies the outcome: cancel changes
// nothing, success sets photoUri, denial or failure returns an advisory for
// the caller to display. Blocking; run it off the UI loop.
func (c *Controller) AcquirePhoto(ctx context.Context, src PhotoSource) (advisory string) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ""
	}
	c.busy = true
	c.mu.Unlock()
	defer c.clearBusy()

	var res photo.Result
	var err error
	if src == PhotoFromCamera {
		res, err = c.photos.CaptureFromCamera(ctx)
	} else {
		res, err = c.photos.PickFromLibrary(ctx)
	}

	switch {
	case errors.Is(err, photo.ErrPermissionDenied):
		if src == PhotoFromCamera {
			return advisoryCameraDenied
		}
		return advisoryLibraryDenied
	case err != nil:
		if src == PhotoFromCamera {
			return advisoryCameraFailed
		}
		return advisoryPickFailed
	case res.Cancelled:
		return ""
	}

	c.mu.Lock()
	c.raw.PhotoURI = res.URI
	c.revalidate()
	c.mu.Unlock()
	return ""
}

// ClearPhoto removes the photo reference from the draft.
func (c *Controller) ClearPhoto() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.raw.PhotoURI = ""
	c.revalidate()
}
