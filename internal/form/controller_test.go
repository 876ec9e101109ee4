package form

import (
	"context"
	"errors"
	"testing"

	"stockpile/internal/model"
	"stockpile/internal/photo"
	"stockpile/internal/store"
)

type fakeCapability struct {
	res photo.Result
	err error
}

func (f fakeCapability) PickFromLibrary(context.Context) (photo.Result, error)   { return f.res, f.err }
func (f fakeCapability) CaptureFromCamera(context.Context) (photo.Result, error) { return f.res, f.err }

func newEmptyStore() *store.Store {
	return store.New(&store.MemoryStorage{})
}

func TestNewCreate_StartsInvalidWithDefaultQuantity(t *testing.T) {
	t.Parallel()

	c := NewCreate(newEmptyStore(), fakeCapability{})

	if got := c.Raw().Quantity; got != "1" {
		t.Fatalf("create form must open with quantity 1, got %q", got)
	}
	if c.Valid() {
		t.Fatalf("empty name must leave the draft invalid")
	}
	if got := c.FieldError(FieldName); got != MsgNameRequired {
		t.Fatalf("expected name error %q, got %q", MsgNameRequired, got)
	}
	if c.FieldError(FieldQuantity) != "" {
		t.Fatalf("quantity 1 must be valid")
	}
	if c.CanSubmit() {
		t.Fatalf("submit must be disabled while invalid")
	}
}

func TestController_LiveValidationTracksEdits(t *testing.T) {
	t.Parallel()

	c := NewCreate(newEmptyStore(), fakeCapability{})

	c.SetName("Milk")
	if !c.Valid() || !c.CanSubmit() {
		t.Fatalf("valid draft must enable submit")
	}

	c.SetQuantity("0")
	if c.CanSubmit() {
		t.Fatalf("invalid quantity must disable submit")
	}
	if got := c.FieldError(FieldQuantity); got != MsgQuantityRange {
		t.Fatalf("expected quantity error %q, got %q", MsgQuantityRange, got)
	}

	c.SetQuantity("4")
	if !c.CanSubmit() {
		t.Fatalf("fixing the field must re-enable submit")
	}
}

func TestSubmit_CreateAddsToStore(t *testing.T) {
	t.Parallel()

	st := newEmptyStore()
	c := NewCreate(st, fakeCapability{})
	c.SetName("  Milk  ")
	c.SetQuantity("2")
	c.SetCategory("Dairy")

	if !c.Submit() {
		t.Fatalf("submit of a valid draft must succeed")
	}
	items := st.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 item in store, got %d", len(items))
	}
	if items[0].Name != "Milk" || items[0].Quantity != 2 || items[0].Category != "Dairy" {
		t.Fatalf("stored item not normalized: %+v", items[0])
	}
	if c.Busy() {
		t.Fatalf("busy flag must clear after submit")
	}
}

func TestSubmit_InvalidDraftIsRejected(t *testing.T) {
	t.Parallel()

	st := newEmptyStore()
	c := NewCreate(st, fakeCapability{})

	if c.Submit() {
		t.Fatalf("submit must fail while the draft is invalid")
	}
	if got := st.Len(); got != 0 {
		t.Fatalf("rejected submit must not touch the store, got %d items", got)
	}
}

func TestSubmit_EditUpdatesExistingItem(t *testing.T) {
	t.Parallel()

	st := newEmptyStore()
	it := st.Add(model.Draft{Name: "Milk", Quantity: 2, PhotoURI: "file://old.jpg"})

	c := NewEdit(st, fakeCapability{}, it)
	if !c.Editing() {
		t.Fatalf("edit controller must report Editing")
	}
	if got := c.Raw().Name; got != "Milk" {
		t.Fatalf("edit form must pre-fill from the item, got name %q", got)
	}

	c.SetName("Oat Milk")
	c.SetQuantity("3")
	if !c.Submit() {
		t.Fatalf("submit must succeed")
	}

	got, ok := st.Get(it.ID)
	if !ok {
		t.Fatalf("item vanished")
	}
	if got.Name != "Oat Milk" || got.Quantity != 3 {
		t.Fatalf("item not updated: %+v", got)
	}
	if got.PhotoURI != "file://old.jpg" {
		t.Fatalf("untouched photo must survive an edit, got %q", got.PhotoURI)
	}
	if st.Len() != 1 {
		t.Fatalf("edit must not create a second item")
	}
}

func TestAcquirePhoto_SuccessSetsPhotoURI(t *testing.T) {
	t.Parallel()

	c := NewCreate(newEmptyStore(), fakeCapability{res: photo.Result{URI: "file://new.jpg"}})

	advisory := c.AcquirePhoto(context.Background(), PhotoFromLibrary)
	if advisory != "" {
		t.Fatalf("success must not produce an advisory, got %q", advisory)
	}
	if got := c.Raw().PhotoURI; got != "file://new.jpg" {
		t.Fatalf("photoUri not set, got %q", got)
	}
	if c.Busy() {
		t.Fatalf("busy flag must clear after acquisition")
	}
}

func TestAcquirePhoto_CancelKeepsDraft(t *testing.T) {
	t.Parallel()

	c := NewCreate(newEmptyStore(), fakeCapability{res: photo.Result{Cancelled: true}})
	c.SetName("Milk")

	advisory := c.AcquirePhoto(context.Background(), PhotoFromCamera)
	if advisory != "" {
		t.Fatalf("cancel must not produce an advisory, got %q", advisory)
	}
	raw := c.Raw()
	if raw.PhotoURI != "" || raw.Name != "Milk" {
		t.Fatalf("cancel must leave the draft untouched: %+v", raw)
	}
}

func TestAcquirePhoto_DeniedAdvisoriesPerSource(t *testing.T) {
	t.Parallel()

	c := NewCreate(newEmptyStore(), fakeCapability{err: photo.ErrPermissionDenied})

	if got := c.AcquirePhoto(context.Background(), PhotoFromLibrary); got != advisoryLibraryDenied {
		t.Fatalf("library denial advisory mismatch: %q", got)
	}
	if got := c.AcquirePhoto(context.Background(), PhotoFromCamera); got != advisoryCameraDenied {
		t.Fatalf("camera denial advisory mismatch: %q", got)
	}
	if got := c.Raw().PhotoURI; got != "" {
		t.Fatalf("denial must not set photoUri, got %q", got)
	}
}

func TestAcquirePhoto_FailureAdvisoriesPerSource(t *testing.T) {
	t.Parallel()

	c := NewCreate(newEmptyStore(), fakeCapability{err: errors.New("boom")})

	if got := c.AcquirePhoto(context.Background(), PhotoFromLibrary); got != advisoryPickFailed {
		t.Fatalf("pick failure advisory mismatch: %q", got)
	}
	if got := c.AcquirePhoto(context.Background(), PhotoFromCamera); got != advisoryCameraFailed {
		t.Fatalf("camera failure advisory mismatch: %q", got)
	}
}

func TestClearPhoto(t *testing.T) {
	t.Parallel()

	st := newEmptyStore()
	it := st.Add(model.Draft{Name: "Milk", Quantity: 2, PhotoURI: "file://old.jpg"})

	c := NewEdit(st, fakeCapability{}, it)
	c.ClearPhoto()
	if got := c.Raw().PhotoURI; got != "" {
		t.Fatalf("expected cleared photoUri, got %q", got)
	}
	if !c.Submit() {
		t.Fatalf("submit must succeed")
	}
	got, _ := st.Get(it.ID)
	if got.PhotoURI != "" {
		t.Fatalf("cleared photo must persist through submit, got %q", got.PhotoURI)
	}
}
