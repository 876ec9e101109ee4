package store

import "github.com/google/uuid"

// newItemID returns a collision-resistant id. The "item-" prefix keeps ids
// recognizable in scripts and enables the direct-lookup CLI shortcut.
func newItemID() string {
	return "item-" + uuid.NewString()
}
