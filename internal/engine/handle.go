package engine

import "fmt"

// Handle is a stable reference to an Object in a Scene. A handle stays valid
// until its object is removed; a reused slot gets a new generation so old
// handles never resolve to the new occupant.
type Handle struct {
	Index      uint32
	Generation uint32 // 0 = none
}

// Get resolves the handle. Returns nil for the zero handle, a nil scene or a
// removed object.
func (h Handle) Get(scene *Scene) *Object {
	if !h.IsValid() || scene == nil {
		return nil
	}
	o, _ := scene.Get(h)
	return o
}

// IsValid returns true if the handle was ever issued.
// Note: This doesn't check if the object is still in the scene.
func (h Handle) IsValid() bool {
	return h.Generation != 0
}

func (h Handle) String() string {
	if !h.IsValid() {
		return "handle(none)"
	}
	return fmt.Sprintf("handle(%d:%d)", h.Index, h.Generation)
}
