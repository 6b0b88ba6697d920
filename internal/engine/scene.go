package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrStaleHandle = errors.New("stale object handle")

type slot struct {
	object     *Object
	generation uint32
}

// Scene owns the objects of a world in a slot arena. Iteration always follows
// insertion order.
type Scene struct {
	Name string

	slots []slot
	free  []uint32
	order []Handle
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:  name,
		slots: make([]slot, 0),
		order: make([]Handle, 0),
	}
}

// Add registers an object and returns its handle. A nil object is not added
// and gets the zero handle.
func (s *Scene) Add(o *Object) Handle {
	if o == nil {
		return Handle{}
	}

	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.slots = append(s.slots, slot{})
		idx = uint32(len(s.slots) - 1)
	}

	sl := &s.slots[idx]
	sl.generation++
	sl.object = o

	h := Handle{Index: idx, Generation: sl.generation}
	s.order = append(s.order, h)
	return h
}

// Remove unregisters the object. The handle and any copies of it go stale.
func (s *Scene) Remove(h Handle) error {
	if _, ok := s.Get(h); !ok {
		return fmt.Errorf("remove %v: %w", h, ErrStaleHandle)
	}

	sl := &s.slots[h.Index]
	sl.object = nil
	sl.generation++
	s.free = append(s.free, h.Index)

	for i, oh := range s.order {
		if oh == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the object for a live handle.
func (s *Scene) Get(h Handle) (*Object, bool) {
	if !h.IsValid() || int(h.Index) >= len(s.slots) {
		return nil, false
	}
	sl := s.slots[h.Index]
	if sl.generation != h.Generation || sl.object == nil {
		return nil, false
	}
	return sl.object, true
}

func (s *Scene) Contains(h Handle) bool {
	_, ok := s.Get(h)
	return ok
}

func (s *Scene) Len() int {
	return len(s.order)
}

// Handles returns a copy of the live handles in insertion order.
func (s *Scene) Handles() []Handle {
	return append([]Handle(nil), s.order...)
}

// Each calls fn for every object in insertion order. fn must not add or
// remove objects.
func (s *Scene) Each(fn func(h Handle, o *Object)) {
	for _, h := range s.order {
		fn(h, s.slots[h.Index].object)
	}
}

func (s *Scene) FindByName(name string) (Handle, *Object) {
	for _, h := range s.order {
		if o := s.slots[h.Index].object; o.Name == name {
			return h, o
		}
	}
	return Handle{}, nil
}

func (s *Scene) FindByID(id uuid.UUID) (Handle, *Object) {
	for _, h := range s.order {
		if o := s.slots[h.Index].object; o.ID == id {
			return h, o
		}
	}
	return Handle{}, nil
}

func (s *Scene) FindByTag(tag string) []Handle {
	var result []Handle
	for _, h := range s.order {
		if s.slots[h.Index].object.HasTag(tag) {
			result = append(result, h)
		}
	}
	return result
}
