package engine

import "testing"

func TestHandleGet(t *testing.T) {
	scene := NewScene("Test")
	obj := NewObject("Target", nil)
	h := scene.Add(obj)

	found := h.Get(scene)
	if found != obj {
		t.Errorf("Get() failed: expected %v, got %v", obj, found)
	}
}

func TestHandleGetNil(t *testing.T) {
	scene := NewScene("Test")

	if (Handle{}).Get(scene) != nil {
		t.Error("Get() with zero handle should return nil")
	}

	// Index past the arena
	if (Handle{Index: 99, Generation: 1}).Get(scene) != nil {
		t.Error("Get() with unknown index should return nil")
	}

	h := scene.Add(NewObject("Target", nil))
	if h.Get(nil) != nil {
		t.Error("Get() with nil scene should return nil")
	}
}

func TestHandleIsValid(t *testing.T) {
	valid := Handle{Index: 0, Generation: 1}
	if !valid.IsValid() {
		t.Error("Handle with generation > 0 should be valid")
	}

	if (Handle{}).IsValid() {
		t.Error("Zero handle should be invalid")
	}
}

func TestHandleMultipleObjects(t *testing.T) {
	scene := NewScene("Test")
	obj1 := NewObject("First", nil)
	obj2 := NewObject("Second", nil)

	h1 := scene.Add(obj1)
	h2 := scene.Add(obj2)

	if h1 == h2 {
		t.Error("Different objects should get different handles")
	}
	if h1.Get(scene) != obj1 {
		t.Error("First handle didn't return correct object")
	}
	if h2.Get(scene) != obj2 {
		t.Error("Second handle didn't return correct object")
	}
}

func TestHandleString(t *testing.T) {
	if got := (Handle{}).String(); got != "handle(none)" {
		t.Errorf("Expected 'handle(none)', got '%s'", got)
	}
	if got := (Handle{Index: 3, Generation: 2}).String(); got != "handle(3:2)" {
		t.Errorf("Expected 'handle(3:2)', got '%s'", got)
	}
}
