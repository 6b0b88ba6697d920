package world

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"

	"sweep3d/internal/engine"
	"sweep3d/internal/mesh"
)

func lookDownZ() Frustum {
	return ExtractFrustum(rl.Camera3D{
		Position:   rl.Vector3{},
		Target:     rl.Vector3{Z: -1},
		Up:         rl.Vector3{Y: 1},
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}, 1)
}

func TestFrustumContainsSphere(t *testing.T) {
	f := lookDownZ()

	assert.True(t, f.ContainsSphere(rl.Vector3{Z: -10}, 1))
	assert.True(t, f.ContainsPoint(rl.Vector3{X: 2, Y: -2, Z: -20}))
	assert.False(t, f.ContainsSphere(rl.Vector3{Z: 10}, 1), "behind the camera")
	assert.False(t, f.ContainsSphere(rl.Vector3{X: 100, Z: -10}, 1), "far to the side")
	assert.False(t, f.ContainsSphere(rl.Vector3{Z: -2000}, 1), "past the far plane")

	// A large sphere beside the view still touches it.
	assert.True(t, f.ContainsSphere(rl.Vector3{X: 12, Z: -10}, 10))
}

func TestFrustumOrthographic(t *testing.T) {
	f := ExtractFrustum(rl.Camera3D{
		Position:   rl.Vector3{Y: 10},
		Target:     rl.Vector3{},
		Up:         rl.Vector3{Z: -1},
		Fovy:       20,
		Projection: rl.CameraOrthographic,
	}, 1)

	assert.True(t, f.ContainsPoint(rl.Vector3{X: 9}))
	assert.False(t, f.ContainsPoint(rl.Vector3{X: 11}))
	assert.True(t, f.ContainsPoint(rl.Vector3{X: -9, Z: 9}))
	assert.False(t, f.ContainsPoint(rl.Vector3{Z: -11}))
	assert.False(t, f.ContainsPoint(rl.Vector3{Y: 20}), "above the camera")
}

func TestFrustumMovedCamera(t *testing.T) {
	f := ExtractFrustum(rl.Camera3D{
		Position:   rl.Vector3{X: 50, Y: 5, Z: 50},
		Target:     rl.Vector3{X: 60, Y: 5, Z: 50},
		Up:         rl.Vector3{Y: 1},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}, 16.0/9.0)

	assert.True(t, f.ContainsSphere(rl.Vector3{X: 70, Y: 5, Z: 52}, 1))
	assert.False(t, f.ContainsSphere(rl.Vector3{X: 40, Y: 5, Z: 50}, 1), "behind")
	assert.False(t, f.ContainsSphere(rl.Vector3{X: 52, Y: 5, Z: 80}, 1), "beside")
}

func TestFrustumVisible(t *testing.T) {
	scene := engine.NewScene("Main")
	box := mesh.Box(rl.Vector3{X: 1, Y: 1, Z: 1})

	ahead := engine.NewObject("Ahead", box)
	ahead.Position = rl.Vector3{Z: -5}
	behind := engine.NewObject("Behind", box)
	behind.Position = rl.Vector3{Z: 5}
	empty := engine.NewObject("Empty", nil)
	empty.Position = rl.Vector3{Z: -5}

	h := scene.Add(ahead)
	scene.Add(behind)
	scene.Add(empty)

	f := lookDownZ()
	assert.Equal(t, []engine.Handle{h}, f.Visible(scene))
}
