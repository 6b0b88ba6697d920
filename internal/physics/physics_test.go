package physics

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"sweep3d/internal/engine"
	"sweep3d/internal/mesh"
)

// wallX is a 20x20 wall on the plane x=0 facing +X.
func wallX() *mesh.Mesh {
	return mesh.Quad(
		rl.Vector3{X: 0, Y: -10, Z: -10},
		rl.Vector3{X: 0, Y: 10, Z: -10},
		rl.Vector3{X: 0, Y: 10, Z: 10},
		rl.Vector3{X: 0, Y: -10, Z: 10},
	)
}

// wallZ is a 20x20 wall on the plane z=0 facing +Z.
func wallZ() *mesh.Mesh {
	return mesh.Quad(
		rl.Vector3{X: -10, Y: -10, Z: 0},
		rl.Vector3{X: 10, Y: -10, Z: 0},
		rl.Vector3{X: 10, Y: 10, Z: 0},
		rl.Vector3{X: -10, Y: 10, Z: 0},
	)
}

func place(scene *engine.Scene, name string, m *mesh.Mesh, pos rl.Vector3) engine.Handle {
	o := engine.NewObject(name, m)
	o.Position = pos
	return scene.Add(o)
}

func assertVec(t *testing.T, want, got rl.Vector3, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x")
	assert.InDelta(t, want.Y, got.Y, delta, "y")
	assert.InDelta(t, want.Z, got.Z, delta, "z")
}

func TestCollideObjectFace(t *testing.T) {
	scene := engine.NewScene("Test")
	h := place(scene, "wall", wallX(), rl.Vector3{})
	w := NewWorld(scene)

	hit := w.CollideObject(h, rl.Vector3{X: 5}, rl.Vector3{X: -10}, 1)

	require.True(t, hit.Hit)
	assert.Equal(t, h, hit.Object)
	assert.InDelta(t, 0.4, hit.T, 1e-5)
	assertVec(t, rl.Vector3{}, hit.Point, 1e-4)
	assertVec(t, rl.Vector3{X: 1}, hit.Center, 1e-4)
	assertVec(t, rl.Vector3{X: 1}, hit.Normal, 1e-5)
}

func TestCollideObjectRotated(t *testing.T) {
	scene := engine.NewScene("Test")
	o := engine.NewObject("wall", wallZ())
	o.Position = rl.Vector3{X: 2}
	o.Turn(math.Pi / 2) // local +Z now faces world +X
	h := scene.Add(o)
	w := NewWorld(scene)

	hit := w.CollideObject(h, rl.Vector3{X: 6}, rl.Vector3{X: -10}, 1)

	require.True(t, hit.Hit)
	assert.InDelta(t, 0.3, hit.T, 1e-4)
	assertVec(t, rl.Vector3{X: 2}, hit.Point, 1e-4)
	assertVec(t, rl.Vector3{X: 1}, hit.Normal, 1e-4)
}

func TestCollideObjectStaleHandle(t *testing.T) {
	scene := engine.NewScene("Test")
	h := place(scene, "wall", wallX(), rl.Vector3{})
	require.NoError(t, scene.Remove(h))

	hit := NewWorld(scene).CollideObject(h, rl.Vector3{X: 5}, rl.Vector3{X: -10}, 1)
	assert.False(t, hit.Hit)
}

func TestCollideRay(t *testing.T) {
	scene := engine.NewScene("Test")
	place(scene, "floor", mesh.Plane(100, 100), rl.Vector3{Y: -1})
	w := NewWorld(scene)

	hit := w.Collide(rl.Vector3{X: 3, Y: 4, Z: 1}, rl.Vector3{Y: -10}, 0)

	require.True(t, hit.Hit)
	assert.InDelta(t, 0.5, hit.T, 1e-5)
	assertVec(t, rl.Vector3{X: 3, Y: -1, Z: 1}, hit.Point, 1e-4)
}

func TestCollideReturnsNearest(t *testing.T) {
	scene := engine.NewScene("Test")
	place(scene, "far", wallX(), rl.Vector3{X: -2})
	near := place(scene, "near", wallX(), rl.Vector3{})
	w := NewWorld(scene)

	hit := w.Collide(rl.Vector3{X: 5}, rl.Vector3{X: -10}, 1)

	require.True(t, hit.Hit)
	assert.Equal(t, near, hit.Object)
}

func TestCollideTieGoesToFirstRegistered(t *testing.T) {
	scene := engine.NewScene("Test")
	first := place(scene, "first", wallX(), rl.Vector3{})
	place(scene, "second", wallX(), rl.Vector3{})
	w := NewWorld(scene)

	hit := w.Collide(rl.Vector3{X: 5}, rl.Vector3{X: -10}, 1)

	require.True(t, hit.Hit)
	assert.Equal(t, first, hit.Object)
}

func TestCollideExcept(t *testing.T) {
	scene := engine.NewScene("Test")
	near := place(scene, "near", wallX(), rl.Vector3{})
	far := place(scene, "far", wallX(), rl.Vector3{X: -2})
	w := NewWorld(scene)

	hit := w.CollideExcept(near, rl.Vector3{X: 5}, rl.Vector3{X: -10}, 1)

	require.True(t, hit.Hit)
	assert.Equal(t, far, hit.Object)
}

func TestCollideMiss(t *testing.T) {
	scene := engine.NewScene("Test")
	place(scene, "wall", wallX(), rl.Vector3{})
	w := NewWorld(scene)

	hit := w.Collide(rl.Vector3{X: 5}, rl.Vector3{X: 10}, 1)
	assert.False(t, hit.Hit)
	assert.False(t, hit.Object.IsValid())
}

func TestMayHit(t *testing.T) {
	o := engine.NewObject("box", mesh.Box(rl.Vector3{X: 2, Y: 2, Z: 2})) // radius sqrt(3)
	o.Position = rl.Vector3{X: 10}

	// Passes right through the center.
	assert.True(t, mayHit(o, rl.Vector3{}, rl.Vector3{X: 20}, 0.5))
	// Passes 5 units to the side.
	assert.False(t, mayHit(o, rl.Vector3{Z: 5}, rl.Vector3{X: 20}, 0.5))
	// Reaches only with the mover radius.
	assert.True(t, mayHit(o, rl.Vector3{Z: 2}, rl.Vector3{X: 20}, 0.5))
	// Stops well short of the object.
	assert.False(t, mayHit(o, rl.Vector3{}, rl.Vector3{X: 4}, 0.5))
	// Moves away from it.
	assert.False(t, mayHit(o, rl.Vector3{X: 5}, rl.Vector3{X: -4}, 0.5))
	// Not moving, overlapping.
	assert.True(t, mayHit(o, rl.Vector3{X: 11}, rl.Vector3{}, 0.5))
}

func TestSlideFreeOverFloor(t *testing.T) {
	scene := engine.NewScene("Test")
	place(scene, "floor", mesh.Plane(100, 100), rl.Vector3{})
	w := NewWorld(scene)

	for _, y := range []float32{1, 1.5, 3} {
		start := rl.Vector3{X: -2, Y: y, Z: 1}
		res := w.CollideAndSlide(start, rl.Vector3{X: 6, Z: -3}, 1)

		assert.Equal(t, StopFree, res.Reason)
		assert.False(t, res.Blocked())
		assert.Equal(t, 1, res.Iterations)
		assertVec(t, rl.Vector3{X: 4, Y: y, Z: -2}, res.Position, 1e-5)
	}
}

func TestSlideZeroDisplacement(t *testing.T) {
	scene := engine.NewScene("Test")
	place(scene, "wall", wallX(), rl.Vector3{})
	w := NewWorld(scene)

	res := w.CollideAndSlide(rl.Vector3{X: 0.5}, rl.Vector3{}, 1)

	assert.Equal(t, StopFree, res.Reason)
	assert.Equal(t, 0, res.Iterations)
	assert.Empty(t, res.States)
	assertVec(t, rl.Vector3{X: 0.5}, res.Position, 0)
}

func TestSlideAlongWall(t *testing.T) {
	scene := engine.NewScene("Test")
	wall := place(scene, "wall", wallX(), rl.Vector3{})
	w := NewWorld(scene)

	res := w.CollideAndSlide(rl.Vector3{X: 5}, rl.Vector3{X: -10, Z: 4}, 1)

	assert.Equal(t, StopFree, res.Reason)
	assert.Equal(t, 2, res.Iterations)
	assert.Equal(t, 1, res.Contacts)
	assert.Equal(t, wall, res.LastHit.Object)
	assert.Equal(t, []State{Moving, Blocked, Sliding, Moving, Resolved}, res.States)
	assertVec(t, rl.Vector3{X: 1.01, Z: 4}, res.Position, 1e-4)
}

func TestSlideHeadOnSettles(t *testing.T) {
	scene := engine.NewScene("Test")
	place(scene, "wall", wallX(), rl.Vector3{})
	w := NewWorld(scene)

	res := w.CollideAndSlide(rl.Vector3{X: 5}, rl.Vector3{X: -10}, 1)

	assert.Equal(t, StopSettled, res.Reason)
	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, []State{Moving, Blocked, Resolved}, res.States)
	assertVec(t, rl.Vector3{X: 1.01}, res.Position, 1e-4)
}

func TestSlideLandsNearFloorDiagonal(t *testing.T) {
	scene := engine.NewScene("Test")
	place(scene, "floor", mesh.Plane(100, 100), rl.Vector3{})
	w := NewWorld(scene)

	for _, z := range []float32{0, 3} {
		res := w.CollideAndSlide(rl.Vector3{Y: 1.01, Z: z}, rl.Vector3{X: 1, Y: -2.45}, 1)

		assert.Equal(t, StopFree, res.Reason)
		assertVec(t, rl.Vector3{Y: 1}, res.LastHit.Normal, 1e-6)
		assertVec(t, rl.Vector3{X: 1, Y: 1.01, Z: z}, res.Position, 1e-4)
	}
}

func TestSlideIntoCorner(t *testing.T) {
	scene := engine.NewScene("Test")
	place(scene, "west", wallX(), rl.Vector3{})
	place(scene, "south", wallZ(), rl.Vector3{})
	w := NewWorld(scene)

	res := w.CollideAndSlide(rl.Vector3{X: 3, Z: 3}, rl.Vector3{X: -5, Z: -5}, 1)

	assert.LessOrEqual(t, res.Iterations, w.Settings.MaxIterations)
	assert.NotEqual(t, StopCapped, res.Reason)
	assert.GreaterOrEqual(t, res.Position.X, float32(1))
	assert.GreaterOrEqual(t, res.Position.Z, float32(1))
	assertVec(t, rl.Vector3{X: 1.01, Z: 1.01}, res.Position, 1e-3)
}

func TestSlideIterationCap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	scene := engine.NewScene("Test")
	place(scene, "west", wallX(), rl.Vector3{})
	place(scene, "south", wallZ(), rl.Vector3{})

	settings := DefaultSettings()
	settings.MaxIterations = 1
	w := NewWorld(scene, WithSettings(settings), WithLogger(zap.New(core)))

	res := w.CollideAndSlide(rl.Vector3{X: 3, Z: 3}, rl.Vector3{X: -5, Z: -5}, 1)

	assert.Equal(t, StopCapped, res.Reason)
	assert.Equal(t, 1, res.Iterations)
	assert.GreaterOrEqual(t, res.Position.X, float32(1))
	assert.GreaterOrEqual(t, res.Position.Z, float32(1))
	assert.Equal(t, 1, logs.FilterMessage("Physics: slide hit iteration cap").Len())
	assert.NotZero(t, logs.FilterMessage("Physics: slide step").Len())
}

func TestNewWorldClampsIterations(t *testing.T) {
	w := NewWorld(engine.NewScene("Test"), WithSettings(Settings{}))
	assert.Equal(t, 1, w.Settings.MaxIterations)
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "moving", Moving.String())
	assert.Equal(t, "blocked", Blocked.String())
	assert.Equal(t, "sliding", Sliding.String())
	assert.Equal(t, "resolved", Resolved.String())
	assert.Equal(t, "capped", StopCapped.String())
}
