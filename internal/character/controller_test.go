package character

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweep3d/internal/engine"
	"sweep3d/internal/mesh"
	"sweep3d/internal/physics"
)

func floorWorld() (*engine.Scene, *physics.World) {
	scene := engine.NewScene("Test")
	scene.Add(engine.NewObject("floor", mesh.Plane(100, 100)))
	return scene, physics.NewWorld(scene)
}

func TestSimpleMoveWalksOnFloor(t *testing.T) {
	_, world := floorWorld()
	c := New(world, rl.Vector3{Y: 1.01}, DefaultSettings())

	res := c.SimpleMove(rl.Vector3{X: 2}, 0.5)

	assert.True(t, res.Blocked())
	assert.True(t, c.IsGrounded())
	assert.InDelta(t, 1.0, c.Position.X, 1e-3)
	assert.InDelta(t, 1.01, c.Position.Y, 1e-3)
	assert.Equal(t, float32(0), c.Velocity().Y)
}

func TestSimpleMoveFallsAndLands(t *testing.T) {
	_, world := floorWorld()
	c := New(world, rl.Vector3{Y: 5}, DefaultSettings())

	for i := 0; i < 120 && !c.IsGrounded(); i++ {
		c.SimpleMove(rl.Vector3{}, 1.0/60.0)
	}

	require.True(t, c.IsGrounded())
	assert.GreaterOrEqual(t, c.Position.Y, float32(1))
	assert.Less(t, c.Position.Y, float32(1.1))
	assert.True(t, c.Ground().Hit)
	assert.InDelta(t, 1.0, c.Ground().Normal.Y, 1e-5)
}

func TestMoveWithoutGroundIsAirborne(t *testing.T) {
	scene := engine.NewScene("Test")
	world := physics.NewWorld(scene)
	c := New(world, rl.Vector3{Y: 10}, DefaultSettings())

	res := c.Move(rl.Vector3{X: 1})

	assert.False(t, res.Blocked())
	assert.False(t, c.IsGrounded())
	assert.Equal(t, rl.Vector3{X: 1, Y: 10}, c.Position)
}

func TestWalkable(t *testing.T) {
	_, world := floorWorld()
	c := New(world, rl.Vector3{}, DefaultSettings())

	assert.True(t, c.walkable(rl.Vector3{Y: 1}))
	assert.True(t, c.walkable(rl.Vector3Normalize(rl.Vector3{Y: 1, Z: -0.5}))) // ~27 degrees
	assert.True(t, c.walkable(rl.Vector3Normalize(rl.Vector3{Y: 1, Z: -1})))   // 45 degrees
	assert.False(t, c.walkable(rl.Vector3Normalize(rl.Vector3{Y: 1, Z: -2})))  // ~63 degrees
	assert.False(t, c.walkable(rl.Vector3{X: 1}))

	c.SlopeLimit = 70
	assert.True(t, c.walkable(rl.Vector3Normalize(rl.Vector3{Y: 1, Z: -2})))
}

func TestBodyIsSkippedAndFollows(t *testing.T) {
	scene := engine.NewScene("Test")
	farWall := engine.NewObject("far", mesh.Quad(
		rl.Vector3{X: -10, Y: -10, Z: -10},
		rl.Vector3{X: 10, Y: -10, Z: -10},
		rl.Vector3{X: 10, Y: 10, Z: -10},
		rl.Vector3{X: -10, Y: 10, Z: -10},
	))
	far := scene.Add(farWall)
	shield := scene.Add(engine.NewObject("shield", mesh.Quad(
		rl.Vector3{X: -1, Y: -1, Z: -2},
		rl.Vector3{X: 1, Y: -1, Z: -2},
		rl.Vector3{X: 1, Y: 1, Z: -2},
		rl.Vector3{X: -1, Y: 1, Z: -2},
	)))

	world := physics.NewWorld(scene)
	c := New(world, rl.Vector3{}, DefaultSettings())

	hit := c.Aim(rl.Vector3{Z: -1})
	require.True(t, hit.Hit)
	assert.Equal(t, shield, hit.Object)

	c.Body = shield
	hit = c.Aim(rl.Vector3{Z: -1})
	require.True(t, hit.Hit)
	assert.Equal(t, far, hit.Object)
	assert.InDelta(t, -10.0, hit.Point.Z, 1e-4)

	c.UseGravity = false
	c.Move(rl.Vector3{X: 3})
	body, ok := scene.Get(shield)
	require.True(t, ok)
	assert.Equal(t, c.Position, body.Position)
}

func TestAimZeroDirection(t *testing.T) {
	_, world := floorWorld()
	c := New(world, rl.Vector3{Y: 2}, DefaultSettings())

	assert.False(t, c.Aim(rl.Vector3{}).Hit)

	hit := c.Aim(rl.Vector3{Y: -1})
	require.True(t, hit.Hit)
	assert.InDelta(t, 0.0, hit.Point.Y, 1e-4)
}
