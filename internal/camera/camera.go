package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// FPSCamera is a mouse-look camera that rides on top of a character. It does
// not move itself; Wish turns input into a horizontal direction for the
// character controller to follow.
type FPSCamera struct {
	Position  rl.Vector3
	Yaw       float32 // degrees, 0 looks down +X
	Pitch     float32 // degrees
	LookSpeed float32
	EyeHeight float32 // height of the eye above the agent center
	Fovy      float32
}

func New(pos rl.Vector3) *FPSCamera {
	return &FPSCamera{
		Position:  pos,
		Yaw:       -90.0,
		Pitch:     -15.0,
		LookSpeed: 0.1,
		EyeHeight: 0.6,
		Fovy:      60,
	}
}

// Look applies a mouse delta.
func (c *FPSCamera) Look(delta rl.Vector2) {
	c.Yaw += delta.X * c.LookSpeed
	c.Pitch -= delta.Y * c.LookSpeed

	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}
}

// Follow places the eye above an agent center.
func (c *FPSCamera) Follow(center rl.Vector3) {
	c.Position = rl.Vector3{X: center.X, Y: center.Y + c.EyeHeight, Z: center.Z}
}

// Input is the set of movement keys held this frame.
type Input struct {
	Forward, Back, Left, Right bool
}

// ReadInput polls WASD.
func ReadInput() Input {
	return Input{
		Forward: rl.IsKeyDown(rl.KeyW),
		Back:    rl.IsKeyDown(rl.KeyS),
		Left:    rl.IsKeyDown(rl.KeyA),
		Right:   rl.IsKeyDown(rl.KeyD),
	}
}

// Wish returns the unit horizontal direction the input asks for, or zero.
func (c *FPSCamera) Wish(in Input) rl.Vector3 {
	forward, right := c.Directions()

	var moveDir rl.Vector3
	if in.Forward {
		moveDir = rl.Vector3Add(moveDir, forward)
	}
	if in.Back {
		moveDir = rl.Vector3Subtract(moveDir, forward)
	}
	if in.Left {
		moveDir = rl.Vector3Subtract(moveDir, right)
	}
	if in.Right {
		moveDir = rl.Vector3Add(moveDir, right)
	}

	// Normalize diagonal movement so you don't go faster diagonally
	moveLen := float32(math.Sqrt(float64(moveDir.X*moveDir.X + moveDir.Z*moveDir.Z)))
	if moveLen > 0 {
		moveDir.X /= moveLen
		moveDir.Z /= moveLen
	}
	return moveDir
}

// Directions returns the horizontal forward and right vectors.
func (c *FPSCamera) Directions() (forward, right rl.Vector3) {
	yawRad := float64(c.Yaw) * math.Pi / 180
	forward = rl.Vector3{
		X: float32(math.Cos(yawRad)),
		Y: 0,
		Z: float32(math.Sin(yawRad)),
	}
	right = rl.Vector3{
		X: float32(-math.Sin(yawRad)),
		Y: 0,
		Z: float32(math.Cos(yawRad)),
	}
	return
}

// LookDir is the unit view direction including pitch.
func (c *FPSCamera) LookDir() rl.Vector3 {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180
	return rl.Vector3{
		X: float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		Y: float32(math.Sin(pitchRad)),
		Z: float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}
}

func (c *FPSCamera) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position,
		Target:     rl.Vector3Add(c.Position, c.LookDir()),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}
