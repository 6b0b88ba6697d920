// Package character drives a sphere-shaped agent through a physics world:
// collide-and-slide movement, gravity, ground probing and aim rays.
package character

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"

	"sweep3d/internal/engine"
	"sweep3d/internal/physics"
)

var up = rl.Vector3{Y: 1}

// Settings configure a Controller.
type Settings struct {
	Radius        float32
	UseGravity    bool
	Gravity       float32 // strength, positive pulls down
	SlopeLimit    float32 // max walkable slope in degrees
	ProbeDistance float32 // how far below the sphere ground is searched
	AimRange      float32
}

func DefaultSettings() Settings {
	return Settings{
		Radius:        1.0,
		UseGravity:    true,
		Gravity:       9.8,
		SlopeLimit:    45.0,
		ProbeDistance: 0.1,
		AimRange:      100,
	}
}

// Controller moves a sphere through a World. If Body is set, that object is
// ignored by every query and follows the controller's position.
type Controller struct {
	Settings
	Position rl.Vector3
	Body     engine.Handle

	world    *physics.World
	logger   *zap.Logger
	velocity rl.Vector3
	grounded bool
	ground   physics.CollisionHit
}

func New(world *physics.World, position rl.Vector3, s Settings) *Controller {
	return &Controller{
		Settings: s,
		Position: position,
		world:    world,
		logger:   world.Logger(),
	}
}

// Move slides the character by motion and refreshes the grounded state.
func (c *Controller) Move(motion rl.Vector3) physics.SlideResult {
	res := c.world.CollideAndSlideExcept(c.Body, c.Position, motion, c.Radius)
	c.Position = res.Position
	if res.Reason == physics.StopCapped {
		c.logger.Debug("Character: movement capped", zap.Int("contacts", res.Contacts))
	}

	if body := c.Body.Get(c.world.Scene); body != nil {
		body.Position = c.Position
	}

	c.Probe()
	if c.grounded && c.velocity.Y < 0 {
		c.velocity.Y = 0
	}
	return res
}

// SimpleMove moves with a horizontal speed and applies gravity.
func (c *Controller) SimpleMove(speed rl.Vector3, deltaTime float32) physics.SlideResult {
	if c.UseGravity {
		if !c.grounded || c.velocity.Y > 0 {
			c.velocity.Y -= c.Gravity * deltaTime
		} else {
			// Keep a small downward push so slopes are followed.
			c.velocity.Y = -0.1
		}
	}

	motion := rl.Vector3{
		X: speed.X * deltaTime,
		Y: c.velocity.Y * deltaTime,
		Z: speed.Z * deltaTime,
	}
	return c.Move(motion)
}

// Probe sweeps the sphere straight down by ProbeDistance. The character is
// grounded when the hit surface is not steeper than SlopeLimit.
func (c *Controller) Probe() (physics.CollisionHit, bool) {
	hit := c.world.CollideExcept(c.Body, c.Position, rl.Vector3{Y: -c.ProbeDistance}, c.Radius)
	c.ground = hit
	c.grounded = hit.Hit && c.walkable(hit.Normal)
	return hit, c.grounded
}

// Aim casts a ray from the character's center along dir, up to AimRange.
func (c *Controller) Aim(dir rl.Vector3) physics.CollisionHit {
	if rl.Vector3Length(dir) == 0 {
		return physics.CollisionHit{}
	}
	ray := rl.Vector3Scale(rl.Vector3Normalize(dir), c.AimRange)
	return c.world.CollideExcept(c.Body, c.Position, ray, 0)
}

func (c *Controller) walkable(normal rl.Vector3) bool {
	limit := clamp(float64(c.SlopeLimit), 0, 90) * math.Pi / 180
	return float64(rl.Vector3DotProduct(normal, up)) >= math.Cos(limit)-1e-6
}

// IsGrounded returns whether the last probe found walkable ground.
func (c *Controller) IsGrounded() bool {
	return c.grounded
}

// Ground returns the hit of the last probe.
func (c *Controller) Ground() physics.CollisionHit {
	return c.ground
}

func (c *Controller) Velocity() rl.Vector3 {
	return c.velocity
}

// SetVelocityY sets the vertical velocity, e.g. for a jump.
func (c *Controller) SetVelocityY(vy float32) {
	c.velocity.Y = vy
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
