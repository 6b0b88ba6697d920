// Package collision implements swept sphere and ray tests against single
// triangles. A SweepQuery accumulates the earliest time of impact over any
// number of triangle tests.
package collision

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// SweepQuery is the working record of one swept test. T starts at 1 and only
// ever decreases; Point and Normal are meaningful only when Collision is set.
type SweepQuery struct {
	Start    rl.Vector3
	Velocity rl.Vector3
	Radius   float32

	// Unit sphere space copies, all divided by Radius.
	invRadius   float32
	scaledStart rl.Vector3
	scaledVel   rl.Vector3
	scaledVelSq float32

	T         float32
	Collision bool
	Point     rl.Vector3 // contact on the surface, unscaled
	Normal    rl.Vector3 // unit contact normal pointing towards the mover
}

// NewSweepQuery prepares a query for a sphere of the given radius moving by
// velocity from start. A radius of zero makes it a ray query.
func NewSweepQuery(start, velocity rl.Vector3, radius float32) SweepQuery {
	q := SweepQuery{
		Start:    start,
		Velocity: velocity,
		Radius:   radius,
		T:        1,
	}
	if radius > 0 {
		q.invRadius = 1 / radius
		q.scaledStart = rl.Vector3Scale(start, q.invRadius)
		q.scaledVel = rl.Vector3Scale(velocity, q.invRadius)
		q.scaledVelSq = rl.Vector3DotProduct(q.scaledVel, q.scaledVel)
	}
	return q
}

// IsRay reports whether the query traces a ray instead of a sphere.
func (q *SweepQuery) IsRay() bool {
	return q.Radius <= 0
}

// Triangle runs the sphere or ray test against one triangle depending on the
// query radius.
func (q *SweepQuery) Triangle(a, b, c rl.Vector3) {
	if q.IsRay() {
		q.RayTriangle(a, b, c)
		return
	}
	q.SphereTriangle(a, b, c)
}

// End returns the position reached at the current time of impact. For a
// sphere query this is the sphere center when it first touches.
func (q *SweepQuery) End() rl.Vector3 {
	return rl.Vector3Add(q.Start, rl.Vector3Scale(q.Velocity, q.T))
}

// Distance returns how far the query travelled before the time of impact.
func (q *SweepQuery) Distance() float32 {
	return rl.Vector3Length(rl.Vector3Scale(q.Velocity, q.T))
}

// record stores a hit found in unit sphere space.
func (q *SweepQuery) record(t float32, scaledPoint, normal rl.Vector3) {
	q.T = t
	q.Collision = true
	q.Point = rl.Vector3Scale(scaledPoint, q.Radius)
	q.Normal = normal
}
