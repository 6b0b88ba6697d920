package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"sweep3d/internal/collision"
	"sweep3d/internal/engine"
)

// CollisionHit describes the first contact of a swept sphere or ray. All
// vectors are in world space and only meaningful when Hit is set.
type CollisionHit struct {
	Object engine.Handle
	Hit    bool
	Point  rl.Vector3 // contact on the surface
	Center rl.Vector3 // sphere center at the time of impact
	Normal rl.Vector3 // unit contact normal facing the mover
	T      float32    // fraction of the displacement travelled, in [0, 1]
}

// CollideObject sweeps a sphere of the given radius (a ray for radius 0) from
// start by displacement against one object.
func (w *World) CollideObject(h engine.Handle, start, displacement rl.Vector3, radius float32) CollisionHit {
	o, ok := w.Scene.Get(h)
	if !ok {
		return CollisionHit{}
	}
	return collideObject(h, o, start, displacement, radius)
}

// Collide tests every object in insertion order and returns the hit whose
// contact point is nearest to start. Exact ties go to the earlier object.
func (w *World) Collide(start, displacement rl.Vector3, radius float32) CollisionHit {
	return w.collide(start, displacement, radius, engine.Handle{})
}

// CollideExcept is Collide ignoring one object, typically the mover's own
// body.
func (w *World) CollideExcept(skip engine.Handle, start, displacement rl.Vector3, radius float32) CollisionHit {
	return w.collide(start, displacement, radius, skip)
}

func (w *World) collide(start, displacement rl.Vector3, radius float32, skip engine.Handle) CollisionHit {
	var best CollisionHit
	var bestDistSq float32

	w.Scene.Each(func(h engine.Handle, o *engine.Object) {
		if h == skip {
			return
		}
		hit := collideObject(h, o, start, displacement, radius)
		if !hit.Hit {
			return
		}
		d := rl.Vector3Subtract(hit.Point, start)
		distSq := rl.Vector3DotProduct(d, d)
		if !best.Hit || distSq < bestDistSq {
			best = hit
			bestDistSq = distSq
		}
	})
	return best
}

func collideObject(h engine.Handle, o *engine.Object, start, displacement rl.Vector3, radius float32) CollisionHit {
	if o == nil || o.Mesh == nil || !mayHit(o, start, displacement, radius) {
		return CollisionHit{}
	}

	localStart := o.ToLocal(start)
	localEnd := o.ToLocal(rl.Vector3Add(start, displacement))
	q := collision.NewSweepQuery(localStart, rl.Vector3Subtract(localEnd, localStart), radius)

	m := o.Mesh
	for _, sub := range m.Submeshes() {
		for i := sub.First; i < sub.First+sub.Count; i++ {
			a, b, c := m.Triangle(i)
			q.Triangle(a, b, c)
		}
	}
	if !q.Collision {
		return CollisionHit{}
	}

	return CollisionHit{
		Object: h,
		Hit:    true,
		Point:  o.ToWorld(q.Point),
		Center: o.ToWorld(q.End()),
		Normal: o.DirToWorld(q.Normal),
		T:      q.T,
	}
}

// mayHit rejects objects whose bounding sphere, grown by the mover radius,
// is farther from the movement segment than it can reach.
func mayHit(o *engine.Object, start, displacement rl.Vector3, radius float32) bool {
	reach := o.Mesh.BoundingRadius() + radius
	reachSq := reach * reach

	toCenter := rl.Vector3Subtract(o.Position, start)
	length := rl.Vector3Length(displacement)
	if length == 0 {
		return rl.Vector3DotProduct(toCenter, toCenter) <= reachSq
	}

	dir := rl.Vector3Scale(displacement, 1/length)
	along := rl.Vector3DotProduct(toCenter, dir)

	var distSq float32
	switch {
	case along < 0:
		distSq = rl.Vector3DotProduct(toCenter, toCenter)
	case along > length:
		past := rl.Vector3Subtract(toCenter, displacement)
		distSq = rl.Vector3DotProduct(past, past)
	default:
		perp := rl.Vector3Subtract(toCenter, rl.Vector3Scale(dir, along))
		distSq = rl.Vector3DotProduct(perp, perp)
	}
	return distSq <= reachSq
}
