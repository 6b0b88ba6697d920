package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"sweep3d/internal/engine"
)

// State is a step of the collide-and-slide loop.
type State int

const (
	Moving State = iota
	Blocked
	Sliding
	Resolved
)

func (s State) String() string {
	switch s {
	case Moving:
		return "moving"
	case Blocked:
		return "blocked"
	case Sliding:
		return "sliding"
	case Resolved:
		return "resolved"
	}
	return "unknown"
}

// StopReason tells why a slide ended.
type StopReason int

const (
	// StopFree means the last displacement was unobstructed.
	StopFree StopReason = iota
	// StopSettled means the redirected displacement became negligible.
	StopSettled
	// StopCapped means the iteration cap was reached. The position may still
	// be touching geometry.
	StopCapped
)

func (r StopReason) String() string {
	switch r {
	case StopFree:
		return "free"
	case StopSettled:
		return "settled"
	case StopCapped:
		return "capped"
	}
	return "unknown"
}

type SlideResult struct {
	Position   rl.Vector3
	Iterations int // world queries made
	Contacts   int // queries that hit something
	Reason     StopReason
	LastHit    CollisionHit
	States     []State // every state the loop passed through, in order
}

// Blocked reports whether anything got in the way.
func (r SlideResult) Blocked() bool {
	return r.Contacts > 0
}

// CollideAndSlide moves a sphere from start by displacement, sliding along
// whatever it touches. It always terminates within Settings.MaxIterations
// world queries.
func (w *World) CollideAndSlide(start, displacement rl.Vector3, radius float32) SlideResult {
	return w.slide(start, displacement, radius, engine.Handle{})
}

// CollideAndSlideExcept is CollideAndSlide ignoring one object.
func (w *World) CollideAndSlideExcept(skip engine.Handle, start, displacement rl.Vector3, radius float32) SlideResult {
	return w.slide(start, displacement, radius, skip)
}

func (w *World) slide(start, displacement rl.Vector3, radius float32, skip engine.Handle) SlideResult {
	res := SlideResult{Position: start, Reason: StopFree}
	if rl.Vector3DotProduct(displacement, displacement) == 0 {
		return res
	}

	pos := start
	for i := 0; i < w.Settings.MaxIterations; i++ {
		res.Iterations++
		w.trace(&res, Moving, i, pos, displacement)

		hit := w.collide(pos, displacement, radius, skip)
		if !hit.Hit {
			res.Position = rl.Vector3Add(pos, displacement)
			res.Reason = StopFree
			w.trace(&res, Resolved, i, res.Position, displacement)
			return res
		}
		res.Contacts++
		res.LastHit = hit
		w.trace(&res, Blocked, i, hit.Point, displacement)

		t := hit.T
		if t < w.Settings.MinFraction {
			t = 0
		}
		touch := rl.Vector3Add(pos, rl.Vector3Scale(displacement, t))
		dest := rl.Vector3Add(pos, displacement)

		// Slide plane through the contact, facing the sphere center.
		n := rl.Vector3Subtract(touch, hit.Point)
		if l := rl.Vector3Length(n); l > 0 {
			n = rl.Vector3Scale(n, 1/l)
		} else {
			n = hit.Normal
		}

		target := rl.Vector3Subtract(dest, rl.Vector3Scale(n, rl.Vector3DotProduct(rl.Vector3Subtract(dest, hit.Point), n)))
		next := rl.Vector3Subtract(target, hit.Point)
		pos = rl.Vector3Add(touch, rl.Vector3Scale(n, w.Settings.NudgeDistance))

		if rl.Vector3Length(next) < w.Settings.MinDisplacement {
			res.Position = pos
			res.Reason = StopSettled
			w.trace(&res, Resolved, i, pos, next)
			return res
		}
		displacement = next
		w.trace(&res, Sliding, i, pos, displacement)
	}

	res.Position = pos
	res.Reason = StopCapped
	w.capLog.Do(func() {
		w.logger.Debug("Physics: slide hit iteration cap",
			zap.Int("iterations", res.Iterations),
			zap.Float32("x", pos.X), zap.Float32("y", pos.Y), zap.Float32("z", pos.Z),
			zap.Stringer("object", res.LastHit.Object))
	})
	return res
}

func (w *World) trace(res *SlideResult, s State, iteration int, pos, displacement rl.Vector3) {
	res.States = append(res.States, s)
	if ce := w.logger.Check(zap.DebugLevel, "Physics: slide step"); ce != nil {
		ce.Write(
			zap.Stringer("state", s),
			zap.Int("iteration", iteration),
			zap.Float32s("position", []float32{pos.X, pos.Y, pos.Z}),
			zap.Float32s("displacement", []float32{displacement.X, displacement.Y, displacement.Z}),
		)
	}
}
