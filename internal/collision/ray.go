package collision

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// RayTriangle intersects the query segment with triangle abc using the
// Moller-Trumbore test. Back faces and hits outside [0, T) are ignored.
func (q *SweepQuery) RayTriangle(a, b, c rl.Vector3) {
	e1 := rl.Vector3Subtract(b, a)
	e2 := rl.Vector3Subtract(c, a)

	p := rl.Vector3CrossProduct(q.Velocity, e2)
	det := rl.Vector3DotProduct(e1, p)
	if det <= 0 {
		return
	}
	inv := 1 / det

	s := rl.Vector3Subtract(q.Start, a)
	u := rl.Vector3DotProduct(s, p) * inv
	if u < 0 || u > 1 {
		return
	}

	qv := rl.Vector3CrossProduct(s, e1)
	v := rl.Vector3DotProduct(q.Velocity, qv) * inv
	if v < 0 || u+v > 1 {
		return
	}

	t := rl.Vector3DotProduct(e2, qv) * inv
	if t < 0 || t >= q.T {
		return
	}

	n, ok := Normal(a, b, c)
	if !ok {
		return
	}
	q.T = t
	q.Collision = true
	q.Point = rl.Vector3Add(q.Start, rl.Vector3Scale(q.Velocity, t))
	q.Normal = n
}
