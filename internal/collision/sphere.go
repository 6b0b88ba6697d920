package collision

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// SphereTriangle sweeps the query sphere against triangle abc and records the
// hit if it happens earlier than anything found so far. Triangles facing away
// from the motion are culled.
func (q *SweepQuery) SphereTriangle(a, b, c rl.Vector3) {
	if q.IsRay() {
		return
	}

	pa := rl.Vector3Scale(a, q.invRadius)
	pb := rl.Vector3Scale(b, q.invRadius)
	pc := rl.Vector3Scale(c, q.invRadius)

	n, ok := Normal(pa, pb, pc)
	if !ok {
		return
	}

	nDotVel := rl.Vector3DotProduct(n, q.scaledVel)
	if nDotVel > 0 {
		return
	}
	dist := rl.Vector3DotProduct(n, rl.Vector3Subtract(q.scaledStart, pa))

	var t0, t1 float32
	parallel := nDotVel == 0
	if parallel {
		if dist >= 1 || dist <= -1 {
			return
		}
		t0, t1 = 0, 1
	} else {
		t0 = (1 - dist) / nDotVel
		t1 = (-1 - dist) / nDotVel
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > 1 || t1 < 0 {
			return
		}
		t0 = clamp(t0, 0, 1)
		t1 = clamp(t1, 0, 1)
	}

	if q.T <= t0 {
		return
	}

	if t0 == 0 {
		// Sphere overlaps the plane at the start of the step. A center behind
		// the plane can only be leaving through the back face.
		if dist < 0 {
			return
		}
		closest := ClosestPointOnTriangle(q.scaledStart, pa, pb, pc)
		away := rl.Vector3Subtract(q.scaledStart, closest)
		if rl.Vector3DotProduct(away, away) < 1 {
			q.record(0, closest, contactNormal(away, n))
			return
		}
	}

	if !parallel {
		planePoint := rl.Vector3Add(rl.Vector3Subtract(q.scaledStart, n), rl.Vector3Scale(q.scaledVel, t0))
		if PointInTriangle(planePoint, pa, pb, pc) {
			q.record(t0, planePoint, n)
			return
		}
	}

	// Vertices and edges lie in the plane, so they cannot be touched before
	// t0. Earlier roots are float32 cancellation on long edges.
	best := q.T
	found := false
	var point rl.Vector3

	for _, v := range [3]rl.Vector3{pa, pb, pc} {
		if t, ok := q.sweepVertex(v, best); ok && t >= t0 {
			best, point, found = t, v, true
		}
	}
	for _, e := range [3][2]rl.Vector3{{pa, pb}, {pb, pc}, {pc, pa}} {
		if t, p, ok := q.sweepEdge(e[0], e[1], best); ok && t >= t0 {
			best, point, found = t, p, true
		}
	}

	if found {
		center := rl.Vector3Add(q.scaledStart, rl.Vector3Scale(q.scaledVel, best))
		q.record(best, point, contactNormal(rl.Vector3Subtract(center, point), n))
	}
}

// sweepVertex returns when the unit sphere first touches point p.
func (q *SweepQuery) sweepVertex(p rl.Vector3, maxT float32) (float32, bool) {
	toStart := rl.Vector3Subtract(q.scaledStart, p)
	b := 2 * rl.Vector3DotProduct(q.scaledVel, toStart)
	c := rl.Vector3DotProduct(toStart, toStart) - 1
	return LowestRoot(q.scaledVelSq, b, c, maxT)
}

// sweepEdge returns when the unit sphere first touches segment from-to and
// where on the segment the touch happens.
func (q *SweepQuery) sweepEdge(from, to rl.Vector3, maxT float32) (float32, rl.Vector3, bool) {
	edge := rl.Vector3Subtract(to, from)
	toVertex := rl.Vector3Subtract(from, q.scaledStart)

	edgeSq := rl.Vector3DotProduct(edge, edge)
	if edgeSq == 0 {
		return 0, rl.Vector3{}, false
	}
	edv := rl.Vector3DotProduct(edge, q.scaledVel)
	edsv := rl.Vector3DotProduct(edge, toVertex)

	a := edgeSq*-q.scaledVelSq + edv*edv
	b := edgeSq*(2*rl.Vector3DotProduct(q.scaledVel, toVertex)) - 2*edv*edsv
	c := edgeSq*(1-rl.Vector3DotProduct(toVertex, toVertex)) + edsv*edsv

	t, ok := LowestRoot(a, b, c, maxT)
	if !ok {
		return 0, rl.Vector3{}, false
	}
	f := (edv*t - edsv) / edgeSq
	if f < 0 || f > 1 {
		return 0, rl.Vector3{}, false
	}
	return t, rl.Vector3Add(from, rl.Vector3Scale(edge, f)), true
}

func contactNormal(away, fallback rl.Vector3) rl.Vector3 {
	l := rl.Vector3Length(away)
	if l == 0 {
		return fallback
	}
	return rl.Vector3Scale(away, 1/l)
}
