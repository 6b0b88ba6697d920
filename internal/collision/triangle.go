package collision

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// PointInTriangle reports whether p, assumed to lie on the triangle's plane,
// is inside triangle abc. Degenerate triangles contain no points.
func PointInTriangle(p, a, b, c rl.Vector3) bool {
	u := rl.Vector3Subtract(b, a)
	v := rl.Vector3Subtract(c, a)
	w := rl.Vector3Subtract(p, a)

	uu := rl.Vector3DotProduct(u, u)
	uv := rl.Vector3DotProduct(u, v)
	vv := rl.Vector3DotProduct(v, v)
	wu := rl.Vector3DotProduct(w, u)
	wv := rl.Vector3DotProduct(w, v)

	d := uv*uv - uu*vv
	if d == 0 {
		return false
	}

	s := (uv*wv - vv*wu) / d
	if s < 0 || s > 1 {
		return false
	}
	t := (uv*wu - uu*wv) / d
	if t < 0 || s+t > 1 {
		return false
	}
	return true
}

// ClosestPointOnTriangle returns the point of triangle abc nearest to p,
// using the Voronoi region walk from Ericson's Real-Time Collision Detection.
func ClosestPointOnTriangle(p, a, b, c rl.Vector3) rl.Vector3 {
	ab := rl.Vector3Subtract(b, a)
	ac := rl.Vector3Subtract(c, a)
	ap := rl.Vector3Subtract(p, a)

	d1 := rl.Vector3DotProduct(ab, ap)
	d2 := rl.Vector3DotProduct(ac, ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := rl.Vector3Subtract(p, b)
	d3 := rl.Vector3DotProduct(ab, bp)
	d4 := rl.Vector3DotProduct(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		return rl.Vector3Add(a, rl.Vector3Scale(ab, d1/(d1-d3)))
	}

	cp := rl.Vector3Subtract(p, c)
	d5 := rl.Vector3DotProduct(ab, cp)
	d6 := rl.Vector3DotProduct(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		return rl.Vector3Add(a, rl.Vector3Scale(ac, d2/(d2-d6)))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return rl.Vector3Add(b, rl.Vector3Scale(rl.Vector3Subtract(c, b), w))
	}

	sum := va + vb + vc
	if sum == 0 {
		// Collinear or coincident vertices.
		return a
	}
	denom := 1 / sum
	return rl.Vector3Add(a, rl.Vector3Add(rl.Vector3Scale(ab, vb*denom), rl.Vector3Scale(ac, vc*denom)))
}

// Normal returns the unit normal of triangle abc following the (b-a)x(c-a)
// winding, or false for a degenerate triangle.
func Normal(a, b, c rl.Vector3) (rl.Vector3, bool) {
	n := rl.Vector3CrossProduct(rl.Vector3Subtract(b, a), rl.Vector3Subtract(c, a))
	l := rl.Vector3Length(n)
	if l == 0 {
		return rl.Vector3{}, false
	}
	return rl.Vector3Scale(n, 1/l), true
}
