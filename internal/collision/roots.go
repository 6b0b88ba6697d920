package collision

import (
	"math"

	"golang.org/x/exp/constraints"
)

// LowestRoot solves a*t^2 + b*t + c = 0 and returns the smallest root in the
// open interval (0, maxRoot). When only the larger root is in range it is
// returned instead.
func LowestRoot(a, b, c, maxRoot float32) (float32, bool) {
	if a == 0 {
		return 0, false
	}
	det := b*b - 4*a*c
	if det < 0 {
		return 0, false
	}

	sqrtD := float32(math.Sqrt(float64(det)))
	r1 := (-b - sqrtD) / (2 * a)
	r2 := (-b + sqrtD) / (2 * a)
	if r1 > r2 {
		r1, r2 = r2, r1
	}

	if r1 > 0 && r1 < maxRoot {
		return r1, true
	}
	if r2 > 0 && r2 < maxRoot {
		return r2, true
	}
	return 0, false
}

func clamp[T constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
