package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLowestRootNegativeDiscriminant(t *testing.T) {
	// t^2 + 1 = 0
	_, ok := LowestRoot(1, 0, 1, 10)
	assert.False(t, ok)
}

func TestLowestRootPrefersSmaller(t *testing.T) {
	// (t-1)(t-3) = t^2 - 4t + 3
	r, ok := LowestRoot(1, -4, 3, 5)
	assert.True(t, ok)
	assert.InDelta(t, 1.0, r, 1e-6)

	r, ok = LowestRoot(1, -4, 3, 2)
	assert.True(t, ok)
	assert.InDelta(t, 1.0, r, 1e-6)
}

func TestLowestRootFallsBackToLarger(t *testing.T) {
	// (t+1)(t-2) = t^2 - t - 2
	r, ok := LowestRoot(1, -1, -2, 5)
	assert.True(t, ok)
	assert.InDelta(t, 2.0, r, 1e-6)
}

func TestLowestRootOutOfRange(t *testing.T) {
	_, ok := LowestRoot(1, -4, 3, 0.5)
	assert.False(t, ok)

	// (t+1)(t+2): both negative
	_, ok = LowestRoot(1, 3, 2, 10)
	assert.False(t, ok)
}

func TestLowestRootNegativeLeadingCoefficient(t *testing.T) {
	// -(t-1)(t-3)
	r, ok := LowestRoot(-1, 4, -3, 5)
	assert.True(t, ok)
	assert.InDelta(t, 1.0, r, 1e-6)
}

func TestLowestRootLinear(t *testing.T) {
	_, ok := LowestRoot(0, 1, -1, 5)
	assert.False(t, ok)
}
