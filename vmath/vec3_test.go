package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestV3NormalizeUnitLength(t *testing.T) {
	cases := []Vec3{
		V3(3, 4, 0),
		V3(-1, 1.5, -1),
		V3(0.001, -0.2, -1),
		V3(1e6, 1.5, -1),
	}
	for _, v := range cases {
		n := V3Normalize(v)
		assert.InDelta(t, 1.0, n.Len(), 1e-12, "vector %v", v)
	}
}

func TestV3NormalizeZero(t *testing.T) {
	assert.Equal(t, Vec3{}, V3Normalize(Vec3{}))
}

func TestV3Dist(t *testing.T) {
	assert.InDelta(t, 5.0, V3Dist(V3(0, 0, 0), V3(3, 4, 0)), 1e-12)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(2, 0, 1))
	assert.Equal(t, 0.0, Clamp(-2, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
	assert.Equal(t, V3(1, 0, 0.5), V3Clamp(V3(2, -1, 0.5), V3(0, 0, 0), V3(1, 1, 1)))
}

func TestV3IsFinite(t *testing.T) {
	assert.True(t, V3IsFinite(V3(1, 2, 3)))
	assert.False(t, V3IsFinite(V3(math.NaN(), 0, 0)))
	assert.False(t, V3IsFinite(V3(0, math.Inf(1), 0)))
}
