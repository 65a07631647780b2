package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Arithmetic(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 6, 3)

	assert.Equal(t, V3(5, 8, 6), a.Add(b))
	assert.Equal(t, V3(3, 4, 0), b.Sub(a))
	assert.Equal(t, V3(2, 4, 6), a.Scale(2))
	assert.Equal(t, 25.0, b.Sub(a).LengthSq())
	assert.Equal(t, 5.0, a.Dist(b))
	assert.Equal(t, V3(2.5, 4, 3), a.Midpoint(b))
	assert.Equal(t, a, a.Position())
	assert.True(t, Vec3{}.IsZero())
}

func TestVec3IsFinite(t *testing.T) {
	assert.True(t, V3(1, 2, 3).IsFinite())
	assert.False(t, V3(math.NaN(), 0, 0).IsFinite())
	assert.False(t, V3(0, math.Inf(1), 0).IsFinite())
}

func TestBoxExtend(t *testing.T) {
	b := EmptyBox()
	assert.True(t, b.IsEmpty())

	b.Extend(V3(1, 2, 3))
	b.Extend(V3(4, 5, 6))
	b.Extend(V3(-1, 0, 2))

	assert.False(t, b.IsEmpty())
	assert.Equal(t, V3(-1, 0, 2), b.Min)
	assert.Equal(t, V3(4, 5, 6), b.Max)
	assert.Equal(t, V3(5, 5, 4), b.Size())
	assert.Equal(t, V3(1.5, 2.5, 4), b.Center())
}
