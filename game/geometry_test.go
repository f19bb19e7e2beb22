package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func assertVecInDelta(t *testing.T, want, got mgl64.Vec3, delta float64, msgAndArgs ...interface{}) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], delta, msgAndArgs...)
	}
}

func TestClosestPointOnSegment(t *testing.T) {
	a := mgl64.Vec3{0, 0, 0}
	b := mgl64.Vec3{10, 0, 0}

	assert.Equal(t, mgl64.Vec3{5, 0, 0}, ClosestPointOnSegment(a, b, mgl64.Vec3{5, 3, 0}), "Interior projection should land on the segment")
	assert.Equal(t, a, ClosestPointOnSegment(a, b, mgl64.Vec3{-5, 1, 0}), "Points before the start clamp to the start")
	assert.Equal(t, b, ClosestPointOnSegment(a, b, mgl64.Vec3{15, 0, 2}), "Points past the end clamp to the end")
}

func TestClosestPointOnDegenerateSegment(t *testing.T) {
	a := mgl64.Vec3{1, 2, 3}

	got := ClosestPointOnSegment(a, a, mgl64.Vec3{4, 5, 6})

	assert.Equal(t, a, got, "A zero-length segment should return its start")
	for i := 0; i < 3; i++ {
		assert.False(t, math.IsNaN(got[i]), "Degenerate segments must not produce NaN")
	}
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 3, 4}), 1e-12)
	assert.Equal(t, 0.0, Distance(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 1, 1}))
}

func TestReflectAxisAligned(t *testing.T) {
	assert.Equal(t, mgl64.Vec3{1, 5, 2}, Reflect(mgl64.Vec3{1, -5, 2}, TableNormal), "Reflecting off the table flips y")
	assert.Equal(t, mgl64.Vec3{1, 2, -3}, Reflect(mgl64.Vec3{1, 2, 3}, PaddleNormal), "Reflecting off the paddle flips z")
	assert.Equal(t, mgl64.Vec3{1, 2, -3}, Reflect(mgl64.Vec3{1, 2, 3}, NetNormal), "The sign of the normal does not matter")
}

func TestReflectIsInvolution(t *testing.T) {
	normals := []mgl64.Vec3{
		TableNormal,
		PaddleNormal,
		mgl64.Vec3{1, 2, 3}.Normalize(),
		mgl64.Vec3{-0.3, 0.1, 0.9}.Normalize(),
	}
	vectors := []mgl64.Vec3{
		{0, -50, 0},
		{3, 4, 5},
		{-12.5, 0.25, 80},
	}

	for _, n := range normals {
		for _, v := range vectors {
			once := Reflect(v, n)
			assertVecInDelta(t, v, Reflect(once, n), 1e-9, "Reflecting twice should give back %v", v)
			assert.InDelta(t, v.Len(), once.Len(), 1e-9, "Reflection should preserve length")
		}
	}
}

func TestTranslation(t *testing.T) {
	m := mgl64.Translate3D(1, 2, 3).Mul4(mgl64.HomogRotate3DZ(0.5))

	assertVecInDelta(t, mgl64.Vec3{1, 2, 3}, Translation(m), 1e-12)
}
