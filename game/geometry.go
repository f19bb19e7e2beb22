package game

import "github.com/go-gl/mathgl/mgl64"

// Normals used by the collision checks.
var (
	PaddleNormal = mgl64.Vec3{0, 0, -1}
	TableNormal  = mgl64.Vec3{0, 1, 0}
	NetNormal    = mgl64.Vec3{0, 0, 1}
)

// ClosestPointOnSegment returns the point on the segment [a, b] nearest to p.
// A zero-length segment yields a.
func ClosestPointOnSegment(a, b, p mgl64.Vec3) mgl64.Vec3 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / lenSq
	t = mgl64.Clamp(t, 0, 1)
	return a.Add(ab.Mul(t))
}

// Distance is the Euclidean distance between two points.
func Distance(a, b mgl64.Vec3) float64 {
	return b.Sub(a).Len()
}

// Reflect mirrors v across the plane with unit normal n.
func Reflect(v, n mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// Translation extracts the position column of an affine transform.
func Translation(m mgl64.Mat4) mgl64.Vec3 {
	return m.Col(3).Vec3()
}

