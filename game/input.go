package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Pointer mapping constants, in centimeters.
const (
	PointerRangeX = 100.0
	PointerRangeZ = 137.0
	PaddleHeight  = 20.0
	PaddleOffsetZ = 20.0
)

// PointerFrame maps a normalised screen position (u to the right, v down,
// both in [0, 1]) to a paddle pose hovering over the near half of the table.
// The paddle tilts about z in proportion to its horizontal offset so the
// handle swings as it moves, and z never crosses the net.
func PointerFrame(u, v float64) mgl64.Mat4 {
	x := u*2.0 - 1.0
	z := math.Max(v*PointerRangeZ+PaddleOffsetZ, 0)
	rot := mgl64.HomogRotate3DZ(math.Sin(-x))
	return mgl64.Translate3D(x*PointerRangeX, PaddleHeight, z).Mul4(rot)
}
