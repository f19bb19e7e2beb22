package game

import "github.com/go-gl/mathgl/mgl64"

const (
	// NetWidthFactor is how much wider the net is than the table.
	NetWidthFactor = 1.2
	// OutOfBoundsY is the height below which a ball is considered gone.
	OutOfBoundsY = -10.0
)

// Table holds the static dimensions of the playing area, in centimeters.
// The table surface is the plane y = 0 centred on the origin, with the net
// on z = 0. The near player owns z > 0.
type Table struct {
	Width        float64
	Height       float64
	Length       float64
	NetHeight    float64
	PaddleRadius float64
	PaddleWidth  float64
	BallRadius   float64
}

func NewTable() Table {
	return Table{
		Width:        152.5,
		Height:       76.0,
		Length:       274.0,
		NetHeight:    10.0,
		PaddleRadius: 8.0,
		PaddleWidth:  1.0,
		BallRadius:   2.0,
	}
}

func (t Table) HalfWidth() float64 {
	return 0.5 * t.Width
}

func (t Table) HalfLength() float64 {
	return 0.5 * t.Length
}

// NetHalfWidth is half the span of the net along x.
func (t Table) NetHalfWidth() float64 {
	return 0.5 * NetWidthFactor * t.Width
}

func (t Table) inFootprint(p mgl64.Vec3) bool {
	return p.Z() >= -t.HalfLength() && p.Z() <= t.HalfLength() &&
		p.X() >= -t.HalfWidth() && p.X() <= t.HalfWidth()
}

// BallOnTable reports whether the ball is above the table footprint and has
// not sunk below the surface by more than its radius.
func (t Table) BallOnTable(ball *Ball) bool {
	if !t.inFootprint(ball.Position) {
		return false
	}
	return ball.Position.Y() >= -ball.Radius
}

// PaddleOnTable reports whether a paddle position lies over the table.
func (t Table) PaddleOnTable(pos mgl64.Vec3) bool {
	return t.inFootprint(pos)
}
