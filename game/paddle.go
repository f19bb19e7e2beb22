package game

import "github.com/go-gl/mathgl/mgl64"

// Paddle keeps the current and previous pose of the controlled paddle and a
// smoothed estimate of its per-event displacement.
type Paddle struct {
	Frame     mgl64.Mat4
	PrevFrame mgl64.Mat4
	Velocity  mgl64.Vec3
	Normal    mgl64.Vec3
}

func NewPaddle(frame mgl64.Mat4) *Paddle {
	return &Paddle{
		Frame:     frame,
		PrevFrame: frame,
		Normal:    PaddleNormal,
	}
}

func (p Paddle) Position() mgl64.Vec3 {
	return Translation(p.Frame)
}

func (p Paddle) PrevPosition() mgl64.Vec3 {
	return Translation(p.PrevFrame)
}

// Move records a new pose. The previous pose is overwritten with the current
// one first, then the velocity is blended 10% old, 90% new.
func (p *Paddle) Move(frame mgl64.Mat4) {
	last := p.Position()
	p.PrevFrame = p.Frame
	p.Frame = frame
	p.Velocity = p.Velocity.Mul(0.1).Add(p.Position().Sub(last).Mul(0.9))
}

// Mirror returns the opponent's paddle: the same pose reflected across the
// net plane. The result is a snapshot and is never moved on its own.
func (p Paddle) Mirror() Paddle {
	return Paddle{
		Frame:     mirrorFrame(p.Frame),
		PrevFrame: mirrorFrame(p.PrevFrame),
		Velocity:  mgl64.Vec3{p.Velocity.X(), p.Velocity.Y(), -p.Velocity.Z()},
		Normal:    p.Normal.Mul(-1),
	}
}

// Path is the swept segment from the previous to the current position.
func (p Paddle) Path() (from, to mgl64.Vec3) {
	return p.PrevPosition(), p.Position()
}

// ShadowPose projects the paddle position onto the table surface.
func (p Paddle) ShadowPose() mgl64.Mat4 {
	pos := p.Position()
	return mgl64.Translate3D(pos.X(), 0, pos.Z())
}

// mirrorFrame negates the z translation only; the orientation is shared.
func mirrorFrame(m mgl64.Mat4) mgl64.Mat4 {
	m[14] = -m[14]
	return m
}
