package game

import "math"

const (
	// PaddleBoost scales the ball speed on every paddle hit.
	PaddleBoost = 1.2
	// PaddleClearance moves the ball away from the paddle after a hit so the
	// next step cannot register the same contact.
	PaddleClearance = 10.0
	// PaddleTransfer converts paddle displacement into ball velocity.
	PaddleTransfer = 10.0
	TableDamping   = 0.85
	NetDamping     = 0.5
	// NetCatchEpsilon is the tolerance of the net "catch" branch, which
	// fires when reflecting across the net leaves the vertical velocity
	// unchanged. The comparison is sensitive to rounding.
	NetCatchEpsilon = 1e-9
)

// CheckPaddleCollision tests the ball against the near paddle's swept path.
// Balls travelling toward the far side are ignored.
func (g *Game) CheckPaddleCollision() bool {
	if g.Ball.Velocity.Z() < 0 {
		return false
	}
	if !g.hitPaddle(*g.Paddle, -PaddleClearance) {
		return false
	}
	g.Memory.LastPlayerHit = Player
	return true
}

// CheckMirrorPaddleCollision is the far-side counterpart of
// CheckPaddleCollision, run against the mirrored paddle.
func (g *Game) CheckMirrorPaddleCollision() bool {
	if g.Ball.Velocity.Z() > 0 {
		return false
	}
	if !g.hitPaddle(g.Paddle.Mirror(), PaddleClearance) {
		return false
	}
	g.Memory.LastPlayerHit = Server
	return true
}

func (g *Game) hitPaddle(p Paddle, clearance float64) bool {
	from, to := p.Path()
	closest := ClosestPointOnSegment(from, to, g.Ball.Position)
	if Distance(closest, g.Ball.Position) >= g.Table.PaddleRadius {
		return false
	}

	v := Reflect(g.Ball.Velocity, p.Normal).Mul(PaddleBoost)
	g.Ball.Position[1] = to.Y() - g.Ball.Radius + clearance

	diff := from.Sub(to)
	v[0] -= diff.X() * PaddleTransfer
	v[2] -= diff.Z() * PaddleTransfer
	g.Ball.Velocity = v
	return true
}

// CheckTableCollision bounces the ball off the table surface. A second
// bounce on the same half as the previous one ends the point.
func (g *Game) CheckTableCollision() bool {
	if g.Ball.Position.Y() > g.Ball.Radius || !g.Table.BallOnTable(g.Ball) {
		return false
	}

	g.Ball.Position[1] = g.Ball.Radius
	g.Ball.Velocity = Reflect(g.Ball.Velocity, TableNormal).Mul(TableDamping)

	z := g.Ball.Position.Z()
	if winner, ok := g.Memory.TableWinner(z); ok {
		g.declare(winner)
	}
	g.Memory.RecordBounce(z)
	return true
}

// CheckNetCollision bounces the ball off the net and awards the point to the
// side opposite the ball.
func (g *Game) CheckNetCollision() bool {
	pos, r := g.Ball.Position, g.Ball.Radius
	if pos.Z() < -r || pos.Z() > r ||
		pos.Y() >= g.Table.NetHeight+r ||
		math.Abs(pos.X()) >= g.Table.NetHalfWidth() {
		return false
	}

	v := g.Ball.Velocity
	switch {
	case v.Z() < 0:
		v = Reflect(v, NetNormal)
	case math.Abs(v.Y()-Reflect(v, NetNormal).Y()) <= NetCatchEpsilon:
		// the reflection cannot add vertical energy; pop the ball up instead
		v[1] = r
	default:
		v = Reflect(v, NetNormal.Mul(-1))
	}
	g.Ball.Velocity = v.Mul(NetDamping)

	g.declare(NetWinner(pos.Z()))
	return true
}

// CheckBallGone ends the point once the ball has dropped well below the
// table, then serves a new ball.
func (g *Game) CheckBallGone() bool {
	if g.Ball.Position.Y() >= OutOfBoundsY {
		return false
	}
	if winner, ok := g.Memory.OutOfBoundsWinner(); ok {
		g.declare(winner)
	}
	g.ResetBall()
	return true
}
