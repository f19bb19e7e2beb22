package game

// MatchMemory is the collision history the scoring rules read. It is not
// cleared when a point ends, so the next point starts from whatever the
// previous one left behind.
type MatchMemory struct {
	// LastZHit is the side of the net of the most recent table bounce:
	// -1 far, +1 near, 0 when no bounce has been seen.
	LastZHit int
	// LastPlayerHit is the side whose paddle touched the ball last.
	LastPlayerHit Side
}

// NewMatchMemory returns the history a fresh match starts with: a far-side
// bounce struck by the server.
func NewMatchMemory() MatchMemory {
	return MatchMemory{
		LastZHit:      -1,
		LastPlayerHit: Server,
	}
}

// RecordBounce stores which half of the table the ball landed on.
func (m *MatchMemory) RecordBounce(z float64) {
	if z < 0 {
		m.LastZHit = -1
	} else {
		m.LastZHit = 1
	}
}

// OutOfBoundsWinner resolves a ball that fell off the table. The rows are
// checked in order and the first match wins.
func (m MatchMemory) OutOfBoundsWinner() (Side, bool) {
	switch {
	case m.LastZHit < 0 && m.LastPlayerHit == Server:
		// server struck it and it last bounced on the server's side
		return Player, true
	case m.LastZHit > 0 && m.LastPlayerHit == Player:
		return Server, true
	case m.LastZHit > 0 && m.LastPlayerHit == Server:
		return Player, true
	case m.LastZHit < 0 && m.LastPlayerHit == Player:
		return Server, true
	}
	return Server, false
}

// TableWinner checks a bounce at z against the previous bounce side. Two
// bounces in a row on the same half end the point.
func (m MatchMemory) TableWinner(z float64) (Side, bool) {
	switch {
	case m.LastZHit < 0 && z < 0:
		return Player, true
	case m.LastZHit > 0 && z > 0:
		return Server, true
	}
	return Server, false
}

// NetWinner awards a net contact to the side opposite the ball.
func NetWinner(z float64) Side {
	if z < 0 {
		return Player
	}
	return Server
}
