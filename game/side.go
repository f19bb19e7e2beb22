package game

// Side identifies one end of the table. The values match the wire and log
// convention of the scoring rules: 0 is the far (serving) side, 1 the near
// player side.
type Side int

const (
	Server Side = iota
	Player
)

var sideName = map[Side]string{
	Server: "server",
	Player: "player",
}

func (s Side) String() string {
	return sideName[s]
}

