package server

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/QinxiWang/Interactive-Graphics---PingPong-Player/config"
	"github.com/QinxiWang/Interactive-Graphics---PingPong-Player/game"
	"github.com/QinxiWang/Interactive-Graphics---PingPong-Player/protocol"
)

var ErrNotOwner = errors.New("only the room owner controls the paddle")

// Room owns one table. Every access to Game goes through mu, so the frame
// loop and the owner's input events never interleave.
type Room struct {
	ID   string
	Game *game.Game

	mu      sync.Mutex
	owner   *Client
	clients []*Client
	score   protocol.Score
	points  []protocol.Message
	closed  bool
	stop    chan struct{}
}

func NewRoom(id string, cfg config.Config, owner *Client) *Room {
	r := &Room{
		ID:      id,
		owner:   owner,
		clients: []*Client{owner},
		stop:    make(chan struct{}),
	}
	opts := cfg.GameOptions()
	opts.OnWinner = r.recordPoint
	r.Game = game.NewGame(opts)
	return r
}

// Run steps the game every interval until the last client leaves, then
// calls onClose.
func (r *Room) Run(interval time.Duration, onClose func(*Room)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-r.stop:
			onClose(r)
			return
		case now := <-ticker.C:
			r.Tick(now.Sub(last).Seconds())
			last = now
		}
	}
}

// Tick advances the game by dt seconds and broadcasts the resulting frame
// and any finished points.
func (r *Room) Tick(dt float64) {
	r.mu.Lock()
	r.Game.Step(dt)
	frame := &protocol.Frame{Tick: r.Game.Ticks, Score: r.score}
	r.Game.Render(frame)
	points := r.points
	r.points = nil
	clients := append([]*Client(nil), r.clients...)
	r.mu.Unlock()

	data, err := protocol.EncodeFrame(frame)
	if err != nil {
		log.Error().Err(err).Str("room", r.ID).Msg("failed to encode frame")
		return
	}
	for _, c := range clients {
		for _, msg := range points {
			c.Send(msg)
		}
		c.SendBinary(data)
	}
}

// recordPoint runs inside Game.Step, with mu held.
func (r *Room) recordPoint(winner game.Side) {
	if winner == game.Player {
		r.score.Player++
	} else {
		r.score.Server++
	}
	log.Info().
		Str("room", r.ID).
		Str("winner", winner.String()).
		Int("player", r.score.Player).
		Int("server", r.score.Server).
		Msgf("Hey %s: nice shot!", winner)

	r.points = append(r.points, protocol.Message{
		Type: protocol.Point,
		Data: protocol.PointData{
			Winner: winner.String(),
			Player: r.score.Player,
			Server: r.score.Server,
		},
	})
}

func (r *Room) MovePaddle(c *Client, pointer protocol.Pointer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c != r.owner {
		return ErrNotOwner
	}
	r.Game.OnPointerMove(pointer.X, pointer.Y)
	return nil
}

func (r *Room) Serve(c *Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c != r.owner {
		return ErrNotOwner
	}
	r.Game.Serve()
	return nil
}

func (r *Room) Score() protocol.Score {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.score
}

// AddClient joins c as a spectator. It fails once the room has closed.
func (r *Room) AddClient(c *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return false
	}
	r.clients = append(r.clients, c)
	return true
}

// RemoveClient drops c. If the owner leaves, the longest-standing spectator
// takes over the paddle; when nobody is left the room stops.
func (r *Room) RemoveClient(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, other := range r.clients {
		if other == c {
			r.clients = append(r.clients[:i], r.clients[i+1:]...)
			break
		}
	}
	if r.owner == c {
		r.owner = nil
		if len(r.clients) > 0 {
			r.owner = r.clients[0]
		}
	}
	if len(r.clients) == 0 && !r.closed {
		r.closed = true
		close(r.stop)
	}
}

func (r *Room) Owner() *Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.owner
}
