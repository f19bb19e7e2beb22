package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"
)

const (
	Gravity = -9.8
	// MaxStep bounds a single step so a stalled clock cannot launch the ball
	// through the table.
	MaxStep = 0.1
	// ServeDepth places the serve this fraction of the table length behind
	// the net on the far side.
	ServeDepth   = 0.4
	ServeHeight  = 5.0
	ServeSpeedY  = 25.0
	ServeSpeedZ  = 40.0
	serveCenterU = 0.5
	serveCenterV = 0.5
)

// Simulation is what a render/event loop drives once per frame and per input
// event.
type Simulation interface {
	Step(dt float64)
	OnPointerMove(u, v float64)
	Serve()
}

// WinnerFunc receives the side that won a point.
type WinnerFunc func(winner Side)

type Options struct {
	Table         Table
	Gravity       mgl64.Vec3
	MaxStep       float64
	ServePosition mgl64.Vec3
	ServeVelocity mgl64.Vec3
	OnWinner      WinnerFunc
}

func DefaultOptions() Options {
	table := NewTable()
	return Options{
		Table:         table,
		Gravity:       mgl64.Vec3{0, Gravity, 0},
		MaxStep:       MaxStep,
		ServePosition: mgl64.Vec3{0, ServeHeight, -ServeDepth * table.Length},
		ServeVelocity: mgl64.Vec3{0, ServeSpeedY, ServeSpeedZ},
		OnWinner:      LogWinner,
	}
}

// Game is the whole mutable state of one table. It is not safe for
// concurrent use; callers serialise Step, OnPointerMove and Serve.
type Game struct {
	Table    Table
	Ball     *Ball
	Paddle   *Paddle
	Memory   MatchMemory
	Gravity  mgl64.Vec3
	MaxStep  float64
	OnWinner WinnerFunc

	ServePosition mgl64.Vec3
	ServeVelocity mgl64.Vec3

	Ticks uint64
}

var _ Simulation = (*Game)(nil)

func NewGame(opts Options) *Game {
	g := &Game{
		Table:         opts.Table,
		Ball:          NewBall(opts.Table.BallRadius),
		Paddle:        NewPaddle(PointerFrame(serveCenterU, serveCenterV)),
		Memory:        NewMatchMemory(),
		Gravity:       opts.Gravity,
		MaxStep:       opts.MaxStep,
		OnWinner:      opts.OnWinner,
		ServePosition: opts.ServePosition,
		ServeVelocity: opts.ServeVelocity,
	}
	g.ResetBall()
	return g
}

// Step advances the simulation by dt seconds. The stages run in a fixed
// order and each sees the changes of the ones before it.
func (g *Game) Step(dt float64) {
	dt = g.clampStep(dt)
	g.Ticks++

	g.Ball.Integrate(g.Gravity, dt)

	g.CheckPaddleCollision()
	g.CheckMirrorPaddleCollision()

	g.CheckTableCollision()
	g.CheckNetCollision()
	g.CheckBallGone()
}

func (g *Game) OnPointerMove(u, v float64) {
	g.Paddle.Move(PointerFrame(u, v))
}

// Serve puts a new ball in play from the far side. The match memory is left
// untouched.
func (g *Game) Serve() {
	g.ResetBall()
}

func (g *Game) ResetBall() {
	g.Ball.Reset(g.ServePosition, g.ServeVelocity)
}

func (g *Game) clampStep(dt float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	if g.MaxStep > 0 && dt > g.MaxStep {
		return g.MaxStep
	}
	return dt
}

func (g *Game) declare(winner Side) {
	if g.OnWinner != nil {
		g.OnWinner(winner)
	}
}

// LogWinner is the default WinnerFunc.
func LogWinner(winner Side) {
	log.Info().Str("winner", winner.String()).Msgf("Hey %s: nice shot!", winner)
}
