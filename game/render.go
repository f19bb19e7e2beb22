package game

import "github.com/go-gl/mathgl/mgl64"

// Drawable names a piece of scenery owned by the renderer. The simulation
// never holds the geometry itself, only these handles.
type Drawable int

const (
	DrawableBase Drawable = iota
	DrawableTable
	DrawableTableDetails
	DrawableBallShadow
	DrawablePaddleShadow
	DrawableMirrorPaddleShadow
	DrawableBall
	DrawablePaddle
	DrawableHandle
	DrawableMirrorPaddle
	DrawableMirrorHandle
)

var drawableName = map[Drawable]string{
	DrawableBase:               "base",
	DrawableTable:              "table",
	DrawableTableDetails:       "table_details",
	DrawableBallShadow:         "ball_shadow",
	DrawablePaddleShadow:       "paddle_shadow",
	DrawableMirrorPaddleShadow: "mirror_paddle_shadow",
	DrawableBall:               "ball",
	DrawablePaddle:             "paddle",
	DrawableHandle:             "handle",
	DrawableMirrorPaddle:       "mirror_paddle",
	DrawableMirrorHandle:       "mirror_handle",
}

func (d Drawable) String() string {
	return drawableName[d]
}

// RenderSink receives one pose per drawable per frame.
type RenderSink interface {
	Draw(d Drawable, pose mgl64.Mat4)
}

// Render hands the current poses to sink. Static scenery is drawn at the
// identity pose; shadows are only submitted while their caster is over the
// table.
func (g *Game) Render(sink RenderSink) {
	ident := mgl64.Ident4()
	sink.Draw(DrawableBase, ident)
	sink.Draw(DrawableTable, ident)
	sink.Draw(DrawableTableDetails, ident)

	if g.Table.BallOnTable(g.Ball) {
		sink.Draw(DrawableBallShadow, g.BallShadowPose())
	}
	mirror := g.Paddle.Mirror()
	if g.Table.PaddleOnTable(g.Paddle.Position()) {
		sink.Draw(DrawablePaddleShadow, g.Paddle.ShadowPose())
		sink.Draw(DrawableMirrorPaddleShadow, mirror.ShadowPose())
	}

	sink.Draw(DrawableBall, g.BallPose())

	sink.Draw(DrawablePaddle, g.Paddle.Frame)
	sink.Draw(DrawableHandle, g.Paddle.Frame)
	sink.Draw(DrawableMirrorPaddle, mirror.Frame)
	sink.Draw(DrawableMirrorHandle, mirror.Frame)
}

func (g *Game) BallPose() mgl64.Mat4 {
	p := g.Ball.Position
	return mgl64.Translate3D(p.X(), p.Y(), p.Z())
}

// BallShadowPose projects the ball onto the table surface.
func (g *Game) BallShadowPose() mgl64.Mat4 {
	p := g.Ball.Position
	return mgl64.Translate3D(p.X(), 0, p.Z())
}

// SinkFunc adapts a function to RenderSink.
type SinkFunc func(d Drawable, pose mgl64.Mat4)

func (f SinkFunc) Draw(d Drawable, pose mgl64.Mat4) {
	f(d, pose)
}
