package protocol

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/QinxiWang/Interactive-Graphics---PingPong-Player/game"
)

// Pose is one drawable's transform, stored column-major.
type Pose struct {
	Drawable string      `msgpack:"d"`
	Matrix   [16]float64 `msgpack:"m"`
}

type Score struct {
	Player int `msgpack:"p" json:"player"`
	Server int `msgpack:"s" json:"server"`
}

// Frame is the per-tick snapshot sent to clients as a binary message.
type Frame struct {
	Tick  uint64 `msgpack:"t"`
	Poses []Pose `msgpack:"poses"`
	Score Score  `msgpack:"score"`
}

// Draw implements game.RenderSink so a frame can be filled straight from
// Game.Render.
func (f *Frame) Draw(d game.Drawable, pose mgl64.Mat4) {
	f.Poses = append(f.Poses, Pose{Drawable: d.String(), Matrix: pose})
}

// Pose looks up the pose submitted for a drawable.
func (f *Frame) Pose(d game.Drawable) (mgl64.Mat4, bool) {
	name := d.String()
	for _, p := range f.Poses {
		if p.Drawable == name {
			return p.Matrix, true
		}
	}
	return mgl64.Mat4{}, false
}

func EncodeFrame(f *Frame) ([]byte, error) {
	data, err := msgpack.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return data, nil
}

func DecodeFrame(data []byte) (*Frame, error) {
	var f Frame
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	return &f, nil
}
