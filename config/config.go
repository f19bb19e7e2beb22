// Package config loads the table geometry, physics constants and server
// settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/QinxiWang/Interactive-Graphics---PingPong-Player/game"
)

var ErrInvalid = errors.New("invalid configuration")

type Table struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Length       float64 `yaml:"length"`
	NetHeight    float64 `yaml:"net_height"`
	PaddleRadius float64 `yaml:"paddle_radius"`
	PaddleWidth  float64 `yaml:"paddle_width"`
	BallRadius   float64 `yaml:"ball_radius"`
}

type Physics struct {
	Gravity float64 `yaml:"gravity"`
	// MaxStep is the longest single step in seconds.
	MaxStep float64 `yaml:"max_step"`
	// ServeDepth is the serve distance behind the net as a fraction of the
	// table length.
	ServeDepth    float64    `yaml:"serve_depth"`
	ServeHeight   float64    `yaml:"serve_height"`
	ServeVelocity [3]float64 `yaml:"serve_velocity"`
}

type Server struct {
	Address  string `yaml:"address"`
	TickRate int    `yaml:"tick_rate"`
}

type Config struct {
	Table   Table   `yaml:"table"`
	Physics Physics `yaml:"physics"`
	Server  Server  `yaml:"server"`
}

func Default() Config {
	t := game.NewTable()
	return Config{
		Table: Table{
			Width:        t.Width,
			Height:       t.Height,
			Length:       t.Length,
			NetHeight:    t.NetHeight,
			PaddleRadius: t.PaddleRadius,
			PaddleWidth:  t.PaddleWidth,
			BallRadius:   t.BallRadius,
		},
		Physics: Physics{
			Gravity:       game.Gravity,
			MaxStep:       game.MaxStep,
			ServeDepth:    game.ServeDepth,
			ServeHeight:   game.ServeHeight,
			ServeVelocity: [3]float64{0, game.ServeSpeedY, game.ServeSpeedZ},
		},
		Server: Server{
			Address:  ":8080",
			TickRate: 60,
		},
	}
}

// Parse reads a YAML document on top of the defaults, so a file only needs
// the keys it changes.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	if err := decode(r, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadAll merges the files in order; later files override earlier ones.
// No files yields the defaults.
func LoadAll(paths []string) (Config, error) {
	cfg := Default()
	for _, path := range paths {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return decode(f, cfg)
}

// decode applies one document to cfg, rejecting keys that are not part of
// Config.
func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"table.width", c.Table.Width},
		{"table.height", c.Table.Height},
		{"table.length", c.Table.Length},
		{"table.net_height", c.Table.NetHeight},
		{"table.paddle_radius", c.Table.PaddleRadius},
		{"table.paddle_width", c.Table.PaddleWidth},
		{"table.ball_radius", c.Table.BallRadius},
		{"physics.max_step", c.Physics.MaxStep},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, p.name, p.value)
		}
	}
	if c.Physics.ServeDepth < 0 || c.Physics.ServeDepth > 0.5 {
		return fmt.Errorf("%w: physics.serve_depth must be within [0, 0.5], got %v", ErrInvalid, c.Physics.ServeDepth)
	}
	if c.Server.TickRate <= 0 {
		return fmt.Errorf("%w: server.tick_rate must be positive, got %d", ErrInvalid, c.Server.TickRate)
	}
	return nil
}

// TickInterval is the wall-clock time between two simulation steps.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Server.TickRate)
}

func (c Config) GameTable() game.Table {
	return game.Table{
		Width:        c.Table.Width,
		Height:       c.Table.Height,
		Length:       c.Table.Length,
		NetHeight:    c.Table.NetHeight,
		PaddleRadius: c.Table.PaddleRadius,
		PaddleWidth:  c.Table.PaddleWidth,
		BallRadius:   c.Table.BallRadius,
	}
}

// GameOptions builds the simulation options. The winner callback is left to
// the caller.
func (c Config) GameOptions() game.Options {
	opts := game.DefaultOptions()
	opts.Table = c.GameTable()
	opts.Gravity = mgl64.Vec3{0, c.Physics.Gravity, 0}
	opts.MaxStep = c.Physics.MaxStep
	opts.ServePosition = mgl64.Vec3{0, c.Physics.ServeHeight, -c.Physics.ServeDepth * c.Table.Length}
	opts.ServeVelocity = mgl64.Vec3(c.Physics.ServeVelocity)
	return opts
}

// Write encodes cfg as YAML.
func Write(w io.Writer, cfg Config) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
