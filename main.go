package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/QinxiWang/Interactive-Graphics---PingPong-Player/config"
	"github.com/QinxiWang/Interactive-Graphics---PingPong-Player/game"
	"github.com/QinxiWang/Interactive-Graphics---PingPong-Player/server"
)

var CLI struct {
	Debug bool `help:"Whether to enable debug logging."`

	Serve struct {
		Configs []string `arg:"" optional:"" name:"configs" help:"Configuration files, later files override earlier ones." type:"existingfile"`
	} `cmd:"" default:"withargs" help:"Start the websocket table server."`

	Simulate struct {
		Configs  []string      `arg:"" optional:"" name:"configs" help:"Configuration files, later files override earlier ones." type:"existingfile"`
		Duration time.Duration `help:"Simulated time to run for." default:"60s"`
		FPS      int           `help:"Simulation steps per simulated second." default:"60"`
		Sweep    bool          `help:"Sweep the paddle across the table instead of holding it still."`
		Realtime bool          `help:"Pace the steps with the wall clock."`
	} `cmd:"" help:"Run the simulation headless and log every point."`

	Config struct {
	} `cmd:"" help:"Write the default configuration to standard output."`
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("pingpong"),
		kong.Description("a 3D ping-pong table simulation"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	var err error
	switch ctx.Command() {
	case "serve", "serve <configs>":
		err = serveCommand(CLI.Serve.Configs)
	case "simulate", "simulate <configs>":
		err = simulateCommand(CLI.Simulate.Configs)
	case "config":
		err = config.Write(os.Stdout, config.Default())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func serveCommand(configs []string) error {
	cfg, err := config.LoadAll(configs)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := server.NewServer(cfg)
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.HandleConnection)
	httpServer := &http.Server{Addr: cfg.Server.Address, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shut down")
		}
	}()

	log.Info().Str("address", cfg.Server.Address).Int("tick_rate", cfg.Server.TickRate).Msg("server started")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func simulateCommand(configs []string) error {
	cfg, err := config.LoadAll(configs)
	if err != nil {
		return err
	}
	if CLI.Simulate.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", CLI.Simulate.FPS)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var tally [2]int
	opts := cfg.GameOptions()
	opts.OnWinner = func(winner game.Side) {
		tally[winner]++
		game.LogWinner(winner)
	}
	g := game.NewGame(opts)

	dt := 1.0 / float64(CLI.Simulate.FPS)
	steps := int(CLI.Simulate.Duration.Seconds() * float64(CLI.Simulate.FPS))

	var ticker *time.Ticker
	if CLI.Simulate.Realtime {
		ticker = time.NewTicker(time.Second / time.Duration(CLI.Simulate.FPS))
		defer ticker.Stop()
	}

	for i := 0; i < steps; i++ {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		} else if ctx.Err() != nil {
			break
		}

		if CLI.Simulate.Sweep {
			t := float64(i) * dt
			g.OnPointerMove(0.5+0.4*math.Sin(t*1.5), 0.35+0.15*math.Cos(t*0.7))
		}
		g.Step(dt)
	}

	log.Info().
		Int("steps", steps).
		Int("player", tally[game.Player]).
		Int("server", tally[game.Server]).
		Msg("simulation finished")
	return nil
}
