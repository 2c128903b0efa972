package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/boss-rush/asset"
	"github.com/lixenwraith/boss-rush/audio"
	"github.com/lixenwraith/boss-rush/config"
	"github.com/lixenwraith/boss-rush/core"
	"github.com/lixenwraith/boss-rush/engine"
	"github.com/lixenwraith/boss-rush/input"
	"github.com/lixenwraith/boss-rush/logger"
	"github.com/lixenwraith/boss-rush/parameter"
	"github.com/lixenwraith/boss-rush/physics"
	"github.com/lixenwraith/boss-rush/render"
	"github.com/lixenwraith/boss-rush/status"
	"github.com/lixenwraith/boss-rush/system"
)

var configFlag = flag.String("config", "", "Config file path, default searches ./boss-rush.* and ~/.config/boss-rush/")

func main() {
	flag.Parse()
	if err := run(*configFlag); err != nil {
		fmt.Fprintf(os.Stderr, "boss-rush: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, session, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log.Info("starting",
		zap.String("session", session),
		zap.String("motion", cfg.Simulation.Motion),
		zap.Int("fixed_hz", cfg.Simulation.FixedHz))

	metrics := status.NewRegistry()
	if cfg.Metrics.Addr != "" {
		srv := status.NewServer(cfg.Metrics.Addr, metrics, log)
		if err := srv.Start(core.Go); err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), parameter.ShutdownTimeout)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	integ, err := physics.NewIntegrator(cfg.Simulation.Motion)
	if err != nil {
		return err
	}

	player := audio.NewPlayer(log)
	if err := player.Init(); err != nil {
		// Non-fatal, game runs without sound
		log.Warn("audio disabled", zap.Error(err))
	}
	defer player.Close()
	player.SetVolume(cfg.Settings.SoundLevel)

	var assets fs.FS = asset.DefaultFS()
	if cfg.Assets.Dir != "" {
		assets = os.DirFS(cfg.Assets.Dir)
	}

	g := engine.NewGame(engine.GameConfig{
		Step:     time.Second / time.Duration(cfg.Simulation.FixedHz),
		MaxSteps: cfg.Simulation.MaxStepsPerFrame,
		Log:      log,
		Metrics:  metrics,
	})
	clock := engine.NewMonotonicTimeProvider()
	in := input.NewState(parameter.KeyHoldMillis * time.Millisecond)
	settings := &cfg.Settings

	err = system.Install(g, system.Deps{
		Input:      in,
		Time:       clock,
		Assets:     assets,
		Spawn:      core.Go,
		Settings:   settings,
		Audio:      player,
		Integrator: integ,
		Tuning:     system.Tuning{Acceleration: cfg.Player.Acceleration, Damping: cfg.Player.Damping},
	})
	if err != nil {
		return err
	}
	if err := g.States.LoadBindingsAuto(cfg.States.BindingsFile, asset.DefaultStateBindings); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	// Restore the terminal before a crash in any goroutine prints its trace
	core.SetCrashHook(func(any, []byte) {
		screen.Fini()
		_ = log.Sync()
	})

	if err := g.Start(); err != nil {
		return err
	}

	loop(g, screen, in, clock, settings)
	log.Info("exiting",
		zap.Uint64("frames", g.FrameNumber()),
		zap.Duration("played", g.Clock.Elapsed()))
	return nil
}

// loop feeds terminal events into input and runs one frame per tick until quit
func loop(g *engine.Game, screen tcell.Screen, in *input.State, clock engine.TimeProvider, settings *config.Settings) {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	renderer := render.NewRenderer(screen)
	timer := engine.NewFrameTimer(clock)

	interval := frameInterval(settings)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, parameter.EventQueueSize)
	done := make(chan struct{})
	defer close(done)
	core.Go(func() { pollEvents(screen, events, done) })

	for !g.Quitting() {
		select {
		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				renderer.Resize()
			}
			in.HandleEvent(ev, clock.Now())

		case <-ticker.C:
			g.Frame(timer.Tick())
			renderer.Draw(g)

			// Settings may toggle vsync at runtime
			if next := frameInterval(settings); next != interval {
				interval = next
				ticker.Reset(interval)
			}
		}
	}
}

// pollEvents forwards terminal events until the screen is finalized or done is closed
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		// Nil after Fini
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func frameInterval(s *config.Settings) time.Duration {
	if s.VSync {
		return parameter.FrameIntervalVSync
	}
	return parameter.FrameIntervalNoVSync
}
