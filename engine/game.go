package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/boss-rush/core"
	"github.com/lixenwraith/boss-rush/engine/fsm"
	"github.com/lixenwraith/boss-rush/parameter"
	"github.com/lixenwraith/boss-rush/status"
)

// GameConfig holds construction parameters for a Game
type GameConfig struct {
	Step     time.Duration // Fixed step, default parameter.FixedStep
	MaxSteps int           // Catch-up cap per frame, 0 = unbounded
	MaxDelta time.Duration // Clamp for one real frame delta, default parameter.MaxFrameDelta
	Log      *zap.Logger
	Metrics  *status.Registry
}

// Game holds all game state and drives the frame pipeline
// Every method runs on the frame goroutine unless noted
type Game struct {
	World   *World
	States  *fsm.Machine[*Game]
	Step    *FixedStep
	Clock   *VirtualClock
	Metrics *status.Registry
	Log     *zap.Logger

	systems [stageCount][]scheduled

	frame     uint64
	realDelta time.Duration
	delta     time.Duration
	lastSteps int
	dropped   uint64
	quit      bool
}

// NewGame wires the world, state graph and schedulers
func NewGame(cfg GameConfig) *Game {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	if cfg.Step <= 0 {
		cfg.Step = parameter.FixedStep
	}
	if cfg.MaxDelta <= 0 {
		cfg.MaxDelta = parameter.MaxFrameDelta
	}
	if cfg.Metrics == nil {
		cfg.Metrics = status.NewRegistry()
	}

	g := &Game{
		Step:    NewFixedStep(cfg.Step, cfg.MaxSteps),
		Clock:   NewVirtualClock(cfg.MaxDelta),
		Metrics: cfg.Metrics,
		Log:     cfg.Log,
	}
	g.States = NewStateGraph(cfg.Log)
	g.World = NewWorld(g.States.Parent)
	g.States.SetPurger(g)
	g.States.SetObserver(cfg.Metrics)
	return g
}

// AddSystem schedules a system in a stage, gated by all conds
func (g *Game) AddSystem(stage Stage, sys System, conds ...Condition) {
	g.systems[stage] = append(g.systems[stage], scheduled{sys: sys, conds: conds})
	sortScheduled(g.systems[stage])
	g.Log.Debug("system added",
		zap.String("system", sys.Name()),
		zap.Stringer("stage", stage),
		zap.Int("priority", sys.Priority()))
}

// Start enters the initial state chain
func (g *Game) Start() error {
	return g.States.Init(g)
}

// Frame runs one frame: transitions, virtual time, Update, fixed steps, PostUpdate, metrics
func (g *Game) Frame(real time.Duration) {
	g.frame++
	g.realDelta = real

	// Single fixed point where buffered state requests take effect
	g.States.Apply(g)

	g.delta = g.Clock.Advance(real)

	g.runStage(StageUpdate, g.delta)

	fixed := g.systems[StageFixedUpdate]
	g.lastSteps = g.Step.Advance(g.delta, func(dt time.Duration) {
		for _, s := range fixed {
			if s.enabled(g) {
				s.sys.Run(g, dt)
			}
		}
	})

	g.runStage(StagePostUpdate, g.delta)

	g.recordMetrics()
}

func (g *Game) runStage(stage Stage, dt time.Duration) {
	for _, s := range g.systems[stage] {
		if s.enabled(g) {
			s.sys.Run(g, dt)
		}
	}
}

func (g *Game) recordMetrics() {
	m := g.Metrics
	m.Frames.Inc()
	m.FrameSeconds.Observe(g.realDelta.Seconds())
	m.Steps.Add(float64(g.lastSteps))
	m.StepsPerFrame.Observe(float64(g.lastSteps))
	if d := g.Step.Dropped(); d > g.dropped {
		m.DroppedSteps.Add(float64(d - g.dropped))
		g.Log.Debug("fixed steps dropped by catch-up cap", zap.Uint64("steps", d-g.dropped))
		g.dropped = d
	}
	m.Entities.Set(float64(g.World.EntityCount()))
}

// PurgeScope destroys every entity scoped to the exited state
func (g *Game) PurgeScope(scope fsm.StateID) {
	purged := g.World.Scopes.Purge(scope)
	n := g.World.DestroyEntities(purged)
	if n > 0 {
		g.Metrics.Purged.Add(float64(n))
		g.Log.Debug("scope purged",
			zap.String("scope", g.States.Name(scope)),
			zap.Int("entities", n))
	}
}

// Spawn creates an entity scoped to the given state, logging on failure
func (g *Game) Spawn(scope fsm.StateID) (core.Entity, bool) {
	e, err := g.World.SpawnScoped(scope)
	if err != nil {
		g.Log.Error("scoped spawn failed", zap.String("scope", g.States.Name(scope)), zap.Error(err))
		return e, false
	}
	return e, true
}

// Overstep is the interpolation fraction for this frame
func (g *Game) Overstep() float64 {
	return g.Step.Overstep()
}

// FrameNumber returns the number of frames run
func (g *Game) FrameNumber() uint64 {
	return g.frame
}

// Delta returns the virtual delta of the current frame
func (g *Game) Delta() time.Duration {
	return g.delta
}

// RealDelta returns the unscaled delta of the current frame
func (g *Game) RealDelta() time.Duration {
	return g.realDelta
}

// LastSteps returns the fixed steps executed by the last frame
func (g *Game) LastSteps() int {
	return g.lastSteps
}

// RequestQuit asks the main loop to stop after the current frame
func (g *Game) RequestQuit() {
	g.quit = true
}

// Quitting reports whether quit was requested
func (g *Game) Quitting() bool {
	return g.quit
}
