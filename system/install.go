package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/boss-rush/asset"
	"github.com/lixenwraith/boss-rush/config"
	"github.com/lixenwraith/boss-rush/engine"
	"github.com/lixenwraith/boss-rush/input"
	"github.com/lixenwraith/boss-rush/parameter"
	"github.com/lixenwraith/boss-rush/physics"
)

// Install registers resources, state actions and systems on g
// Must run before state bindings are loaded and before g.Start
func Install(g *engine.Game, d Deps) error {
	if d.Integrator == nil {
		integ, err := physics.NewIntegrator("")
		if err != nil {
			return err
		}
		d.Integrator = integ
	}
	if d.Audio == nil {
		d.Audio = nopPlayer{}
	}
	if d.Input == nil {
		d.Input = input.NewState(parameter.KeyHoldMillis * time.Millisecond)
	}
	if d.Settings == nil {
		d.Settings = &config.Settings{}
	}
	if d.Time == nil {
		d.Time = engine.NewMonotonicTimeProvider()
	}
	if d.Assets == nil {
		d.Assets = asset.DefaultFS()
	}
	if d.Manifest == nil {
		d.Manifest = asset.Manifest()
	}
	if d.Tuning == (Tuning{}) {
		d.Tuning = Tuning{Acceleration: parameter.DefaultAcceleration, Damping: parameter.DefaultDamping}
	}

	res := g.World.Resources
	engine.AddResource(res, d.Input)
	engine.AddResource(res, d.Settings)
	engine.AddResource(res, d.Audio)
	engine.AddResource(res, d.Integrator)
	engine.AddResource(res, &d.Tuning)
	engine.AddResource(res, &Menu{})
	engine.AddResource(res, &HUD{})

	loading := &Loading{
		Server:   asset.NewServer(d.Assets, d.Spawn, g.Log),
		Library:  asset.NewLibrary(),
		Manifest: d.Manifest,
	}
	loading.Tracker = asset.NewTracker(func() {
		pending, ready, failed := loading.Tracker.Counts()
		g.Log.Info("assets resolved",
			zap.Int("pending", pending), zap.Int("ready", ready), zap.Int("failed", failed))
		_ = g.States.RequestTransition(engine.StateMenu)
	})
	engine.AddResource(res, loading)
	engine.AddResource(res, loading.Library)

	registerActions(g)

	// Update
	g.AddSystem(engine.StageUpdate, NewInputSystem(g, d.Input))
	g.AddSystem(engine.StageUpdate, NewSessionSystem(g), engine.Always())
	g.AddSystem(engine.StageUpdate, NewLoadingSystem(g), engine.InState(engine.StateLoading))
	g.AddSystem(engine.StageUpdate, NewButtonSystem(g))
	g.AddSystem(engine.StageUpdate, NewPauseSystem(g), engine.InState(engine.StateInGame))
	g.AddSystem(engine.StageUpdate, NewMenuBackSystem(g), engine.InState(engine.SubSettings))
	g.AddSystem(engine.StageUpdate, NewInputSampleSystem(g, d.Time), engine.InState(engine.SubRunning))
	g.AddSystem(engine.StageUpdate, NewMotionFrameSystem(g), engine.InState(engine.SubRunning))

	// FixedUpdate
	g.AddSystem(engine.StageFixedUpdate, NewMotionFixedSystem(g), engine.InState(engine.SubRunning))

	// PostUpdate
	g.AddSystem(engine.StagePostUpdate, NewInterpolateSystem(g), engine.InState(engine.StateInGame))
	g.AddSystem(engine.StagePostUpdate, NewCameraSystem(g), engine.InState(engine.StateInGame))
	g.AddSystem(engine.StagePostUpdate, NewAnimationSystem(g), engine.InState(engine.SubRunning))
	return nil
}
