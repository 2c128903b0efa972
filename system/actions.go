package system

import (
	"context"

	"go.uber.org/zap"

	"github.com/lixenwraith/boss-rush/asset"
	"github.com/lixenwraith/boss-rush/audio"
	"github.com/lixenwraith/boss-rush/component"
	"github.com/lixenwraith/boss-rush/config"
	"github.com/lixenwraith/boss-rush/engine"
	"github.com/lixenwraith/boss-rush/engine/fsm"
	"github.com/lixenwraith/boss-rush/parameter"
	"github.com/lixenwraith/boss-rush/vmath"
)

// Action names bound to states in the bindings file
const (
	ActionSpawnLoadingScreen = "SpawnLoadingScreen"
	ActionStartLoading       = "StartLoading"
	ActionInstallCursor      = "InstallCursor"
	ActionSpawnMainMenu      = "SpawnMainMenu"
	ActionSpawnSettings      = "SpawnSettings"
	ActionSpawnLevel         = "SpawnLevel"
	ActionSpawnPauseOverlay  = "SpawnPauseOverlay"
	ActionSpawnGameOver      = "SpawnGameOver"
	ActionPlayCue            = "PlayCue"
)

func registerActions(g *engine.Game) {
	m := g.States
	m.RegisterAction(ActionSpawnLoadingScreen, spawnLoadingScreen)
	m.RegisterAction(ActionStartLoading, startLoading)
	m.RegisterAction(ActionInstallCursor, installCursor)
	m.RegisterAction(ActionSpawnMainMenu, spawnMainMenu)
	m.RegisterAction(ActionSpawnSettings, spawnSettings)
	m.RegisterAction(ActionSpawnLevel, spawnLevel)
	m.RegisterAction(ActionSpawnPauseOverlay, spawnPauseOverlay)
	m.RegisterAction(ActionSpawnGameOver, spawnGameOver)
	m.RegisterAction(ActionPlayCue, playCue)
}

func spawnLabel(g *engine.Game, scope fsm.StateID, text string, row int, title bool) {
	if e, ok := g.Spawn(scope); ok {
		g.World.Components.Label.Set(e, component.LabelComponent{Text: text, Row: row, Title: title})
	}
}

func spawnButton(g *engine.Game, scope fsm.StateID, b component.ButtonComponent) {
	if e, ok := g.Spawn(scope); ok {
		g.World.Components.Button.Set(e, b)
	}
}

// --- Loading ---

func spawnLoadingScreen(g *engine.Game, _ any) {
	spawnLabel(g, engine.StateLoading, "Loading", -2, true)
}

func startLoading(g *engine.Game, _ any) {
	l := engine.MustGetResource[*Loading](g.World.Resources)
	if l.cancel != nil {
		l.cancel()
	}
	l.Tracker.Reset()
	for _, id := range l.Manifest {
		l.Tracker.Track(id)
	}
	g.Metrics.LoadProgress.Set(float64(l.Tracker.Fraction()))

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.results = l.Server.Load(ctx, l.Manifest)
	g.Log.Info("asset loading started", zap.Int("items", len(l.Manifest)))
}

func installCursor(g *engine.Game, _ any) {
	l := engine.MustGetResource[*Loading](g.World.Resources)
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	if l.Library.InstallCursor() {
		g.Log.Debug("cursor installed", zap.String("glyph", l.Library.Cursor))
	}
}

// --- Menus ---

func spawnMainMenu(g *engine.Game, _ any) {
	scope := engine.SubMainScreen
	spawnLabel(g, scope, "Boss Rush", -3, true)
	spawnButton(g, scope, component.ButtonComponent{
		Label: "Play", Hotkey: 'p', Command: component.CommandTransition, Target: engine.StateInGame, Order: 0,
	})
	spawnButton(g, scope, component.ButtonComponent{
		Label: "Settings", Hotkey: 's', Command: component.CommandSubTransition, Target: engine.SubSettings, Order: 1,
	})
	spawnButton(g, scope, component.ButtonComponent{
		Label: "Quit", Hotkey: 'q', Command: component.CommandQuit, Order: 2,
	})
}

func vsyncLabel(on bool) string {
	if on {
		return "VSync Enabled"
	}
	return "VSync Disabled"
}

func spawnSettings(g *engine.Game, _ any) {
	settings := engine.MustGetResource[*config.Settings](g.World.Resources)
	scope := engine.SubSettings
	spawnLabel(g, scope, "Settings", -3, true)
	spawnLabel(g, scope, "Language: "+settings.Language, -1, false)
	spawnButton(g, scope, component.ButtonComponent{
		Label: vsyncLabel(settings.VSync), Hotkey: 'v', Command: component.CommandToggleVSync, Order: 0,
	})
	spawnButton(g, scope, component.ButtonComponent{
		Label: "Back", Hotkey: 'b', Command: component.CommandSubTransition, Target: engine.SubMainScreen, Order: 1,
	})
}

func spawnPauseOverlay(g *engine.Game, _ any) {
	scope := engine.SubPaused
	spawnLabel(g, scope, "Paused", -3, true)
	spawnButton(g, scope, component.ButtonComponent{
		Label: "Resume", Hotkey: 'r', Command: component.CommandSubTransition, Target: engine.SubRunning, Order: 0,
	})
	spawnButton(g, scope, component.ButtonComponent{
		Label: "Return to Main Menu", Hotkey: 'm', Command: component.CommandTransition, Target: engine.StateMenu, Order: 1,
	})
}

func spawnGameOver(g *engine.Game, _ any) {
	scope := engine.StateGameOver
	spawnLabel(g, scope, "Game Over", -3, true)
	spawnButton(g, scope, component.ButtonComponent{
		Label: "Play again", Hotkey: 'r', Command: component.CommandTransition, Target: engine.StateInGame, Order: 0,
	})
	spawnButton(g, scope, component.ButtonComponent{
		Label: "Main Menu", Hotkey: 'm', Command: component.CommandTransition, Target: engine.StateMenu, Order: 1,
	})
}

// --- Level ---

func spawnLevel(g *engine.Game, _ any) {
	c := &g.World.Components
	tuning := engine.MustGetResource[*Tuning](g.World.Resources)
	scope := engine.StateInGame

	if e, ok := g.Spawn(scope); ok {
		c.Kinetic.Set(e, component.KineticComponent{})
		c.Motion.Set(e, component.MotionComponent{Acceleration: tuning.Acceleration, Damping: tuning.Damping})
		c.Controller.Set(e, component.ControllerComponent{})
		c.Transform.Set(e, component.TransformComponent{})
		c.Sprite.Set(e, component.SpriteComponent{
			Atlas: asset.AtlasPlayer, Frame: component.FacingDown.Frame(), Facing: component.FacingDown, Z: 1,
		})
		c.Player.Set(e, component.PlayerComponent{})
	}

	if e, ok := g.Spawn(scope); ok {
		c.Transform.Set(e, component.TransformComponent{Position: vmath.V2(parameter.TreeX, 0)})
		c.Sprite.Set(e, component.SpriteComponent{Atlas: asset.AtlasTree})
		c.Animation.Set(e, component.AnimationComponent{
			First:     0,
			Last:      parameter.TreeFrames - 1,
			FrameTime: parameter.TreeFrameDuration,
		})
		c.Obstacle.Set(e, component.ObstacleComponent{Name: "tree"})
	}

	if e, ok := g.Spawn(scope); ok {
		c.Camera.Set(e, component.CameraComponent{})
	}
}

// --- Audio ---

func playCue(g *engine.Game, args any) {
	name, _ := argString(args, "cue")
	cue, err := audio.ParseCue(name)
	if err != nil {
		g.Log.Warn("cue action", zap.Error(err))
		return
	}
	engine.MustGetResource[CuePlayer](g.World.Resources).Play(cue)
}

func argString(args any, key string) (string, bool) {
	m, ok := args.(map[string]any)
	if !ok {
		return "", false
	}
	s, ok := m[key].(string)
	return s, ok
}
