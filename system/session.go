package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/boss-rush/engine"
	"github.com/lixenwraith/boss-rush/input"
	"github.com/lixenwraith/boss-rush/parameter"
)

// InputSystem publishes the intents received since the previous frame
type InputSystem struct {
	input *input.State
}

// NewInputSystem creates the first system of every frame
func NewInputSystem(_ *engine.Game, in *input.State) *InputSystem {
	return &InputSystem{input: in}
}

func (s *InputSystem) Name() string  { return "input" }
func (s *InputSystem) Priority() int { return parameter.PriorityInput }

func (s *InputSystem) Run(_ *engine.Game, _ time.Duration) {
	s.input.BeginFrame()
}

// SessionSystem handles global keys and measures frame rate
type SessionSystem struct {
	input *input.State
	hud   *HUD
}

// NewSessionSystem creates a session system
func NewSessionSystem(g *engine.Game) *SessionSystem {
	res := g.World.Resources
	return &SessionSystem{
		input: engine.MustGetResource[*input.State](res),
		hud:   engine.MustGetResource[*HUD](res),
	}
}

func (s *SessionSystem) Name() string  { return "session" }
func (s *SessionSystem) Priority() int { return parameter.PrioritySession }

func (s *SessionSystem) Run(g *engine.Game, _ time.Duration) {
	if s.input.Pressed(input.IntentQuit) {
		g.Log.Info("quit requested")
		g.RequestQuit()
	}
	if s.input.Pressed(input.IntentToggleDebug) {
		s.hud.Debug = !s.hud.Debug
	}

	if rd := g.RealDelta(); rd > 0 {
		fps := float64(time.Second) / float64(rd)
		if s.hud.FPS == 0 {
			s.hud.FPS = fps
		} else {
			s.hud.FPS += (fps - s.hud.FPS) * parameter.FPSSmoothing
		}
	}
}

// PauseSystem toggles Running and Paused on Escape and ends the run on demand
type PauseSystem struct {
	input *input.State
}

// NewPauseSystem creates a pause system
func NewPauseSystem(g *engine.Game) *PauseSystem {
	return &PauseSystem{input: engine.MustGetResource[*input.State](g.World.Resources)}
}

func (s *PauseSystem) Name() string  { return "pause" }
func (s *PauseSystem) Priority() int { return parameter.PriorityPause }

func (s *PauseSystem) Run(g *engine.Game, _ time.Duration) {
	sub, ok := g.States.CurrentSub(engine.StateInGame)
	if !ok {
		return
	}

	switch sub {
	case engine.SubRunning:
		if s.input.Pressed(input.IntentEscape) {
			_ = g.States.RequestSubTransition(engine.SubPaused)
			return
		}
		if s.input.PressedRune(parameter.GameOverKey) {
			g.Log.Debug("run ended", zap.Duration("elapsed", g.Clock.Elapsed()))
			_ = g.States.RequestTransition(engine.StateGameOver)
		}
	case engine.SubPaused:
		if s.input.Pressed(input.IntentEscape) {
			_ = g.States.RequestSubTransition(engine.SubRunning)
		}
	}
}
