package engine

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/boss-rush/engine/fsm"
)

// Top-level application states
const (
	StateLoading fsm.StateID = iota + 1
	StateMenu
	StateInGame
	StateGameOver
)

// Sub-states, each valid only while its parent is current
const (
	SubMainScreen fsm.StateID = iota + 10 // Menu
	SubSettings                           // Menu
	SubRunning                            // InGame
	SubPaused                             // InGame
)

// Built-in action names available to state bindings
const (
	ActionPauseTime  = "PauseTime"
	ActionResumeTime = "ResumeTime"
)

// NewStateGraph declares the application state graph
// Loading is initial; MainScreen and Running are the sub defaults
func NewStateGraph(log *zap.Logger) *fsm.Machine[*Game] {
	m := fsm.NewMachine[*Game](log)
	m.MustAddState(StateLoading, "Loading", fsm.StateNone)
	m.MustAddState(StateMenu, "Menu", fsm.StateNone)
	m.MustAddState(StateInGame, "InGame", fsm.StateNone)
	m.MustAddState(StateGameOver, "GameOver", fsm.StateNone)

	m.MustAddState(SubMainScreen, "MainScreen", StateMenu)
	m.MustAddState(SubSettings, "Settings", StateMenu)
	m.MustAddState(SubRunning, "Running", StateInGame)
	m.MustAddState(SubPaused, "Paused", StateInGame)

	m.RegisterAction(ActionPauseTime, func(g *Game, _ any) { g.Clock.Pause() })
	m.RegisterAction(ActionResumeTime, func(g *Game, _ any) { g.Clock.Resume() })
	return m
}
