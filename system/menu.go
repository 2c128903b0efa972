package system

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/boss-rush/audio"
	"github.com/lixenwraith/boss-rush/component"
	"github.com/lixenwraith/boss-rush/config"
	"github.com/lixenwraith/boss-rush/core"
	"github.com/lixenwraith/boss-rush/engine"
	"github.com/lixenwraith/boss-rush/input"
	"github.com/lixenwraith/boss-rush/parameter"
)

// SortedButtons returns live buttons ordered top to bottom
func SortedButtons(w *engine.World) []core.Entity {
	buttons := w.Components.Button.All()
	sort.SliceStable(buttons, func(i, j int) bool {
		bi, _ := w.Components.Button.Get(buttons[i])
		bj, _ := w.Components.Button.Get(buttons[j])
		return bi.Order < bj.Order
	})
	return buttons
}

// ButtonSystem moves menu focus and activates buttons by confirm or hotkey
// At most one button fires per frame
type ButtonSystem struct {
	input    *input.State
	menu     *Menu
	settings *config.Settings
	audio    CuePlayer
}

// NewButtonSystem creates a button system
func NewButtonSystem(g *engine.Game) *ButtonSystem {
	res := g.World.Resources
	return &ButtonSystem{
		input:    engine.MustGetResource[*input.State](res),
		menu:     engine.MustGetResource[*Menu](res),
		settings: engine.MustGetResource[*config.Settings](res),
		audio:    engine.MustGetResource[CuePlayer](res),
	}
}

func (s *ButtonSystem) Name() string  { return "buttons" }
func (s *ButtonSystem) Priority() int { return parameter.PriorityButtons }

func (s *ButtonSystem) Run(g *engine.Game, _ time.Duration) {
	// New screen, focus returns to the first entry
	if v := g.States.Version(); v != s.menu.version {
		s.menu.version = v
		s.menu.Focus = 0
	}

	buttons := SortedButtons(g.World)
	if len(buttons) == 0 {
		return
	}
	if s.menu.Focus >= len(buttons) {
		s.menu.Focus = len(buttons) - 1
	}

	for _, in := range s.input.Intents() {
		switch in.Type {
		case input.IntentMenuUp:
			s.menu.Focus = (s.menu.Focus - 1 + len(buttons)) % len(buttons)
		case input.IntentMenuDown:
			s.menu.Focus = (s.menu.Focus + 1) % len(buttons)
		case input.IntentConfirm:
			s.activate(g, buttons[s.menu.Focus])
			return
		case input.IntentRune:
			for i, e := range buttons {
				b, ok := g.World.Components.Button.Get(e)
				if ok && b.Hotkey != 0 && b.Hotkey == in.Rune {
					s.menu.Focus = i
					s.activate(g, e)
					return
				}
			}
		}
	}
}

func (s *ButtonSystem) activate(g *engine.Game, e core.Entity) {
	b, ok := g.World.Components.Button.Get(e)
	if !ok {
		return
	}
	s.audio.Play(audio.CueClick)
	g.Log.Debug("button pressed", zap.String("label", b.Label))

	switch b.Command {
	case component.CommandTransition:
		_ = g.States.RequestTransition(b.Target)
	case component.CommandSubTransition:
		_ = g.States.RequestSubTransition(b.Target)
	case component.CommandToggleVSync:
		s.settings.VSync = !s.settings.VSync
		b.Label = vsyncLabel(s.settings.VSync)
		g.Log.Info("vsync toggled", zap.Bool("enabled", s.settings.VSync))
	case component.CommandQuit:
		g.RequestQuit()
	}
}

// MenuBackSystem returns from the settings screen on Escape
type MenuBackSystem struct {
	input *input.State
}

// NewMenuBackSystem creates a settings back-navigation system
func NewMenuBackSystem(g *engine.Game) *MenuBackSystem {
	return &MenuBackSystem{input: engine.MustGetResource[*input.State](g.World.Resources)}
}

func (s *MenuBackSystem) Name() string  { return "menu_back" }
func (s *MenuBackSystem) Priority() int { return parameter.PriorityPause }

func (s *MenuBackSystem) Run(g *engine.Game, _ time.Duration) {
	if s.input.Pressed(input.IntentEscape) {
		_ = g.States.RequestSubTransition(engine.SubMainScreen)
	}
}
