package input

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/boss-rush/vmath"
)

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func char(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestAxisHoldWindow(t *testing.T) {
	s := NewState(150 * time.Millisecond)
	s.HandleEvent(key(tcell.KeyUp), t0)
	s.HandleEvent(char('d'), t0.Add(10*time.Millisecond))

	if got := s.Axis(t0.Add(20 * time.Millisecond)); got != vmath.V2(1, 1) {
		t.Errorf("Axis = %+v, want (1,1)", got)
	}
	// Up expires first
	if got := s.Axis(t0.Add(155 * time.Millisecond)); got != vmath.V2(1, 0) {
		t.Errorf("Axis = %+v, want (1,0)", got)
	}
	if got := s.Axis(t0.Add(time.Second)); !vmath.V2IsZero(got) {
		t.Errorf("Axis = %+v, want zero", got)
	}
}

func TestOpposingDirectionsCancel(t *testing.T) {
	s := NewState(time.Second)
	s.HandleEvent(key(tcell.KeyLeft), t0)
	s.HandleEvent(key(tcell.KeyRight), t0)
	if got := s.Axis(t0); got.X != 0 {
		t.Errorf("X = %v, want 0", got.X)
	}
	s.Release()
	if s.Held(DirLeft, t0) {
		t.Error("Release kept direction held")
	}
}

func TestIntentsPublishedPerFrame(t *testing.T) {
	s := NewState(time.Second)
	s.HandleEvent(key(tcell.KeyEscape), t0)
	s.HandleEvent(char('P'), t0)

	if s.Pressed(IntentEscape) {
		t.Fatal("intent visible before BeginFrame")
	}
	s.BeginFrame()
	if !s.Pressed(IntentEscape) {
		t.Error("escape not pressed")
	}
	if !s.PressedRune('p') {
		t.Error("hotkey rune not lowercased")
	}

	s.BeginFrame()
	if len(s.Intents()) != 0 {
		t.Errorf("intents carried over: %v", s.Intents())
	}
}

func TestKeyMapping(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want IntentType
	}{
		{"enter confirms", key(tcell.KeyEnter), IntentConfirm},
		{"space confirms", char(' '), IntentConfirm},
		{"tab moves down", key(tcell.KeyTab), IntentMenuDown},
		{"vi up", char('k'), IntentMenuUp},
		{"ctrl-c quits", key(tcell.KeyCtrlC), IntentQuit},
		{"ctrl-q rune quits", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModCtrl), IntentQuit},
		{"f1 debug", key(tcell.KeyF1), IntentToggleDebug},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(time.Second)
			s.HandleEvent(tt.ev, t0)
			s.BeginFrame()
			if !s.Pressed(tt.want) {
				t.Errorf("intents = %v, want %v", s.Intents(), tt.want)
			}
		})
	}
}

func TestResizeIntent(t *testing.T) {
	s := NewState(time.Second)
	s.HandleEvent(tcell.NewEventResize(80, 24), t0)
	s.BeginFrame()
	if !s.Pressed(IntentResize) {
		t.Error("resize not reported")
	}
}
