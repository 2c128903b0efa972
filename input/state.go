package input

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/boss-rush/vmath"
)

// State converts terminal key events into a held-direction axis and per-frame intents
// Terminals report presses only; a direction stays held for the hold window after its last press or repeat
// Owned by the frame goroutine
type State struct {
	hold    time.Duration
	held    [dirCount]time.Time
	pending []Intent
	frame   []Intent
}

// NewState creates an input state with the given hold window
func NewState(hold time.Duration) *State {
	return &State{hold: hold}
}

// HandleEvent records one terminal event observed at now
func (s *State) HandleEvent(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		s.handleKey(ev, now)
	case *tcell.EventResize:
		s.pending = append(s.pending, Intent{Type: IntentResize})
	}
}

func (s *State) handleKey(ev *tcell.EventKey, now time.Time) {
	var entry keyEntry
	var ok bool

	if ev.Key() == tcell.KeyRune {
		r := unicode.ToLower(ev.Rune())
		if ev.Modifiers()&tcell.ModCtrl != 0 && r == 'q' {
			s.pending = append(s.pending, Intent{Type: IntentQuit})
			return
		}
		// Every printable key is also offered as a hotkey
		s.pending = append(s.pending, Intent{Type: IntentRune, Rune: r})
		entry, ok = runeKeys[r]
	} else {
		entry, ok = specialKeys[ev.Key()]
	}
	if !ok {
		return
	}

	if entry.hasDir {
		s.held[entry.dir] = now
	}
	if entry.intent != IntentNone {
		s.pending = append(s.pending, Intent{Type: entry.intent})
	}
}

// BeginFrame publishes intents received since the previous frame
func (s *State) BeginFrame() {
	s.frame = append(s.frame[:0], s.pending...)
	s.pending = s.pending[:0]
}

// Intents returns this frame's intents in arrival order
func (s *State) Intents() []Intent {
	return s.frame
}

// Pressed reports whether an intent of type t arrived this frame
func (s *State) Pressed(t IntentType) bool {
	for _, in := range s.frame {
		if in.Type == t {
			return true
		}
	}
	return false
}

// PressedRune reports whether printable key r arrived this frame
func (s *State) PressedRune(r rune) bool {
	r = unicode.ToLower(r)
	for _, in := range s.frame {
		if in.Type == IntentRune && in.Rune == r {
			return true
		}
	}
	return false
}

// Held reports whether direction d is within its hold window at now
func (s *State) Held(d Direction, now time.Time) bool {
	t := s.held[d]
	return !t.IsZero() && now.Sub(t) < s.hold
}

// Axis returns the raw direction sum at now, x right positive, y up positive
func (s *State) Axis(now time.Time) vmath.Vec2 {
	var v vmath.Vec2
	if s.Held(DirRight, now) {
		v.X++
	}
	if s.Held(DirLeft, now) {
		v.X--
	}
	if s.Held(DirUp, now) {
		v.Y++
	}
	if s.Held(DirDown, now) {
		v.Y--
	}
	return v
}

// Release drops all held directions
func (s *State) Release() {
	s.held = [dirCount]time.Time{}
}
