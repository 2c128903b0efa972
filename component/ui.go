package component

import "github.com/lixenwraith/boss-rush/engine/fsm"

// ButtonCommand selects what pressing a button does
type ButtonCommand uint8

const (
	// CommandTransition requests a top-level transition to Target
	CommandTransition ButtonCommand = iota
	// CommandSubTransition requests a sub-state transition to Target
	CommandSubTransition
	// CommandToggleVSync flips the vsync setting
	CommandToggleVSync
	// CommandQuit ends the program
	CommandQuit
)

// ButtonComponent is a selectable menu entry
type ButtonComponent struct {
	Label   string
	Hotkey  rune
	Command ButtonCommand
	Target  fsm.StateID
	Order   int // Vertical position within its screen
}

// LabelComponent is static screen text
type LabelComponent struct {
	Text  string
	Row   int // Offset from screen center, in rows
	Title bool
}
