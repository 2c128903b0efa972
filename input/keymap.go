package input

import "github.com/gdamore/tcell/v2"

// keyEntry describes what a key produces: a held direction, a discrete intent, or both
type keyEntry struct {
	dir    Direction
	hasDir bool
	intent IntentType
}

// specialKeys maps non-rune keys
var specialKeys = map[tcell.Key]keyEntry{
	tcell.KeyUp:      {dir: DirUp, hasDir: true, intent: IntentMenuUp},
	tcell.KeyDown:    {dir: DirDown, hasDir: true, intent: IntentMenuDown},
	tcell.KeyLeft:    {dir: DirLeft, hasDir: true},
	tcell.KeyRight:   {dir: DirRight, hasDir: true},
	tcell.KeyEscape:  {intent: IntentEscape},
	tcell.KeyEnter:   {intent: IntentConfirm},
	tcell.KeyTab:     {intent: IntentMenuDown},
	tcell.KeyBacktab: {intent: IntentMenuUp},
	tcell.KeyCtrlC:   {intent: IntentQuit},
	tcell.KeyCtrlQ:   {intent: IntentQuit},
	tcell.KeyF1:      {intent: IntentToggleDebug},
}

// runeKeys maps movement runes, WASD and vi keys
var runeKeys = map[rune]keyEntry{
	'w': {dir: DirUp, hasDir: true},
	's': {dir: DirDown, hasDir: true},
	'a': {dir: DirLeft, hasDir: true},
	'd': {dir: DirRight, hasDir: true},
	'k': {dir: DirUp, hasDir: true, intent: IntentMenuUp},
	'j': {dir: DirDown, hasDir: true, intent: IntentMenuDown},
	'h': {dir: DirLeft, hasDir: true},
	'l': {dir: DirRight, hasDir: true},
	' ': {intent: IntentConfirm},
}
