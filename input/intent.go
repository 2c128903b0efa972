package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit   // Ctrl+Q, Ctrl+C
	IntentEscape // ESC key (context-dependent: pause, back)
	IntentResize // Terminal resize event

	// Menu navigation
	IntentMenuUp   // Up, k, Shift+Tab
	IntentMenuDown // Down, j, Tab
	IntentConfirm  // Enter, Space

	// Printable key, matched against button hotkeys
	IntentRune

	// Debug overlay toggle
	IntentToggleDebug // F1
)

// Intent is one discrete key action queued for the next frame
type Intent struct {
	Type IntentType
	Rune rune
}

// Direction is a held movement key group
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
	dirCount
)
