package parameter

// Input hold window, terminals report key repeats instead of key-up
const (
	// KeyHoldMillis is how long a direction stays held after its last press/repeat
	KeyHoldMillis = 150
)

// Loading bar geometry as fraction of screen width
const (
	LoadingBarMarginFraction = 0.2
)

// Session keys
const (
	// GameOverKey ends a running level
	GameOverKey = 'x'

	// FPSSmoothing is the exponential moving average weight of a new FPS sample
	FPSSmoothing = 0.1
)

// World view
const (
	// CellAspect scales world Y to rows, terminal cells are about twice as tall as wide
	CellAspect = 0.5

	// GroundSpacingX and GroundSpacingY place ground marks in cells
	GroundSpacingX = 8
	GroundSpacingY = 4

	// MenuButtonGap is the row offset of the first button below screen center
	MenuButtonGap = 1
)
