package parameter

import "time"

// Movement defaults in world units, WorldScale maps them to terminal cells
const (
	// PlayerAcceleration is the spawned player's acceleration
	PlayerAcceleration = 1250.0

	// PlayerDamping is the spawned player's per-step velocity retention
	PlayerDamping = 0.92

	// DefaultAcceleration applies to controllers spawned without explicit tuning
	DefaultAcceleration = 30.0

	// DefaultDamping applies to controllers spawned without explicit tuning
	DefaultDamping = 0.9

	// WorldScale converts world units to terminal cells
	WorldScale = 1.0 / 20.0
)

// Obstacle placement and animation
const (
	// TreeX is the obstacle's world X position
	TreeX = 250.0

	// TreeFrames is the number of animation frames of the obstacle sprite
	TreeFrames = 16

	// TreeFrameDuration is the duration of one obstacle animation frame
	TreeFrameDuration = 100 * time.Millisecond
)
