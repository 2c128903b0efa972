package component

import "github.com/lixenwraith/boss-rush/vmath"

// KineticComponent holds the authoritative simulation state of a moving entity
// Position is only written inside fixed steps; Previous is the position one step earlier
type KineticComponent struct {
	Position vmath.Vec2
	Previous vmath.Vec2
	Velocity vmath.Vec2
}

// Teleport moves an entity without interpolating across the jump
func (k *KineticComponent) Teleport(p vmath.Vec2) {
	k.Position = p
	k.Previous = p
}

// MotionComponent carries per-entity tuning; entities without it are not simulated
type MotionComponent struct {
	Acceleration float64 // World units per second squared
	Damping      float64 // Velocity multiplier applied once per step, in (0,1)
}

// ControllerComponent accumulates directional intent between fixed steps
// Input is reset after each step that consumes it
type ControllerComponent struct {
	Input vmath.Vec2
}

// TransformComponent is the render-facing position, derived each frame and never fed back into simulation
type TransformComponent struct {
	Position vmath.Vec2
}
