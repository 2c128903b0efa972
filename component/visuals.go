package component

import (
	"time"

	"github.com/lixenwraith/boss-rush/vmath"
)

// SpriteComponent references an atlas loaded by the asset server
type SpriteComponent struct {
	Atlas  string // Asset id, e.g. "player/player.atlas"
	Frame  int    // Atlas index
	Facing Facing
	Z      int // Draw order, higher on top
}

// AnimationComponent cycles a sprite through a contiguous frame range
type AnimationComponent struct {
	First, Last int
	FrameTime   time.Duration
	Elapsed     time.Duration
}

// Advance accumulates dt and returns the next frame index relative to current
func (a *AnimationComponent) Advance(current int, dt time.Duration) int {
	if a.FrameTime <= 0 || a.Last <= a.First {
		return a.First
	}
	a.Elapsed += dt
	for a.Elapsed >= a.FrameTime {
		a.Elapsed -= a.FrameTime
		if current >= a.Last || current < a.First {
			current = a.First
		} else {
			current++
		}
	}
	return current
}

// CameraComponent is the view origin in world units
type CameraComponent struct {
	Position vmath.Vec2
}
