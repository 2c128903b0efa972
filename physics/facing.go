package physics

import (
	"math"

	"github.com/lixenwraith/boss-rush/component"
	"github.com/lixenwraith/boss-rush/vmath"
)

// FacingOf picks the facing from the dominant axis of v
// Ties favor the vertical axis; ok is false for a zero vector
func FacingOf(v vmath.Vec2) (component.Facing, bool) {
	ax, ay := math.Abs(v.X), math.Abs(v.Y)
	switch {
	case ax == 0 && ay == 0:
		return component.FacingDown, false
	case ay >= ax && v.Y > 0:
		return component.FacingUp, true
	case ay >= ax:
		return component.FacingDown, true
	case v.X > 0:
		return component.FacingRight, true
	default:
		return component.FacingLeft, true
	}
}
