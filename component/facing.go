package component

// Facing is the cardinal direction a sprite is drawn in
type Facing uint8

const (
	FacingDown Facing = iota
	FacingUp
	FacingLeft
	FacingRight
)

// Atlas frame indexes of the character sheet for each facing
const (
	FrameLeft  = 20
	FrameDown  = 21
	FrameUp    = 22
	FrameRight = 23
)

// Frame returns the atlas index for this facing
func (f Facing) Frame() int {
	switch f {
	case FacingUp:
		return FrameUp
	case FacingLeft:
		return FrameLeft
	case FacingRight:
		return FrameRight
	default:
		return FrameDown
	}
}

// String returns a short direction name
func (f Facing) String() string {
	switch f {
	case FacingUp:
		return "up"
	case FacingLeft:
		return "left"
	case FacingRight:
		return "right"
	default:
		return "down"
	}
}
