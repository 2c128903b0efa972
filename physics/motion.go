package physics

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/boss-rush/component"
	"github.com/lixenwraith/boss-rush/vmath"
)

// Strategy names accepted by NewIntegrator
const (
	StrategyFixed  = "fixed"
	StrategyDirect = "direct"
)

// ErrUnknownStrategy is returned for an unrecognized integrator name
var ErrUnknownStrategy = errors.New("unknown motion strategy")

// Body is the view of one entity the integrator mutates
// Entities lacking a Motion component are never passed in
type Body struct {
	Kinetic *component.KineticComponent
	Motion  *component.MotionComponent
	Input   *component.ControllerComponent
}

// Integrator turns accumulated directional input into velocity and position
// Exactly one of Frame or Fixed does work for a given strategy
type Integrator interface {
	Name() string
	// Frame runs once per render frame with the virtual delta in seconds
	Frame(b Body, dt float64)
	// Fixed runs once per fixed step with the step in seconds
	Fixed(b Body, dt float64)
}

// NewIntegrator resolves a strategy by name, empty selects fixed
func NewIntegrator(name string) (Integrator, error) {
	switch name {
	case StrategyFixed, "":
		return FixedStepMotion{}, nil
	case StrategyDirect:
		return DirectMotion{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// FixedStepMotion consumes the input accumulator once per fixed step and records Previous for interpolation
type FixedStepMotion struct{}

func (FixedStepMotion) Name() string { return StrategyFixed }

func (FixedStepMotion) Frame(Body, float64) {}

func (FixedStepMotion) Fixed(b Body, dt float64) {
	integrate(b, dt)
	// Render transform lerps Previous -> Position by overstep
}

// DirectMotion integrates once per render frame; Previous tracks Position so interpolation is the identity
type DirectMotion struct{}

func (DirectMotion) Name() string { return StrategyDirect }

func (DirectMotion) Frame(b Body, dt float64) {
	if dt <= 0 {
		return
	}
	integrate(b, dt)
	b.Kinetic.Previous = b.Kinetic.Position
}

func (DirectMotion) Fixed(Body, float64) {}

// integrate applies one step: normalized input to velocity, damping, position, then clears the input
func integrate(b Body, dt float64) {
	k := b.Kinetic

	if b.Input != nil {
		if n := vmath.V2Normalize(b.Input.Input); !vmath.V2IsZero(n) {
			k.Velocity = vmath.V2Add(k.Velocity, vmath.V2Scale(n, b.Motion.Acceleration*dt))
		}
	}
	k.Velocity = vmath.V2Scale(k.Velocity, b.Motion.Damping)

	k.Previous = k.Position
	k.Position = vmath.V2Add(k.Position, vmath.V2Scale(k.Velocity, dt))

	if b.Input != nil {
		b.Input.Input = vmath.Vec2{}
	}
}
