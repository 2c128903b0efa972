package system

import (
	"time"

	"github.com/lixenwraith/boss-rush/engine"
	"github.com/lixenwraith/boss-rush/input"
	"github.com/lixenwraith/boss-rush/parameter"
	"github.com/lixenwraith/boss-rush/physics"
	"github.com/lixenwraith/boss-rush/vmath"
)

// InputSampleSystem adds the held direction to every player controller and turns the sprite
// Input accumulates until a motion step consumes it
type InputSampleSystem struct {
	input *input.State
	time  engine.TimeProvider
}

// NewInputSampleSystem creates an input sampling system
func NewInputSampleSystem(g *engine.Game, tp engine.TimeProvider) *InputSampleSystem {
	return &InputSampleSystem{
		input: engine.MustGetResource[*input.State](g.World.Resources),
		time:  tp,
	}
}

func (s *InputSampleSystem) Name() string  { return "input_sample" }
func (s *InputSampleSystem) Priority() int { return parameter.PriorityInputSample }

func (s *InputSampleSystem) Run(g *engine.Game, _ time.Duration) {
	axis := s.input.Axis(s.time.Now())
	if vmath.V2IsZero(axis) {
		return
	}
	facing, turned := physics.FacingOf(axis)

	c := &g.World.Components
	for _, e := range c.Player.All() {
		if ctrl, ok := c.Controller.Get(e); ok {
			ctrl.Input = vmath.V2Add(ctrl.Input, axis)
		}
		if sprite, ok := c.Sprite.Get(e); ok && turned {
			sprite.Facing = facing
			sprite.Frame = facing.Frame()
		}
	}
}

// bodies collects every simulated entity
func bodies(w *engine.World) []physics.Body {
	c := &w.Components
	entities := c.Motion.All()
	out := make([]physics.Body, 0, len(entities))
	for _, e := range entities {
		kin, ok := c.Kinetic.Get(e)
		if !ok {
			continue
		}
		motion, _ := c.Motion.Get(e)
		ctrl, _ := c.Controller.Get(e)
		out = append(out, physics.Body{Kinetic: kin, Motion: motion, Input: ctrl})
	}
	return out
}

// MotionFrameSystem drives per-frame integrators with the virtual delta
type MotionFrameSystem struct {
	integrator physics.Integrator
}

// NewMotionFrameSystem creates the per-frame motion system
func NewMotionFrameSystem(g *engine.Game) *MotionFrameSystem {
	return &MotionFrameSystem{integrator: engine.MustGetResource[physics.Integrator](g.World.Resources)}
}

func (s *MotionFrameSystem) Name() string  { return "motion_frame" }
func (s *MotionFrameSystem) Priority() int { return parameter.PriorityMotionFrame }

func (s *MotionFrameSystem) Run(g *engine.Game, dt time.Duration) {
	for _, b := range bodies(g.World) {
		s.integrator.Frame(b, dt.Seconds())
	}
}

// MotionFixedSystem drives fixed-step integrators once per step
type MotionFixedSystem struct {
	integrator physics.Integrator
}

// NewMotionFixedSystem creates the fixed-step motion system
func NewMotionFixedSystem(g *engine.Game) *MotionFixedSystem {
	return &MotionFixedSystem{integrator: engine.MustGetResource[physics.Integrator](g.World.Resources)}
}

func (s *MotionFixedSystem) Name() string  { return "motion_fixed" }
func (s *MotionFixedSystem) Priority() int { return parameter.PriorityMotionFixed }

func (s *MotionFixedSystem) Run(g *engine.Game, dt time.Duration) {
	for _, b := range bodies(g.World) {
		s.integrator.Fixed(b, dt.Seconds())
	}
}

// InterpolateSystem derives the render transform between the last two simulated positions
type InterpolateSystem struct{}

// NewInterpolateSystem creates the interpolation system
func NewInterpolateSystem(*engine.Game) *InterpolateSystem {
	return &InterpolateSystem{}
}

func (s *InterpolateSystem) Name() string  { return "interpolate" }
func (s *InterpolateSystem) Priority() int { return parameter.PriorityInterpolate }

func (s *InterpolateSystem) Run(g *engine.Game, _ time.Duration) {
	c := &g.World.Components
	alpha := g.Overstep()
	for _, e := range c.Kinetic.All() {
		kin, _ := c.Kinetic.Get(e)
		if tf, ok := c.Transform.Get(e); ok && kin != nil {
			tf.Position = vmath.V2Lerp(kin.Previous, kin.Position, alpha)
		}
	}
}

// CameraSystem eases every camera toward the player's render position
type CameraSystem struct{}

// NewCameraSystem creates the camera follow system
func NewCameraSystem(*engine.Game) *CameraSystem {
	return &CameraSystem{}
}

func (s *CameraSystem) Name() string  { return "camera" }
func (s *CameraSystem) Priority() int { return parameter.PriorityCamera }

func (s *CameraSystem) Run(g *engine.Game, dt time.Duration) {
	c := &g.World.Components
	players := c.Player.All()
	if len(players) == 0 {
		return
	}
	target, ok := c.Transform.Get(players[0])
	if !ok {
		return
	}
	for _, e := range c.Camera.All() {
		cam, _ := c.Camera.Get(e)
		cam.Position = vmath.SmoothNudge(cam.Position, target.Position, parameter.CameraDecayRate, dt.Seconds())
	}
}

// AnimationSystem advances frame-cycling sprites by virtual time
type AnimationSystem struct{}

// NewAnimationSystem creates the animation system
func NewAnimationSystem(*engine.Game) *AnimationSystem {
	return &AnimationSystem{}
}

func (s *AnimationSystem) Name() string  { return "animation" }
func (s *AnimationSystem) Priority() int { return parameter.PriorityAnimation }

func (s *AnimationSystem) Run(g *engine.Game, dt time.Duration) {
	c := &g.World.Components
	for _, e := range c.Animation.All() {
		anim, _ := c.Animation.Get(e)
		if sprite, ok := c.Sprite.Get(e); ok {
			sprite.Frame = anim.Advance(sprite.Frame, dt)
		}
	}
}
