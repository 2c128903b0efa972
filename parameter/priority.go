package parameter

// System priorities, lower runs first within a stage
const (
	// Update stage
	PriorityInput       = 0
	PriorityLoading     = 10
	PriorityButtons     = 20
	PriorityPause       = 30
	PrioritySession     = 35
	PriorityInputSample = 40
	PriorityMotionFrame = 50

	// FixedUpdate stage
	PriorityMotionFixed = 10

	// PostUpdate stage
	PriorityInterpolate = 10
	PriorityCamera      = 20
	PriorityAnimation   = 30
)
