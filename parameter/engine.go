package parameter

import "time"

// Frame Loop & Simulation Timing
const (
	// FixedHz is the simulation rate of the fixed-step block
	FixedHz = 60

	// FixedStep is the fixed simulation delta derived from FixedHz
	FixedStep = time.Second / FixedHz

	// MaxStepsPerFrame caps catch-up steps after a stall, 0 disables the cap
	MaxStepsPerFrame = 8

	// FrameIntervalVSync paces render frames when vsync is enabled (~60 FPS)
	FrameIntervalVSync = 16 * time.Millisecond

	// FrameIntervalNoVSync paces render frames when vsync is disabled (~240 FPS)
	FrameIntervalNoVSync = 4 * time.Millisecond

	// MaxFrameDelta bounds a single measured frame delta, a suspended process must not replay hours of simulation
	MaxFrameDelta = 5 * time.Second
)

// Asset Loading
const (
	// AssetLoadConcurrency is the number of concurrent asset reads
	AssetLoadConcurrency = 4

	// AssetResultBuffer is the capacity of the load result channel
	AssetResultBuffer = 16
)

// Terminal events
const (
	// EventQueueSize buffers terminal events between the poller and the frame loop
	EventQueueSize = 256

	// ShutdownTimeout bounds the metrics server shutdown
	ShutdownTimeout = 2 * time.Second

	// DevLogFile receives development logs when no log file is configured
	DevLogFile = "boss-rush-dev.log"
)
