package engine

import "time"

// FixedStep decouples simulation from the frame rate with a time accumulator
// Each Advance runs zero or more steps of exactly Step and keeps the remainder for the next frame
type FixedStep struct {
	step     time.Duration
	maxSteps int // 0 = unbounded catch-up

	acc     time.Duration
	steps   uint64
	dropped uint64
}

// NewFixedStep creates a scheduler; maxSteps caps steps per Advance, 0 disables the cap
func NewFixedStep(step time.Duration, maxSteps int) *FixedStep {
	if step <= 0 {
		panic("fixed step must be positive")
	}
	if maxSteps < 0 {
		maxSteps = 0
	}
	return &FixedStep{step: step, maxSteps: maxSteps}
}

// Advance adds frame to the accumulator and runs fn once per whole step available
// When the cap is hit the excess whole steps are discarded, the fractional remainder is kept
func (f *FixedStep) Advance(frame time.Duration, fn func(dt time.Duration)) int {
	if frame > 0 {
		f.acc += frame
	}

	n := 0
	for f.acc >= f.step {
		if f.maxSteps > 0 && n >= f.maxSteps {
			excess := f.acc / f.step
			f.acc -= excess * f.step
			f.dropped += uint64(excess)
			break
		}
		fn(f.step)
		f.acc -= f.step
		n++
	}
	f.steps += uint64(n)
	return n
}

// Overstep is the fraction of a step left in the accumulator, in [0,1)
func (f *FixedStep) Overstep() float64 {
	return float64(f.acc) / float64(f.step)
}

// Step returns the fixed step duration
func (f *FixedStep) Step() time.Duration {
	return f.step
}

// Accumulated returns the unconsumed time
func (f *FixedStep) Accumulated() time.Duration {
	return f.acc
}

// Steps returns the total number of steps executed
func (f *FixedStep) Steps() uint64 {
	return f.steps
}

// Dropped returns the total number of steps discarded by the cap
func (f *FixedStep) Dropped() uint64 {
	return f.dropped
}

// Reset empties the accumulator
func (f *FixedStep) Reset() {
	f.acc = 0
}
