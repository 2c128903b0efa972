package parameter

import "time"

// Audio cue synthesis
const (
	// AudioSampleRate is the speaker sample rate
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// CueDuration is the length of a synthesized cue
	CueDuration = 60 * time.Millisecond
)
