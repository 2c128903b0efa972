package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/boss-rush/parameter"
)

// Cue is a short synthesized sound bound to a game moment
type Cue uint8

const (
	CueClick Cue = iota
	CueStart
	CuePause
	CueGameOver
)

var cueNames = map[string]Cue{
	"click":    CueClick,
	"start":    CueStart,
	"pause":    CuePause,
	"gameover": CueGameOver,
}

// ParseCue resolves a cue name used in state bindings
func ParseCue(name string) (Cue, error) {
	c, ok := cueNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown cue %q", name)
	}
	return c, nil
}

// note is one tone of a cue
type note struct {
	freq float64
	dur  time.Duration
}

func (c Cue) notes() []note {
	d := parameter.CueDuration
	switch c {
	case CueStart:
		return []note{{523.25, d}, {659.25, d}, {783.99, 2 * d}} // C5 E5 G5
	case CuePause:
		return []note{{392.00, 2 * d}} // G4
	case CueGameOver:
		return []note{{392.00, d}, {311.13, d}, {261.63, 3 * d}} // G4 Eb4 C4
	default:
		return []note{{880.00, d / 2}} // A5
	}
}

// Duration returns the total length of the cue
func (c Cue) Duration() time.Duration {
	var total time.Duration
	for _, n := range c.notes() {
		total += n.dur
	}
	return total
}

// BuildCue renders a cue as a finite streamer at the given rate and linear volume
func BuildCue(c Cue, rate beep.SampleRate, vol float64) beep.Streamer {
	parts := make([]beep.Streamer, 0, 3)
	for _, n := range c.notes() {
		osc := newOscillator(n.freq, n.dur, rate)
		parts = append(parts, newEnvelope(osc, n.dur, n.dur/10, n.dur/3, rate))
	}
	return newVolume(beep.Seq(parts...), vol)
}

// oscillator generates a sine wave of fixed length
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

func newOscillator(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		val := math.Sin(2 * math.Pi * o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume maps a linear level to beep's log2 volume, zero is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
