package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/boss-rush/parameter"
)

// Player mixes cues onto the speaker
// Safe for concurrent use; Play is a no-op until Init succeeds
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	volume      float64
	initialized bool
	log         *zap.Logger
}

// NewPlayer creates an uninitialized player at full volume
func NewPlayer(log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	return &Player{
		mixer:  &beep.Mixer{},
		rate:   beep.SampleRate(parameter.AudioSampleRate),
		volume: 1,
		log:    log.Named("audio"),
	}
}

// Init opens the speaker device
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// SetVolume sets the linear effect volume in [0,1]
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = min(max(v, 0), 1)
}

// Volume returns the current linear volume
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Play queues a cue, reports whether it reached the mixer
func (p *Player) Play(c Cue) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.volume <= 0 {
		return false
	}
	s := BuildCue(c, p.rate, p.volume)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	return true
}

// Close silences the mixer
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
	p.log.Debug("audio closed")
}
