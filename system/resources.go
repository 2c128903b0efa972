package system

import (
	"context"
	"io/fs"

	"github.com/lixenwraith/boss-rush/asset"
	"github.com/lixenwraith/boss-rush/audio"
	"github.com/lixenwraith/boss-rush/config"
	"github.com/lixenwraith/boss-rush/engine"
	"github.com/lixenwraith/boss-rush/input"
	"github.com/lixenwraith/boss-rush/physics"
)

// CuePlayer plays short sound cues
type CuePlayer interface {
	Play(c audio.Cue) bool
}

// Loading owns asset loading for the Loading state
// Results are consumed only by LoadingSystem on the frame goroutine
type Loading struct {
	Server   *asset.Server
	Tracker  *asset.Tracker
	Library  *asset.Library
	Manifest []string

	results <-chan asset.Result
	cancel  context.CancelFunc
}

// Menu tracks keyboard focus among the visible buttons
type Menu struct {
	Focus   int
	version uint64
}

// HUD holds overlay state shown over the world view
type HUD struct {
	Debug bool
	FPS   float64
}

// Tuning is the motion configuration given to spawned players
type Tuning struct {
	Acceleration float64
	Damping      float64
}

// Deps are the collaborators installed as game resources
type Deps struct {
	Input      *input.State
	Time       engine.TimeProvider
	Assets     fs.FS
	Manifest   []string     // Defaults to asset.Manifest()
	Spawn      func(func()) // Goroutine launcher for asset loading
	Settings   *config.Settings
	Audio      CuePlayer // Optional
	Integrator physics.Integrator
	Tuning     Tuning
}

type nopPlayer struct{}

func (nopPlayer) Play(audio.Cue) bool { return false }
