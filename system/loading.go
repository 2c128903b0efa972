package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/boss-rush/engine"
	"github.com/lixenwraith/boss-rush/parameter"
)

// LoadingSystem drains asset results without blocking and fires the completion gate
type LoadingSystem struct {
	loading *Loading
}

// NewLoadingSystem creates a loading system bound to the game's Loading resource
func NewLoadingSystem(g *engine.Game) *LoadingSystem {
	return &LoadingSystem{
		loading: engine.MustGetResource[*Loading](g.World.Resources),
	}
}

func (s *LoadingSystem) Name() string  { return "loading" }
func (s *LoadingSystem) Priority() int { return parameter.PriorityLoading }

func (s *LoadingSystem) Run(g *engine.Game, _ time.Duration) {
	l := s.loading
	if l.results != nil {
	drain:
		for {
			select {
			case res, ok := <-l.results:
				if !ok {
					l.results = nil
					break drain
				}
				s.resolve(g, res.ID, res.Data, res.Err)
			default:
				break drain
			}
		}
	}

	g.Metrics.LoadProgress.Set(float64(l.Tracker.Fraction()))
	// Gate: onComplete runs at most once per Reset
	l.Tracker.Poll()
}

func (s *LoadingSystem) resolve(g *engine.Game, id string, data []byte, loadErr error) {
	l := s.loading
	if loadErr == nil {
		loadErr = l.Library.Add(id, data)
	}
	if loadErr != nil {
		g.Log.Warn("asset failed", zap.String("id", id), zap.Error(loadErr))
		g.Metrics.AssetLoads.WithLabelValues("failed").Inc()
		if err := l.Tracker.MarkFailed(id); err != nil {
			g.Log.Debug("tracker", zap.Error(err))
		}
		return
	}
	g.Metrics.AssetLoads.WithLabelValues("ready").Inc()
	if err := l.Tracker.MarkReady(id); err != nil {
		g.Log.Debug("tracker", zap.Error(err))
	}
}
