package status

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every exported metric
const Namespace = "bossrush"

// Registry is the central metrics facade
// Systems cache collector pointers during init; frame loops write directly to them
type Registry struct {
	reg *prometheus.Registry

	Frames        prometheus.Counter
	Steps         prometheus.Counter
	DroppedSteps  prometheus.Counter
	StepsPerFrame prometheus.Histogram
	FrameSeconds  prometheus.Histogram

	Transitions *prometheus.CounterVec
	Rejections  *prometheus.CounterVec
	Purged      prometheus.Counter

	Entities     prometheus.Gauge
	LoadProgress prometheus.Gauge
	AssetLoads   *prometheus.CounterVec
}

// NewRegistry creates a Registry backed by its own prometheus registry
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		Frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "frames_total",
			Help:      "Number of frames executed",
		}),
		Steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "fixed_steps_total",
			Help:      "Number of fixed simulation steps executed",
		}),
		DroppedSteps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "fixed_steps_dropped_total",
			Help:      "Whole steps discarded by the catch-up cap",
		}),
		StepsPerFrame: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "fixed_steps_per_frame",
			Help:      "Fixed steps executed within one frame",
			Buckets:   []float64{0, 1, 2, 3, 4, 8, 16},
		}),
		FrameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "frame_seconds",
			Help:      "Real time between frames",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
		}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "state_transitions_total",
			Help:      "Applied state transitions",
		}, []string{"from", "to"}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "state_rejections_total",
			Help:      "Dropped transition requests",
		}, []string{"target", "reason"}),
		Purged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "scoped_entities_purged_total",
			Help:      "Entities destroyed by scope purges",
		}),
		Entities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "entities",
			Help:      "Live entities",
		}),
		LoadProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "load_progress_ratio",
			Help:      "Fraction of tracked items ready",
		}),
		AssetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "asset_loads_total",
			Help:      "Asset load results by outcome",
		}, []string{"result"}),
	}

	r.reg.MustRegister(
		r.Frames,
		r.Steps,
		r.DroppedSteps,
		r.StepsPerFrame,
		r.FrameSeconds,
		r.Transitions,
		r.Rejections,
		r.Purged,
		r.Entities,
		r.LoadProgress,
		r.AssetLoads,
	)
	return r
}

// Transitioned counts an applied state change
func (r *Registry) Transitioned(from, to string) {
	r.Transitions.WithLabelValues(from, to).Inc()
}

// Rejected counts a dropped transition request, reason is the innermost error text
func (r *Registry) Rejected(target string, err error) {
	reason := "unknown"
	if err != nil {
		for e := err; e != nil; e = errors.Unwrap(e) {
			reason = e.Error()
		}
	}
	r.Rejections.WithLabelValues(target, reason).Inc()
}

// Gatherer exposes the underlying registry for scraping and tests
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Handler serves the registry in the prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
