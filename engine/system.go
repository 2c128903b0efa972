package engine

import (
	"sort"
	"time"

	"github.com/lixenwraith/boss-rush/engine/fsm"
)

// Stage is a slot of the frame pipeline
type Stage uint8

const (
	// StageUpdate runs once per frame with the virtual delta
	StageUpdate Stage = iota
	// StageFixedUpdate runs once per fixed step with the step duration
	StageFixedUpdate
	// StagePostUpdate runs once per frame after the fixed-step block
	StagePostUpdate
	stageCount
)

// String returns the stage name
func (s Stage) String() string {
	switch s {
	case StageUpdate:
		return "Update"
	case StageFixedUpdate:
		return "FixedUpdate"
	case StagePostUpdate:
		return "PostUpdate"
	default:
		return "Unknown"
	}
}

// System is a unit of per-frame or per-step logic
type System interface {
	Name() string
	Priority() int // Lower runs first within a stage
	Run(g *Game, dt time.Duration)
}

// Condition gates a system for the current frame
type Condition func(g *Game) bool

// InState runs while the top-level state or sub-state id is active
func InState(id fsm.StateID) Condition {
	return func(g *Game) bool { return g.States.IsActive(id) }
}

// Always runs unconditionally
func Always() Condition {
	return func(*Game) bool { return true }
}

type scheduled struct {
	sys   System
	conds []Condition
}

func (s scheduled) enabled(g *Game) bool {
	for _, c := range s.conds {
		if !c(g) {
			return false
		}
	}
	return true
}

// SystemFunc adapts a function to System
type SystemFunc struct {
	ID    string
	Order int
	Fn    func(g *Game, dt time.Duration)
}

func (f SystemFunc) Name() string                  { return f.ID }
func (f SystemFunc) Priority() int                 { return f.Order }
func (f SystemFunc) Run(g *Game, dt time.Duration) { f.Fn(g, dt) }

func sortScheduled(list []scheduled) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].sys.Priority() < list[j].sys.Priority()
	})
}
