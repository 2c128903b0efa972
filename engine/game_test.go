package engine

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lixenwraith/boss-rush/engine/fsm"
)

const pauseBindings = `
[states.Paused]
on_enter = [{ action = "PauseTime" }]
on_exit = [{ action = "ResumeTime" }]
`

func newTestGame(t *testing.T) (*Game, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	g := NewGame(GameConfig{Step: time.Second / 60, MaxSteps: 8, Log: zap.New(core)})
	if err := g.States.LoadBindings([]byte(pauseBindings)); err != nil {
		t.Fatalf("LoadBindings: %v", err)
	}
	if err := g.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return g, logs
}

func TestGameStartsInLoading(t *testing.T) {
	g, _ := newTestGame(t)
	if g.States.Current() != StateLoading {
		t.Errorf("Current = %s, want Loading", g.States.Name(g.States.Current()))
	}
	if _, ok := g.States.CurrentSub(StateMenu); ok {
		t.Error("Menu sub-machine exists while Loading")
	}
}

func TestFrameAppliesTransitionBeforeSystems(t *testing.T) {
	g, _ := newTestGame(t)

	var ran []string
	g.AddSystem(StageUpdate, SystemFunc{ID: "menu", Fn: func(*Game, time.Duration) {
		ran = append(ran, "menu")
	}}, InState(StateMenu))
	g.AddSystem(StageUpdate, SystemFunc{ID: "screen", Order: 1, Fn: func(*Game, time.Duration) {
		ran = append(ran, "screen")
	}}, InState(SubMainScreen))

	_ = g.States.RequestTransition(StateMenu)
	g.Frame(time.Millisecond)

	if want := []string{"menu", "screen"}; !reflect.DeepEqual(ran, want) {
		t.Errorf("systems ran %v, want %v", ran, want)
	}
}

func TestSystemPriorityOrder(t *testing.T) {
	g, _ := newTestGame(t)
	var ran []string
	add := func(name string, prio int) {
		g.AddSystem(StagePostUpdate, SystemFunc{ID: name, Order: prio, Fn: func(*Game, time.Duration) {
			ran = append(ran, name)
		}})
	}
	add("camera", 20)
	add("interpolate", 10)
	add("animate", 30)

	g.Frame(0)
	if want := []string{"interpolate", "camera", "animate"}; !reflect.DeepEqual(ran, want) {
		t.Errorf("order = %v, want %v", ran, want)
	}
}

func TestScopedEntitiesPurgedOnExit(t *testing.T) {
	g, _ := newTestGame(t)

	loadingUI, _ := g.Spawn(StateLoading)
	persistent := g.World.CreateEntity()

	_ = g.States.RequestTransition(StateMenu)
	g.Frame(0)

	if g.World.Alive(loadingUI) {
		t.Error("Loading-scoped entity survived exit")
	}
	if !g.World.Alive(persistent) {
		t.Error("unscoped entity destroyed")
	}
	if got := testutil.ToFloat64(g.Metrics.Purged); got != 1 {
		t.Errorf("purged metric = %v, want 1", got)
	}
	if got := testutil.ToFloat64(g.Metrics.Transitions.WithLabelValues("Loading", "Menu")); got != 1 {
		t.Errorf("transition metric = %v, want 1", got)
	}
}

func TestPauseStopsFixedSteps(t *testing.T) {
	g, _ := newTestGame(t)

	steps := 0
	g.AddSystem(StageFixedUpdate, SystemFunc{ID: "count", Fn: func(*Game, time.Duration) {
		steps++
	}}, InState(SubRunning))

	_ = g.States.RequestTransition(StateInGame)
	g.Frame(time.Second / 30)
	if steps != 2 {
		t.Fatalf("running steps = %d, want 2", steps)
	}

	_ = g.States.RequestSubTransition(SubPaused)
	g.Frame(time.Second / 30)
	g.Frame(time.Second / 30)
	if steps != 2 {
		t.Errorf("steps advanced while paused: %d", steps)
	}
	if !g.Clock.IsPaused() {
		t.Error("virtual clock not paused")
	}

	_ = g.States.RequestSubTransition(SubRunning)
	g.Frame(time.Second / 30)
	if steps != 4 {
		t.Errorf("steps after resume = %d, want 4", steps)
	}
}

func TestLeavingInGameWhilePausedResumesTime(t *testing.T) {
	g, _ := newTestGame(t)
	_ = g.States.RequestTransition(StateInGame)
	g.Frame(0)
	_ = g.States.RequestSubTransition(SubPaused)
	g.Frame(0)

	_ = g.States.RequestTransition(StateMenu)
	g.Frame(0)
	if g.Clock.IsPaused() {
		t.Error("clock still paused after leaving InGame from Paused")
	}
}

func TestInvalidRequestIsDiagnosticOnly(t *testing.T) {
	g, logs := newTestGame(t)

	err := g.States.RequestSubTransition(SubPaused)
	if !errors.Is(err, fsm.ErrParentInactive) {
		t.Fatalf("err = %v, want ErrParentInactive", err)
	}
	g.Frame(0)

	if g.States.Current() != StateLoading {
		t.Error("state changed after rejected request")
	}
	if n := logs.FilterMessage("transition request rejected").Len(); n != 1 {
		t.Errorf("rejection warnings = %d, want 1", n)
	}
	if got := testutil.ToFloat64(g.Metrics.Rejections.WithLabelValues("Paused", fsm.ErrParentInactive.Error())); got != 1 {
		t.Errorf("rejection metric = %v, want 1", got)
	}
}

func TestFrameMetrics(t *testing.T) {
	g, _ := newTestGame(t)
	g.Frame(time.Second / 30)
	g.Frame(time.Second / 30)

	if got := testutil.ToFloat64(g.Metrics.Frames); got != 2 {
		t.Errorf("frames = %v", got)
	}
	if got := testutil.ToFloat64(g.Metrics.Steps); got != 4 {
		t.Errorf("steps = %v, want 4", got)
	}
	if g.FrameNumber() != 2 || g.LastSteps() != 2 {
		t.Errorf("FrameNumber=%d LastSteps=%d", g.FrameNumber(), g.LastSteps())
	}
}
