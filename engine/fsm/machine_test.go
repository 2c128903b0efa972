package fsm

import (
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	tLoading StateID = iota + 1
	tMenu
	tInGame
	tGameOver
	tMainScreen
	tSettings
	tRunning
	tPaused
)

// recorder is the action context, it collects a trace of lifecycle calls
type recorder struct {
	trace []string
}

func (r *recorder) add(s string) { r.trace = append(r.trace, s) }

type fakePurger struct {
	m      *Machine[*recorder]
	rec    *recorder
	scopes []StateID
}

func (p *fakePurger) PurgeScope(scope StateID) {
	p.scopes = append(p.scopes, scope)
	// Current must still hold the old value while purging
	p.rec.add("purge:" + p.m.Name(scope) + "@" + p.m.Name(p.m.Current()))
}

type fakeObserver struct {
	transitions []string
	rejections  []error
}

func (o *fakeObserver) Transitioned(from, to string) {
	o.transitions = append(o.transitions, from+"->"+to)
}

func (o *fakeObserver) Rejected(target string, err error) {
	o.rejections = append(o.rejections, err)
}

type harness struct {
	m      *Machine[*recorder]
	rec    *recorder
	purger *fakePurger
	obs    *fakeObserver
	logs   *observer.ObservedLogs
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	m := NewMachine[*recorder](zap.New(core))
	rec := &recorder{}

	m.MustAddState(tLoading, "Loading", StateNone)
	m.MustAddState(tMenu, "Menu", StateNone)
	m.MustAddState(tInGame, "InGame", StateNone)
	m.MustAddState(tGameOver, "GameOver", StateNone)
	m.MustAddState(tMainScreen, "MainScreen", tMenu)
	m.MustAddState(tSettings, "Settings", tMenu)
	m.MustAddState(tRunning, "Running", tInGame)
	m.MustAddState(tPaused, "Paused", tInGame)

	if err := m.SetDefault(tLoading); err != nil {
		t.Fatalf("SetDefault: %v", err)
	}

	for _, id := range m.States() {
		name := m.Name(id)
		_ = m.OnEnter(id, "trace", func(r *recorder, _ any) { r.add("enter:" + name) }, nil)
		_ = m.OnExit(id, "trace", func(r *recorder, _ any) { r.add("exit:" + name) }, nil)
	}

	p := &fakePurger{m: m, rec: rec}
	o := &fakeObserver{}
	m.SetPurger(p)
	m.SetObserver(o)

	if err := m.Init(rec); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return &harness{m: m, rec: rec, purger: p, obs: o, logs: logs}
}

// goTo applies a single top-level transition and clears the trace
func (h *harness) goTo(t *testing.T, id StateID) {
	t.Helper()
	if err := h.m.RequestTransition(id); err != nil {
		t.Fatalf("RequestTransition(%s): %v", h.m.Name(id), err)
	}
	h.m.Apply(h.rec)
	h.rec.trace = nil
}

func TestInitEntersInitialState(t *testing.T) {
	h := newHarness(t)

	if h.m.Current() != tLoading {
		t.Fatalf("Current() = %s, want Loading", h.m.Name(h.m.Current()))
	}
	if !reflect.DeepEqual(h.rec.trace, []string{"enter:Loading"}) {
		t.Errorf("init trace = %v", h.rec.trace)
	}
	if _, ok := h.m.CurrentSub(tInGame); ok {
		t.Error("InGame sub-state must not exist while Loading is current")
	}
}

func TestLastWriterWins(t *testing.T) {
	h := newHarness(t)
	h.rec.trace = nil

	for _, id := range []StateID{tMenu, tInGame, tGameOver} {
		if err := h.m.RequestTransition(id); err != nil {
			t.Fatalf("RequestTransition: %v", err)
		}
	}

	// Nothing applied before the fixed point
	if h.m.Current() != tLoading {
		t.Fatalf("request applied immediately, current = %s", h.m.Name(h.m.Current()))
	}

	if n := h.m.Apply(h.rec); n != 1 {
		t.Errorf("Apply() = %d transitions, want 1", n)
	}
	if h.m.Current() != tGameOver {
		t.Fatalf("Current() = %s, want GameOver", h.m.Name(h.m.Current()))
	}

	want := []string{"exit:Loading", "purge:Loading@Loading", "enter:GameOver"}
	if !reflect.DeepEqual(h.rec.trace, want) {
		t.Errorf("trace = %v, want %v", h.rec.trace, want)
	}
	if !reflect.DeepEqual(h.obs.transitions, []string{"Loading->GameOver"}) {
		t.Errorf("observer transitions = %v", h.obs.transitions)
	}
}

func TestTransitionOrdering(t *testing.T) {
	h := newHarness(t)
	h.goTo(t, tInGame)

	if sub, ok := h.m.CurrentSub(tInGame); !ok || sub != tRunning {
		t.Fatalf("CurrentSub(InGame) = %s,%v want Running", h.m.Name(sub), ok)
	}

	if err := h.m.RequestTransition(tMenu); err != nil {
		t.Fatal(err)
	}
	h.m.Apply(h.rec)

	want := []string{
		"exit:Running",
		"exit:InGame",
		"purge:InGame@InGame",
		"enter:Menu",
		"enter:MainScreen",
	}
	if !reflect.DeepEqual(h.rec.trace, want) {
		t.Errorf("trace = %v\nwant    %v", h.rec.trace, want)
	}
	if _, ok := h.m.CurrentSub(tInGame); ok {
		t.Error("InGame sub-machine survived parent exit")
	}
}

func TestSubTransition(t *testing.T) {
	h := newHarness(t)
	h.goTo(t, tInGame)

	if err := h.m.RequestSubTransition(tPaused); err != nil {
		t.Fatalf("RequestSubTransition: %v", err)
	}
	before := h.m.Version()
	h.m.Apply(h.rec)

	if sub, _ := h.m.CurrentSub(tInGame); sub != tPaused {
		t.Fatalf("CurrentSub = %s, want Paused", h.m.Name(sub))
	}
	want := []string{"exit:Running", "purge:Running@InGame", "enter:Paused"}
	if !reflect.DeepEqual(h.rec.trace, want) {
		t.Errorf("trace = %v, want %v", h.rec.trace, want)
	}
	if h.m.Version() != before+1 {
		t.Errorf("version %d -> %d, want +1", before, h.m.Version())
	}
	if !h.m.IsActive(tPaused) || h.m.IsActive(tRunning) {
		t.Error("IsActive disagrees with CurrentSub")
	}
}

func TestSubRequestWithInactiveParent(t *testing.T) {
	h := newHarness(t)
	h.goTo(t, tMenu)

	err := h.m.RequestSubTransition(tPaused)
	if !errors.Is(err, ErrParentInactive) {
		t.Fatalf("err = %v, want ErrParentInactive", err)
	}
	if h.m.Pending() {
		t.Error("rejected request was buffered")
	}
	if n := h.m.Apply(h.rec); n != 0 {
		t.Errorf("Apply() = %d, want 0", n)
	}
	if _, ok := h.m.CurrentSub(tInGame); ok {
		t.Error("sub-state became queryable under inactive parent")
	}
	if sub, _ := h.m.CurrentSub(tMenu); sub != tMainScreen {
		t.Errorf("unrelated sub-machine changed to %s", h.m.Name(sub))
	}

	if len(h.obs.rejections) != 1 {
		t.Errorf("observer saw %d rejections, want 1", len(h.obs.rejections))
	}
	if got := h.logs.FilterMessage("transition request rejected").Len(); got != 1 {
		t.Errorf("diagnostic logged %d times, want 1", got)
	}
}

func TestInvalidRequests(t *testing.T) {
	h := newHarness(t)
	h.goTo(t, tInGame)

	tests := []struct {
		name    string
		request func() error
		want    error
	}{
		{"unknown top", func() error { return h.m.RequestTransition(StateID(99)) }, ErrUnknownState},
		{"unknown sub", func() error { return h.m.RequestSubTransition(StateID(99)) }, ErrUnknownState},
		{"sub as top", func() error { return h.m.RequestTransition(tPaused) }, ErrNotTopLevel},
		{"top as sub", func() error { return h.m.RequestSubTransition(tMenu) }, ErrNotSubState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.request(); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if h.m.Pending() {
		t.Error("invalid requests left something buffered")
	}
	if h.m.Current() != tInGame {
		t.Errorf("current changed to %s", h.m.Name(h.m.Current()))
	}
}

func TestReenterResetsSubState(t *testing.T) {
	h := newHarness(t)
	h.goTo(t, tInGame)

	if err := h.m.RequestSubTransition(tPaused); err != nil {
		t.Fatal(err)
	}
	h.m.Apply(h.rec)

	h.goTo(t, tGameOver)
	h.goTo(t, tInGame)

	if sub, ok := h.m.CurrentSub(tInGame); !ok || sub != tRunning {
		t.Errorf("re-entered InGame with sub %s, want default Running", h.m.Name(sub))
	}
}

func TestStaleSubRequestDropped(t *testing.T) {
	h := newHarness(t)
	h.goTo(t, tInGame)

	// Top-level request first, sub request second: parent is gone when the sub request applies
	if err := h.m.RequestTransition(tMenu); err != nil {
		t.Fatal(err)
	}
	if err := h.m.RequestSubTransition(tPaused); err != nil {
		t.Fatalf("sub request while parent current: %v", err)
	}

	if n := h.m.Apply(h.rec); n != 1 {
		t.Errorf("Apply() = %d, want 1", n)
	}
	if h.m.Current() != tMenu {
		t.Errorf("current = %s, want Menu", h.m.Name(h.m.Current()))
	}
	if len(h.obs.rejections) != 1 || !errors.Is(h.obs.rejections[0], ErrParentInactive) {
		t.Errorf("rejections = %v, want one ErrParentInactive", h.obs.rejections)
	}
}

func TestSubThenTopInRequestOrder(t *testing.T) {
	h := newHarness(t)
	h.goTo(t, tInGame)

	_ = h.m.RequestSubTransition(tPaused)
	_ = h.m.RequestTransition(tGameOver)
	h.m.Apply(h.rec)

	want := []string{
		"exit:Running", "purge:Running@InGame", "enter:Paused",
		"exit:Paused", "exit:InGame", "purge:InGame@InGame", "enter:GameOver",
	}
	if !reflect.DeepEqual(h.rec.trace, want) {
		t.Errorf("trace = %v\nwant    %v", h.rec.trace, want)
	}
}

func TestIdentityRequestIsNoop(t *testing.T) {
	h := newHarness(t)
	h.goTo(t, tInGame)
	version := h.m.Version()

	if err := h.m.RequestTransition(tInGame); err != nil {
		t.Fatal(err)
	}
	if n := h.m.Apply(h.rec); n != 0 {
		t.Errorf("identity transition counted as %d changes", n)
	}
	if len(h.rec.trace) != 0 {
		t.Errorf("identity transition ran actions: %v", h.rec.trace)
	}
	if h.m.Version() != version {
		t.Error("identity transition bumped version")
	}
}

func TestRequestsFromActionsDeferred(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	m := NewMachine[*recorder](zap.New(core))
	m.MustAddState(tLoading, "Loading", StateNone)
	m.MustAddState(tMenu, "Menu", StateNone)
	m.MustAddState(tInGame, "InGame", StateNone)

	// Entering Menu immediately asks for InGame
	_ = m.OnEnter(tMenu, "chain", func(r *recorder, _ any) {
		_ = m.RequestTransition(tInGame)
	}, nil)

	rec := &recorder{}
	if err := m.Init(rec); err != nil {
		t.Fatal(err)
	}

	_ = m.RequestTransition(tMenu)
	if n := m.Apply(rec); n != 1 {
		t.Fatalf("first Apply() = %d, want 1", n)
	}
	if m.Current() != tMenu {
		t.Fatalf("current = %s, want Menu (chained request must wait a frame)", m.Name(m.Current()))
	}
	if !m.Pending() {
		t.Fatal("chained request was lost")
	}

	m.Apply(rec)
	if m.Current() != tInGame {
		t.Errorf("current = %s, want InGame", m.Name(m.Current()))
	}
}

func TestAddStateValidation(t *testing.T) {
	m := NewMachine[*recorder](nil)
	m.MustAddState(tMenu, "Menu", StateNone)
	m.MustAddState(tMainScreen, "MainScreen", tMenu)

	tests := []struct {
		name   string
		id     StateID
		sname  string
		parent StateID
		want   error
	}{
		{"duplicate id", tMenu, "Other", StateNone, ErrDuplicateState},
		{"duplicate name", tInGame, "Menu", StateNone, ErrDuplicateState},
		{"missing parent", tRunning, "Running", tInGame, ErrUnknownState},
		{"too deep", tSettings, "Deep", tMainScreen, ErrNestingDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := m.AddState(tt.id, tt.sname, tt.parent); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if err := m.AddState(StateNone, "Zero", StateNone); err == nil {
		t.Error("expected error for reserved id 0")
	}
}

func TestInitWithoutStates(t *testing.T) {
	m := NewMachine[*recorder](nil)
	if err := m.Init(&recorder{}); !errors.Is(err, ErrNoInitialState) {
		t.Errorf("err = %v, want ErrNoInitialState", err)
	}
}
