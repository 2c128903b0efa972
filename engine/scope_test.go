package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lixenwraith/boss-rush/core"
	"github.com/lixenwraith/boss-rush/engine/fsm"
)

func testParentOf(id fsm.StateID) fsm.StateID {
	switch id {
	case SubMainScreen, SubSettings:
		return StateMenu
	case SubRunning, SubPaused:
		return StateInGame
	}
	return fsm.StateNone
}

func TestScopePurgeRemovesOnlyScope(t *testing.T) {
	r := NewScopeRegistry(testParentOf)
	_ = r.Register(1, StateMenu)
	_ = r.Register(2, StateMenu)
	_ = r.Register(3, StateInGame)

	got := r.Purge(StateMenu)
	if want := []core.Entity{1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("Purge(Menu) = %v, want %v", got, want)
	}
	if _, ok := r.ScopeOf(3); !ok {
		t.Error("entity in another scope was purged")
	}
}

func TestScopePurgeIsIdempotent(t *testing.T) {
	r := NewScopeRegistry(testParentOf)
	_ = r.Register(1, StateLoading)

	if got := r.Purge(StateLoading); len(got) != 1 {
		t.Fatalf("first purge = %v", got)
	}
	if got := r.Purge(StateLoading); len(got) != 0 {
		t.Errorf("second purge = %v, want empty", got)
	}
}

func TestScopePurgeIncludesNestedSubStates(t *testing.T) {
	r := NewScopeRegistry(testParentOf)
	_ = r.Register(1, StateInGame)
	_ = r.Register(2, SubPaused)
	_ = r.Register(3, SubRunning)
	_ = r.Register(4, SubSettings)

	got := r.Purge(StateInGame)
	if want := []core.Entity{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("Purge(InGame) = %v, want %v", got, want)
	}
	if r.Count(SubSettings) != 1 {
		t.Error("sibling parent's sub-state was purged")
	}
}

func TestScopePurgeSubDoesNotTouchParent(t *testing.T) {
	r := NewScopeRegistry(testParentOf)
	_ = r.Register(1, StateInGame)
	_ = r.Register(2, SubPaused)

	got := r.Purge(SubPaused)
	if want := []core.Entity{2}; !reflect.DeepEqual(got, want) {
		t.Errorf("Purge(Paused) = %v, want %v", got, want)
	}
	if r.Count(StateInGame) != 1 {
		t.Error("parent scope purged by sub-state purge")
	}
}

func TestScopeRegisterValidation(t *testing.T) {
	r := NewScopeRegistry(nil)
	if err := r.Register(1, fsm.StateNone); !errors.Is(err, ErrInvalidScope) {
		t.Errorf("Register(StateNone) = %v, want ErrInvalidScope", err)
	}
	if err := r.Register(core.NoEntity, StateMenu); !errors.Is(err, ErrInvalidScope) {
		t.Errorf("Register(NoEntity) = %v, want ErrInvalidScope", err)
	}
}

func TestScopeReRegisterMoves(t *testing.T) {
	r := NewScopeRegistry(nil)
	_ = r.Register(1, StateMenu)
	_ = r.Register(1, StateInGame)

	if r.Count(StateMenu) != 0 || r.Count(StateInGame) != 1 {
		t.Errorf("counts menu=%d ingame=%d", r.Count(StateMenu), r.Count(StateInGame))
	}
	if got := r.Purge(StateMenu); len(got) != 0 {
		t.Errorf("moved entity purged with old scope: %v", got)
	}
}

func TestScopeUnregister(t *testing.T) {
	r := NewScopeRegistry(nil)
	_ = r.Register(7, StateMenu)
	if !r.Unregister(7) {
		t.Fatal("Unregister returned false")
	}
	if r.Unregister(7) {
		t.Error("second Unregister returned true")
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d", r.Len())
	}
}
