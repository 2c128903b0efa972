package engine

import (
	"testing"

	"github.com/lixenwraith/boss-rush/component"
	"github.com/lixenwraith/boss-rush/core"
	"github.com/lixenwraith/boss-rush/vmath"
)

func TestStoreInsertionOrderAndBatchRemove(t *testing.T) {
	s := NewStore[component.LabelComponent]()
	for e := core.Entity(1); e <= 5; e++ {
		s.Set(e, component.LabelComponent{Row: int(e)})
	}
	s.RemoveBatch([]core.Entity{2, 4, 99})

	got := s.All()
	want := []core.Entity{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("All = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("All[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestStoreGetReturnsMutablePointer(t *testing.T) {
	s := NewStore[component.KineticComponent]()
	s.Set(1, component.KineticComponent{})
	k, _ := s.Get(1)
	k.Velocity = vmath.V2(3, 4)

	again, _ := s.Get(1)
	if again.Velocity.X != 3 {
		t.Error("mutation through Get pointer not visible")
	}
}

func TestWorldDestroyExactlyOnce(t *testing.T) {
	w := NewWorld(testParentOf)
	e, err := w.SpawnScoped(StateMenu)
	if err != nil {
		t.Fatal(err)
	}
	w.Components.Label.Set(e, component.LabelComponent{Text: "x"})

	if !w.DestroyEntity(e) {
		t.Fatal("first destroy returned false")
	}
	if w.DestroyEntity(e) {
		t.Error("second destroy returned true")
	}
	if w.Components.Label.Has(e) {
		t.Error("component survived destroy")
	}
	if _, ok := w.Scopes.ScopeOf(e); ok {
		t.Error("destroyed entity still scoped")
	}
}

func TestWorldPurgedEntitiesDestroyedOnce(t *testing.T) {
	w := NewWorld(testParentOf)
	a, _ := w.SpawnScoped(StateInGame)
	b, _ := w.SpawnScoped(SubPaused)
	free := w.CreateEntity()

	// Manually destroyed before purge: must not be destroyed twice
	w.DestroyEntity(a)

	n := w.DestroyEntities(w.Scopes.Purge(StateInGame))
	if n != 1 {
		t.Errorf("destroyed %d, want 1", n)
	}
	if w.Alive(b) {
		t.Error("nested scoped entity survived parent purge")
	}
	if !w.Alive(free) {
		t.Error("unscoped entity was purged")
	}
}

func TestWorldSpawnScopedRejectsNone(t *testing.T) {
	w := NewWorld(nil)
	if _, err := w.SpawnScoped(0); err == nil {
		t.Error("expected error for StateNone scope")
	}
	if w.EntityCount() != 0 {
		t.Errorf("EntityCount = %d, want 0", w.EntityCount())
	}
}

func TestResourceStore(t *testing.T) {
	type settings struct{ VSync bool }
	rs := NewResourceStore()

	if _, ok := GetResource[*settings](rs); ok {
		t.Fatal("resource present before add")
	}
	AddResource(rs, &settings{VSync: true})
	if got := MustGetResource[*settings](rs); !got.VSync {
		t.Error("resource value lost")
	}
	if !RemoveResource[*settings](rs) {
		t.Error("RemoveResource returned false")
	}

	defer func() {
		if recover() == nil {
			t.Error("MustGetResource did not panic on missing resource")
		}
	}()
	MustGetResource[*settings](rs)
}
