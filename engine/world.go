package engine

import (
	"sync"

	"github.com/lixenwraith/boss-rush/component"
	"github.com/lixenwraith/boss-rush/core"
	"github.com/lixenwraith/boss-rush/engine/fsm"
)

// Components groups the typed stores of every component kind
type Components struct {
	Kinetic    *Store[component.KineticComponent]
	Motion     *Store[component.MotionComponent]
	Controller *Store[component.ControllerComponent]
	Transform  *Store[component.TransformComponent]
	Sprite     *Store[component.SpriteComponent]
	Animation  *Store[component.AnimationComponent]
	Camera     *Store[component.CameraComponent]
	Button     *Store[component.ButtonComponent]
	Label      *Store[component.LabelComponent]
	Player     *Store[component.PlayerComponent]
	Obstacle   *Store[component.ObstacleComponent]
}

// World contains all entities and their components using typed stores
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity
	live         map[core.Entity]struct{}

	// Global ResourceStore
	Resources *ResourceStore

	// Scoped lifetime index, owned by the frame goroutine
	Scopes *ScopeRegistry

	Components Components
	stores     []remover
}

// NewWorld creates an empty world, parentOf resolves nested scopes
func NewWorld(parentOf func(fsm.StateID) fsm.StateID) *World {
	w := &World{
		nextEntityID: 1,
		live:         make(map[core.Entity]struct{}),
		Resources:    NewResourceStore(),
		Scopes:       NewScopeRegistry(parentOf),
	}

	c := &w.Components
	c.Kinetic = register(w, NewStore[component.KineticComponent]())
	c.Motion = register(w, NewStore[component.MotionComponent]())
	c.Controller = register(w, NewStore[component.ControllerComponent]())
	c.Transform = register(w, NewStore[component.TransformComponent]())
	c.Sprite = register(w, NewStore[component.SpriteComponent]())
	c.Animation = register(w, NewStore[component.AnimationComponent]())
	c.Camera = register(w, NewStore[component.CameraComponent]())
	c.Button = register(w, NewStore[component.ButtonComponent]())
	c.Label = register(w, NewStore[component.LabelComponent]())
	c.Player = register(w, NewStore[component.PlayerComponent]())
	c.Obstacle = register(w, NewStore[component.ObstacleComponent]())

	return w
}

func register[T any](w *World, s *Store[T]) *Store[T] {
	w.stores = append(w.stores, s)
	return s
}

// CreateEntity reserves a new entity ID
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	w.live[id] = struct{}{}
	return id
}

// SpawnScoped creates an entity that is destroyed when scope is exited
func (w *World) SpawnScoped(scope fsm.StateID) (core.Entity, error) {
	if scope == fsm.StateNone {
		return core.NoEntity, ErrInvalidScope
	}
	e := w.CreateEntity()
	if err := w.Scopes.Register(e, scope); err != nil {
		w.DestroyEntity(e)
		return core.NoEntity, err
	}
	return e, nil
}

// Alive reports whether the entity exists
func (w *World) Alive(e core.Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.live[e]
	return ok
}

// DestroyEntity removes all components associated with an entity
// Returns false if the entity was already destroyed
func (w *World) DestroyEntity(e core.Entity) bool {
	w.mu.Lock()
	if _, ok := w.live[e]; !ok {
		w.mu.Unlock()
		return false
	}
	delete(w.live, e)
	w.mu.Unlock()

	for _, s := range w.stores {
		s.Remove(e)
	}
	w.Scopes.Unregister(e)
	return true
}

// DestroyEntities removes a batch, returns how many were alive
func (w *World) DestroyEntities(entities []core.Entity) int {
	if len(entities) == 0 {
		return 0
	}

	w.mu.Lock()
	alive := entities[:0:0]
	for _, e := range entities {
		if _, ok := w.live[e]; ok {
			delete(w.live, e)
			alive = append(alive, e)
		}
	}
	w.mu.Unlock()

	for _, s := range w.stores {
		s.RemoveBatch(alive)
	}
	for _, e := range alive {
		w.Scopes.Unregister(e)
	}
	return len(alive)
}

// EntityCount returns the number of live entities
func (w *World) EntityCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.live)
}

// Clear removes all entities and components from the world
func (w *World) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextEntityID = 1
	clear(w.live)
	for _, s := range w.stores {
		s.Clear()
	}
	w.Scopes.Clear()
}
