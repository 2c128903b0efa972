package engine

import (
	"errors"
	"slices"

	"github.com/lixenwraith/boss-rush/core"
	"github.com/lixenwraith/boss-rush/engine/fsm"
)

// ErrInvalidScope is returned when registering against StateNone
var ErrInvalidScope = errors.New("invalid scope")

// ScopeRegistry is a reverse index from state values to the entities that live only while that state is active
// Entities not registered here are never purged
type ScopeRegistry struct {
	parentOf func(fsm.StateID) fsm.StateID
	byScope  map[fsm.StateID]map[core.Entity]struct{}
	scopeOf  map[core.Entity]fsm.StateID
}

// NewScopeRegistry creates an empty registry
// parentOf resolves a sub-state to its parent so purging a parent also purges nested sub-state scopes, nil disables nesting
func NewScopeRegistry(parentOf func(fsm.StateID) fsm.StateID) *ScopeRegistry {
	return &ScopeRegistry{
		parentOf: parentOf,
		byScope:  make(map[fsm.StateID]map[core.Entity]struct{}),
		scopeOf:  make(map[core.Entity]fsm.StateID),
	}
}

// SetParentFunc replaces the nesting resolver
func (r *ScopeRegistry) SetParentFunc(parentOf func(fsm.StateID) fsm.StateID) {
	r.parentOf = parentOf
}

// Register ties an entity to a scope, moving it if already registered elsewhere
func (r *ScopeRegistry) Register(e core.Entity, scope fsm.StateID) error {
	if scope == fsm.StateNone || e == core.NoEntity {
		return ErrInvalidScope
	}
	if old, ok := r.scopeOf[e]; ok {
		if old == scope {
			return nil
		}
		r.detach(e, old)
	}

	set, ok := r.byScope[scope]
	if !ok {
		set = make(map[core.Entity]struct{})
		r.byScope[scope] = set
	}
	set[e] = struct{}{}
	r.scopeOf[e] = scope
	return nil
}

// Unregister removes an entity from the index, reports whether it was present
func (r *ScopeRegistry) Unregister(e core.Entity) bool {
	scope, ok := r.scopeOf[e]
	if !ok {
		return false
	}
	r.detach(e, scope)
	return true
}

// ScopeOf returns the scope an entity is registered under
func (r *ScopeRegistry) ScopeOf(e core.Entity) (fsm.StateID, bool) {
	scope, ok := r.scopeOf[e]
	return scope, ok
}

// Count returns the number of entities registered directly under scope
func (r *ScopeRegistry) Count(scope fsm.StateID) int {
	return len(r.byScope[scope])
}

// Len returns the total number of scoped entities
func (r *ScopeRegistry) Len() int {
	return len(r.scopeOf)
}

// Purge removes and returns every entity scoped to scope or to a state nested under it, sorted by id
// A second purge of the same scope returns nothing
func (r *ScopeRegistry) Purge(scope fsm.StateID) []core.Entity {
	if scope == fsm.StateNone || len(r.scopeOf) == 0 {
		return nil
	}

	var purged []core.Entity
	for s, set := range r.byScope {
		if !r.within(s, scope) {
			continue
		}
		for e := range set {
			purged = append(purged, e)
			delete(r.scopeOf, e)
		}
		delete(r.byScope, s)
	}
	slices.Sort(purged)
	return purged
}

// Clear drops all registrations
func (r *ScopeRegistry) Clear() {
	clear(r.byScope)
	clear(r.scopeOf)
}

func (r *ScopeRegistry) detach(e core.Entity, scope fsm.StateID) {
	delete(r.scopeOf, e)
	if set, ok := r.byScope[scope]; ok {
		delete(set, e)
		if len(set) == 0 {
			delete(r.byScope, scope)
		}
	}
}

// within reports whether s equals ancestor or is nested below it
func (r *ScopeRegistry) within(s, ancestor fsm.StateID) bool {
	for depth := 0; s != fsm.StateNone && depth < 8; depth++ {
		if s == ancestor {
			return true
		}
		if r.parentOf == nil {
			return false
		}
		s = r.parentOf(s)
	}
	return false
}
