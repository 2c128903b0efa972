package fsm

import "fmt"

// AddState declares a node, parent is StateNone for top-level states
// Declaration order defines the total order of states
func (m *Machine[T]) AddState(id StateID, name string, parent StateID) error {
	if id == StateNone {
		return fmt.Errorf("state '%s': id 0 is reserved", name)
	}
	if _, exists := m.nodes[id]; exists {
		return fmt.Errorf("state id %d: %w", id, ErrDuplicateState)
	}
	if _, exists := m.byName[name]; exists {
		return fmt.Errorf("state '%s': %w", name, ErrDuplicateState)
	}

	if parent != StateNone {
		p, ok := m.nodes[parent]
		if !ok {
			return fmt.Errorf("state '%s' references parent %d: %w", name, parent, ErrUnknownState)
		}
		if p.ParentID != StateNone {
			return fmt.Errorf("state '%s' under '%s': %w", name, p.Name, ErrNestingDepth)
		}
		sm, ok := m.subs[parent]
		if !ok {
			// First declared child is the default until SetDefault says otherwise
			sm = &subMachine{parent: parent, fallback: id}
			m.subs[parent] = sm
		}
	}

	m.nodes[id] = &Node[T]{
		ID:       id,
		Name:     name,
		ParentID: parent,
		Order:    len(m.order),
		OnEnter:  make([]Action[T], 0),
		OnExit:   make([]Action[T], 0),
	}
	m.byName[name] = id
	m.order = append(m.order, id)
	return nil
}

// MustAddState is AddState for static graphs, panics on declaration errors
func (m *Machine[T]) MustAddState(id StateID, name string, parent StateID) {
	if err := m.AddState(id, name, parent); err != nil {
		panic(err)
	}
}

// SetDefault marks the initial top-level state, or the default of a sub-machine
func (m *Machine[T]) SetDefault(id StateID) error {
	node, ok := m.nodes[id]
	if !ok {
		return fmt.Errorf("default %d: %w", id, ErrUnknownState)
	}
	if node.ParentID == StateNone {
		m.initial = id
		return nil
	}
	m.subs[node.ParentID].fallback = id
	return nil
}

// OnEnter attaches an enter action to a state
func (m *Machine[T]) OnEnter(id StateID, name string, fn ActionFunc[T], args any) error {
	node, ok := m.nodes[id]
	if !ok {
		return fmt.Errorf("on_enter %s: %w", name, ErrUnknownState)
	}
	node.OnEnter = append(node.OnEnter, Action[T]{Name: name, Func: fn, Args: args})
	return nil
}

// OnExit attaches an exit action to a state
func (m *Machine[T]) OnExit(id StateID, name string, fn ActionFunc[T], args any) error {
	node, ok := m.nodes[id]
	if !ok {
		return fmt.Errorf("on_exit %s: %w", name, ErrUnknownState)
	}
	node.OnExit = append(node.OnExit, Action[T]{Name: name, Func: fn, Args: args})
	return nil
}

// RegisterAction adds a named side-effect function to the registry used by LoadBindings
func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = fn
}

// SetPurger wires the scope purge hook, must be called before Init
func (m *Machine[T]) SetPurger(p Purger) {
	m.purger = p
}

// SetObserver wires transition telemetry
func (m *Machine[T]) SetObserver(o Observer) {
	m.observer = o
}
