package fsm

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// NewMachine creates a new state graph, log may be nil
func NewMachine[T any](log *zap.Logger) *Machine[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Machine[T]{
		nodes:      make(map[StateID]*Node[T]),
		byName:     make(map[string]StateID),
		order:      make([]StateID, 0, 8),
		subs:       make(map[StateID]*subMachine),
		pendingSub: make(map[StateID]request),
		actionReg:  make(map[string]ActionFunc[T]),
		log:        log.Named("fsm"),
	}
}

// Init enters the initial state and its default sub-state
// Requests made by enter actions are buffered for the next Apply
func (m *Machine[T]) Init(ctx T) error {
	if m.initial == StateNone {
		for _, id := range m.order {
			if m.nodes[id].ParentID == StateNone {
				m.initial = id
				break
			}
		}
		if m.initial == StateNone {
			return ErrNoInitialState
		}
	}

	m.current = m.initial
	m.initialized = true
	m.version++
	m.enterTop(ctx, m.initial)

	m.log.Info("state machine initialized",
		zap.String("state", m.Name(m.current)),
		zap.String("sub", m.Name(m.activeSub(m.current))))
	return nil
}

// Current returns the current top-level state
func (m *Machine[T]) Current() StateID {
	return m.current
}

// CurrentSub returns the active sub-state of parent
// ok is false when parent is not current, its sub-machine does not exist then
func (m *Machine[T]) CurrentSub(parent StateID) (StateID, bool) {
	if parent != m.current {
		return StateNone, false
	}
	sm, exists := m.subs[parent]
	if !exists || sm.current == StateNone {
		return StateNone, false
	}
	return sm.current, true
}

// IsActive reports whether id is the current top-level state or an active sub-state
func (m *Machine[T]) IsActive(id StateID) bool {
	node, ok := m.nodes[id]
	if !ok || !m.initialized {
		return false
	}
	if node.ParentID == StateNone {
		return m.current == id
	}
	sub, ok := m.CurrentSub(node.ParentID)
	return ok && sub == id
}

// Version increments on every applied state change
func (m *Machine[T]) Version() uint64 {
	return m.version
}

// RequestTransition buffers a top-level transition, applied by the next Apply
// A later request in the same frame replaces an earlier one
func (m *Machine[T]) RequestTransition(next StateID) error {
	node, ok := m.nodes[next]
	if !ok {
		return m.reject(next, ErrUnknownState)
	}
	if node.ParentID != StateNone {
		return m.reject(next, ErrNotTopLevel)
	}

	if m.pendingTop.set && m.pendingTop.target != next {
		m.log.Debug("transition request superseded",
			zap.String("dropped", m.Name(m.pendingTop.target)),
			zap.String("target", node.Name))
	}
	m.seq++
	m.pendingTop = request{target: next, seq: m.seq, set: true}
	return nil
}

// RequestSubTransition buffers a sub-state transition
// Fails with ErrParentInactive when the required parent is not current
func (m *Machine[T]) RequestSubTransition(next StateID) error {
	node, ok := m.nodes[next]
	if !ok {
		return m.reject(next, ErrUnknownState)
	}
	if node.ParentID == StateNone {
		return m.reject(next, ErrNotSubState)
	}
	if _, active := m.CurrentSub(node.ParentID); !active {
		return m.reject(next, ErrParentInactive)
	}

	if prev, exists := m.pendingSub[node.ParentID]; exists && prev.target != next {
		m.log.Debug("sub-state request superseded",
			zap.String("dropped", m.Name(prev.target)),
			zap.String("target", node.Name))
	}
	m.seq++
	m.pendingSub[node.ParentID] = request{target: next, seq: m.seq, set: true}
	return nil
}

// Pending reports whether any request is buffered
func (m *Machine[T]) Pending() bool {
	return m.pendingTop.set || len(m.pendingSub) > 0
}

// Apply executes buffered requests in request order and returns the number of state changes
// Must be called once per frame at a fixed point; requests issued by actions run next frame
func (m *Machine[T]) Apply(ctx T) int {
	if !m.initialized || !m.Pending() {
		return 0
	}

	batch := make([]request, 0, 1+len(m.pendingSub))
	if m.pendingTop.set {
		batch = append(batch, m.pendingTop)
	}
	for _, r := range m.pendingSub {
		batch = append(batch, r)
	}
	sort.Slice(batch, func(i, j int) bool { return batch[i].seq < batch[j].seq })

	// Clear before running actions so new requests land in the next frame
	m.pendingTop = request{}
	clear(m.pendingSub)

	applied := 0
	for _, r := range batch {
		node := m.nodes[r.target]
		if node.ParentID == StateNone {
			if m.transitionTop(ctx, r.target) {
				applied++
			}
			continue
		}

		// Parent may have been exited by an earlier request in this batch
		if _, active := m.CurrentSub(node.ParentID); !active {
			_ = m.reject(r.target, ErrParentInactive)
			continue
		}
		if m.transitionSub(ctx, node.ParentID, r.target) {
			applied++
		}
	}
	return applied
}

// transitionTop exits the old top-level state (sub first), purges its scope, then enters the new one (parent first)
func (m *Machine[T]) transitionTop(ctx T, target StateID) bool {
	old := m.current
	if old == target {
		return false
	}

	// Exit phase: most specific first
	oldSub := m.activeSub(old)
	if oldSub != StateNone {
		m.run(ctx, m.nodes[oldSub].OnExit)
	}
	m.run(ctx, m.nodes[old].OnExit)

	// Purge phase: registry handles nested sub-state scopes
	if m.purger != nil {
		m.purger.PurgeScope(old)
	}
	if sm, ok := m.subs[old]; ok {
		sm.current = StateNone
	}

	m.current = target
	m.version++

	// Enter phase: least specific first
	m.enterTop(ctx, target)

	m.log.Info("state transition",
		zap.String("from", m.pathName(old, oldSub)),
		zap.String("to", m.pathName(target, m.activeSub(target))))
	if m.observer != nil {
		m.observer.Transitioned(m.Name(old), m.Name(target))
	}
	return true
}

// transitionSub swaps the active sub-state of the current parent
func (m *Machine[T]) transitionSub(ctx T, parent, target StateID) bool {
	sm := m.subs[parent]
	old := sm.current
	if old == target {
		return false
	}

	m.run(ctx, m.nodes[old].OnExit)
	if m.purger != nil {
		m.purger.PurgeScope(old)
	}

	sm.current = target
	m.version++

	m.run(ctx, m.nodes[target].OnEnter)

	m.log.Info("sub-state transition",
		zap.String("from", m.pathName(parent, old)),
		zap.String("to", m.pathName(parent, target)))
	if m.observer != nil {
		m.observer.Transitioned(m.Name(old), m.Name(target))
	}
	return true
}

// enterTop runs enter actions of a top-level state and re-initializes its sub-machine to the default
func (m *Machine[T]) enterTop(ctx T, id StateID) {
	m.run(ctx, m.nodes[id].OnEnter)
	if sm, ok := m.subs[id]; ok {
		sm.current = sm.fallback
		m.run(ctx, m.nodes[sm.fallback].OnEnter)
	}
}

func (m *Machine[T]) run(ctx T, actions []Action[T]) {
	for _, a := range actions {
		a.Func(ctx, a.Args)
	}
}

func (m *Machine[T]) activeSub(parent StateID) StateID {
	if sm, ok := m.subs[parent]; ok {
		return sm.current
	}
	return StateNone
}

// reject reports a dropped request as a diagnostic, never fatal
func (m *Machine[T]) reject(target StateID, cause error) error {
	name := m.Name(target)
	err := fmt.Errorf("transition to '%s' dropped: %w", name, cause)
	m.log.Warn("transition request rejected",
		zap.String("target", name),
		zap.String("current", m.pathName(m.current, m.activeSub(m.current))),
		zap.Error(cause))
	if m.observer != nil {
		m.observer.Rejected(name, cause)
	}
	return err
}

// Name returns the declared name of a state
func (m *Machine[T]) Name(id StateID) string {
	if node, ok := m.nodes[id]; ok {
		return node.Name
	}
	if id == StateNone {
		return ""
	}
	return fmt.Sprintf("State(%d)", id)
}

// ID resolves a state name
func (m *Machine[T]) ID(name string) (StateID, bool) {
	id, ok := m.byName[name]
	return id, ok
}

// Parent returns the parent of a sub-state, StateNone for top-level or unknown states
func (m *Machine[T]) Parent(id StateID) StateID {
	if node, ok := m.nodes[id]; ok {
		return node.ParentID
	}
	return StateNone
}

// States returns all state IDs in declaration order
func (m *Machine[T]) States() []StateID {
	result := make([]StateID, len(m.order))
	copy(result, m.order)
	return result
}

func (m *Machine[T]) pathName(parent, sub StateID) string {
	if sub == StateNone {
		return m.Name(parent)
	}
	return m.Name(parent) + "/" + m.Name(sub)
}
