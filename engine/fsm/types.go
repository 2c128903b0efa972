package fsm

import (
	"errors"

	"go.uber.org/zap"
)

// StateID is a unique identifier for a node, ordered by declaration
type StateID uint16

// StateNone marks the absence of a state (no parent, no active sub-state)
const StateNone StateID = 0

var (
	ErrUnknownState   = errors.New("unknown state")
	ErrNotTopLevel    = errors.New("state is not a top-level state")
	ErrNotSubState    = errors.New("state is not a sub-state")
	ErrParentInactive = errors.New("parent state is not current")
	ErrUnknownAction  = errors.New("unknown action")
	ErrDuplicateState = errors.New("duplicate state")
	ErrNestingDepth   = errors.New("sub-states cannot have sub-states")
	ErrNotInitialized = errors.New("machine not initialized")
	ErrNoInitialState = errors.New("no initial state declared")
)

// Machine is the two-level state graph runtime
// One top-level state is always current; each top-level state may own a
// sub-machine that only exists while its parent is current
// T is the context type passed to actions
type Machine[T any] struct {
	// Graph data, immutable after Init
	nodes  map[StateID]*Node[T]
	byName map[string]StateID
	order  []StateID

	initial StateID
	subs    map[StateID]*subMachine // keyed by parent

	// Runtime state
	current     StateID
	version     uint64
	initialized bool

	// Buffered requests, at most one per machine (last writer wins)
	pendingTop request
	pendingSub map[StateID]request // keyed by parent
	seq        uint64

	// Dependency injection
	actionReg map[string]ActionFunc[T]
	purger    Purger
	observer  Observer
	log       *zap.Logger
}

// Node represents a state in the graph
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID
	Order    int // Declaration index

	// Lifecycle actions
	OnEnter []Action[T]
	OnExit  []Action[T]
}

// Action represents a side-effect
type Action[T any] struct {
	Name string
	Func ActionFunc[T]
	Args any // Pre-compiled payload from config
}

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T, args any)

// Purger removes every object scoped to a state, including objects scoped to its nested sub-states
type Purger interface {
	PurgeScope(scope StateID)
}

// Observer receives transition outcomes, used for telemetry
type Observer interface {
	Transitioned(from, to string)
	Rejected(target string, err error)
}

type subMachine struct {
	parent   StateID
	fallback StateID // Declared default sub-state
	current  StateID // StateNone while parent is not current
}

type request struct {
	target StateID
	seq    uint64
	set    bool
}
