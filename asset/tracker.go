package asset

import (
	"errors"
	"fmt"
)

// Status is the resolution state of a tracked item
type Status uint8

const (
	Pending Status = iota
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "pending"
	}
}

var (
	// ErrUntracked is returned when marking an item that was never tracked
	ErrUntracked = errors.New("item not tracked")
	// ErrResolved is returned when an item already resolved to a different status
	ErrResolved = errors.New("item already resolved")
)

// Tracker aggregates item statuses into a progress fraction and fires a one-shot gate on completion
// Failed items resolve the gate without counting toward the numerator
// Not safe for concurrent use; owned by the frame goroutine
type Tracker struct {
	items map[string]Status
	order []string

	ready, failed int

	onComplete func()
	fired      bool
}

// NewTracker creates a tracker, onComplete runs once from the Poll that observes completion
func NewTracker(onComplete func()) *Tracker {
	return &Tracker{
		items:      make(map[string]Status),
		onComplete: onComplete,
	}
}

// Track registers an item as Pending, false if already tracked
func (t *Tracker) Track(id string) bool {
	if _, ok := t.items[id]; ok {
		return false
	}
	t.items[id] = Pending
	t.order = append(t.order, id)
	return true
}

// MarkReady resolves an item as loaded
func (t *Tracker) MarkReady(id string) error {
	return t.resolve(id, Ready)
}

// MarkFailed resolves an item as failed
func (t *Tracker) MarkFailed(id string) error {
	return t.resolve(id, Failed)
}

func (t *Tracker) resolve(id string, to Status) error {
	cur, ok := t.items[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUntracked, id)
	}
	if cur == to {
		return nil
	}
	if cur != Pending {
		return fmt.Errorf("%w: %s is %s", ErrResolved, id, cur)
	}

	t.items[id] = to
	if to == Ready {
		t.ready++
	} else {
		t.failed++
	}
	return nil
}

// Status returns the status of an item
func (t *Tracker) Status(id string) (Status, bool) {
	s, ok := t.items[id]
	return s, ok
}

// Fraction returns ready/total in [0,1], 1 when nothing is tracked
func (t *Tracker) Fraction() float32 {
	if len(t.items) == 0 {
		return 1
	}
	return float32(t.ready) / float32(len(t.items))
}

// IsComplete reports whether no item is Pending
func (t *Tracker) IsComplete() bool {
	return t.ready+t.failed == len(t.items)
}

// Counts returns the number of items per status
func (t *Tracker) Counts() (pending, ready, failed int) {
	return len(t.items) - t.ready - t.failed, t.ready, t.failed
}

// Items returns tracked ids in tracking order
func (t *Tracker) Items() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Poll fires the completion callback the first time it observes completion
// Returns true only on that call
func (t *Tracker) Poll() bool {
	if t.fired || !t.IsComplete() {
		return false
	}
	t.fired = true
	if t.onComplete != nil {
		t.onComplete()
	}
	return true
}

// Fired reports whether the gate has fired
func (t *Tracker) Fired() bool {
	return t.fired
}

// Reset forgets all items and re-arms the gate
func (t *Tracker) Reset() {
	clear(t.items)
	t.order = t.order[:0]
	t.ready, t.failed = 0, 0
	t.fired = false
}
