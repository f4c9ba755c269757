package callstate

import "sync"

// State is one phase of a tracked call's lifecycle
type State int

const (
	StateIdle State = iota
	StatePending
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is one observed point of a tracker's lifecycle
type Snapshot struct {
	State State
	Err   error
}

// Loading reports whether a call is in flight
func (s Snapshot) Loading() bool {
	return s.State == StatePending
}

// Tracker exposes the progress and outcome of gateway calls to an
// observing layer. One tracker serves one logical call site; concurrent
// calls on the same tracker race and the last writer wins.
type Tracker struct {
	mu          sync.RWMutex
	state       State
	err         error
	subscribers map[int]chan Snapshot
	nextID      int
}

// NewTracker creates a tracker in the idle state
func NewTracker() *Tracker {
	return &Tracker{
		state:       StateIdle,
		subscribers: make(map[int]chan Snapshot),
	}
}

// Snapshot returns the current state and error
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Snapshot{State: t.state, Err: t.err}
}

// Loading reports whether a call is in flight
func (t *Tracker) Loading() bool {
	return t.Snapshot().Loading()
}

// Err returns the error recorded by the last completed call, if any
func (t *Tracker) Err() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.err
}

// Subscribe registers an observer and returns its update channel along
// with an unsubscribe function. After unsubscribe returns, no further
// updates are delivered and the channel is closed; calling it again is
// a no-op.
func (t *Tracker) Subscribe() (<-chan Snapshot, func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextID
	t.nextID++

	ch := make(chan Snapshot, 8)
	t.subscribers[id] = ch

	unsubscribe := func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if sub, ok := t.subscribers[id]; ok {
			delete(t.subscribers, id)
			close(sub)
		}
	}

	return ch, unsubscribe
}

// transition is the single entry point for state changes
func (t *Tracker) transition(state State, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = state
	t.err = err

	snapshot := Snapshot{State: state, Err: err}
	for _, ch := range t.subscribers {
		select {
		case ch <- snapshot:
		default:
			// slow observer, drop rather than block the call
		}
	}
}

// Begin marks a call as in flight and clears any previous error
func (t *Tracker) Begin() {
	t.transition(StatePending, nil)
}

// Finish records the call's outcome
func (t *Tracker) Finish(err error) {
	if err != nil {
		t.transition(StateFailed, err)
	} else {
		t.transition(StateSucceeded, nil)
	}
}

// Track runs op between Begin and Finish and returns its result and
// error unchanged, so callers can still react locally to failures.
func Track[T any](t *Tracker, op func() (T, error)) (T, error) {
	t.Begin()
	result, err := op()
	t.Finish(err)
	return result, err
}
