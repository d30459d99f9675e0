package state

import (
	"slices"
	"sync"

	"github.com/rs/zerolog"
)

// Listener is notified after every dispatch with the action and the states
// before and after it.
type Listener func(a Action, prev, next State)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithReducer replaces the default reducer.
func WithReducer(r Reducer) StoreOption {
	return func(s *Store) { s.reducer = r }
}

// WithInitialState seeds the store.
func WithInitialState(st State) StoreOption {
	return func(s *Store) { s.state = st }
}

// WithLogger sets the logger used to trace dispatches.
func WithLogger(logger zerolog.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// Store owns the current State. Dispatches are serialized, so concurrent
// callers never observe a partially applied transition, and listeners see
// transitions in the order they were applied. A listener must not dispatch.
type Store struct {
	dispatchMu sync.Mutex
	mu         sync.RWMutex
	state      State
	reducer    Reducer
	logger     zerolog.Logger
	listeners  []subscription
	nextID     int
}

type subscription struct {
	id int
	l  Listener
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		state:   Initial(),
		reducer: Reduce,
		logger:  zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State returns the current snapshot. The snapshot must be treated as
// read-only.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies a to the current state and returns the new state. A nil
// action returns the current state and notifies no listener.
func (s *Store) Dispatch(a Action) State {
	if a == nil {
		return s.State()
	}
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	prev := s.state
	next := s.reducer(prev, a)
	s.state = next
	listeners := make([]Listener, 0, len(s.listeners))
	for _, sub := range s.listeners {
		listeners = append(listeners, sub.l)
	}
	s.mu.Unlock()

	s.logger.Debug().
		Str("action", string(a.Type())).
		Int("patients", len(next.Patients)).
		Int("diagnoses", len(next.DiagnosisList)).
		Msg("dispatch")

	for _, l := range listeners {
		l(a, prev, next)
	}
	return next
}

// Subscribe registers l and returns a function that removes it. Listeners
// are called in subscription order.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, subscription{id: id, l: l})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners = slices.DeleteFunc(s.listeners, func(sub subscription) bool { return sub.id == id })
	}
}
