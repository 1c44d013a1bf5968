package statemachine

import (
	"fmt"
	"sync"
)

// Transition moves the machine from From to To when Event fires.
type Transition[S, E ~string] struct {
	From  S
	Event E
	To    S
}

// T builds a Transition.
func T[S, E ~string](from S, event E, to S) Transition[S, E] {
	return Transition[S, E]{From: from, Event: event, To: to}
}

// Hook observes a completed transition.
type Hook[S, E ~string] func(from, to S, event E)

// Machine is a finite state machine. The zero value is not usable; call New.
type Machine[S, E ~string] struct {
	mu          sync.Mutex
	initial     S
	current     S
	transitions map[S]map[E]S
	hooks       []Hook[S, E]
}

// New returns a machine in state initial with the given transitions.
// Declaring the same from/event pair twice panics.
func New[S, E ~string](initial S, transitions ...Transition[S, E]) *Machine[S, E] {
	m := &Machine[S, E]{
		initial:     initial,
		current:     initial,
		transitions: make(map[S]map[E]S),
	}
	for _, t := range transitions {
		events, ok := m.transitions[t.From]
		if !ok {
			events = make(map[E]S)
			m.transitions[t.From] = events
		}
		if _, dup := events[t.Event]; dup {
			panic(fmt.Sprintf("statemachine: duplicate transition from %q on %q", t.From, t.Event))
		}
		events[t.Event] = t.To
	}
	return m
}

// OnTransition registers a hook run after every successful Fire, while the
// machine lock is held. Hooks must not call back into the machine.
func (m *Machine[S, E]) OnTransition(h Hook[S, E]) {
	if h == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, h)
}

func (m *Machine[S, E]) Current() S {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Fire applies event to the current state and returns the new state.
func (m *Machine[S, E]) Fire(event E) (S, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	to, ok := m.transitions[m.current][event]
	if !ok {
		return m.current, NewErrNoTransitionAvailable(string(m.current), string(event))
	}

	from := m.current
	m.current = to
	for _, h := range m.hooks {
		h(from, to, event)
	}
	return to, nil
}

// CanFire reports whether event has a transition from the current state.
func (m *Machine[S, E]) CanFire(event E) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.transitions[m.current][event]
	return ok
}

// Reset returns the machine to its initial state without running hooks.
func (m *Machine[S, E]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
}
