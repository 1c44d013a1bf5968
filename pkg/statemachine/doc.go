// Package statemachine provides a small, thread-safe finite state machine
// keyed by comparable string-like states and events.
//
// Transitions are declared up front; Fire moves the machine along the
// transition registered for the current state and event, or returns
// *ErrNoTransitionAvailable without changing state. Because Fire checks and
// moves under one lock, a machine doubles as a guard against overlapping
// work: a second caller trying to start while the machine sits in a busy
// state is rejected.
//
//	m := statemachine.New[State, Event](Idle,
//	    statemachine.T(Idle, Start, Running),
//	    statemachine.T(Running, Stop, Idle),
//	)
//	if _, err := m.Fire(Start); err != nil {
//	    // already running
//	}
package statemachine
