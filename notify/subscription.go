package notify

import "sync/atomic"

// Subscription is one pin, one condition and one registered callback.
// It is created by Subscribe and ends with Unsubscribe.
type Subscription struct {
	n    *Notifier
	pin  int
	done atomic.Bool

	// guarded by n.mu
	cond    Condition
	capsule *capsule
}

// Pin returns the line number the subscription is bound to.
func (s *Subscription) Pin() int { return s.pin }

// Condition returns the trigger currently configured through this Notifier.
func (s *Subscription) Condition() Condition {
	s.n.mu.Lock()
	defer s.n.mu.Unlock()
	return s.cond
}

// Unsubscribe removes the handler registration and frees the pin. Once it
// returns the callback will not run again. Later calls do nothing.
//
// It panics if the controller fails to remove the registration.
func (s *Subscription) Unsubscribe() {
	if !s.done.CompareAndSwap(false, true) {
		return
	}
	s.n.teardown(s)
}
