// Package notify runs user callbacks when an input pin sees an edge or level
// condition.
//
// A Notifier wraps one interrupt controller. Subscribing boxes the callback,
// registers a fixed trampoline with the box's address as context and arms the
// pin; tearing the Subscription down removes the registration before the box
// is dropped. Callbacks execute in interrupt context: they must not block,
// allocate heavily or take locks that ordinary code holds for long. Deferring
// work to a goroutine is the callback's job, typically with a non-blocking
// channel send.
//
// A Subscription borrows its pin exclusively: while it is live a second
// subscribe on the same pin number fails with errcode.PinInUse, and after
// Unsubscribe the pin may be subscribed again.
package notify

import (
	"log/slog"
	"sync"

	"pinnotify-go/errcode"
	"pinnotify-go/intc"
)

// Pin is anything that names a controller line, such as *pins.Input.
type Pin interface {
	Number() int
}

// PinNumber is a bare line number usable as a Pin.
type PinNumber int

func (p PinNumber) Number() int { return int(p) }

// Notifier subscribes callbacks to pins of one controller.
type Notifier struct {
	ctrl intc.Controller
	gate *Gate
	log  *slog.Logger

	mu   sync.Mutex
	subs map[int]*Subscription // pin -> live subscription
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithLogger sets the structured logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(n *Notifier) {
		if l != nil {
			n.log = l
		}
	}
}

// WithGate overrides the process-wide gate of the controller.
func WithGate(g *Gate) Option {
	return func(n *Notifier) {
		if g != nil {
			n.gate = g
		}
	}
}

// New returns a Notifier driving ctrl.
func New(ctrl intc.Controller, opts ...Option) *Notifier {
	n := &Notifier{
		ctrl: ctrl,
		log:  slog.New(slog.DiscardHandler),
		subs: map[int]*Subscription{},
	}
	for _, o := range opts {
		o(n)
	}
	if n.gate == nil {
		n.gate = GateFor(ctrl)
	}
	return n
}

// Gate returns the service gate used by n.
func (n *Notifier) Gate() *Gate { return n.gate }

// Subscribe calls cb from interrupt context on every edge of pin.
func (n *Notifier) Subscribe(pin Pin, cb func()) (*Subscription, error) {
	return n.SubscribeWithCondition(pin, AnyEdge, cb)
}

// SubscribeWithCondition calls cb from interrupt context each time cond
// occurs on pin. On error nothing stays registered and the pin is free.
func (n *Notifier) SubscribeWithCondition(pin Pin, cond Condition, cb func()) (*Subscription, error) {
	if cb == nil {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "subscribe", Msg: "nil callback"}
	}
	if cond >= Max {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "subscribe", Msg: "condition " + cond.String()}
	}
	if err := n.gate.Ensure(); err != nil {
		return nil, controllerErr("enable_service", -1, err)
	}

	num := pin.Number()
	s := &Subscription{n: n, pin: num, cond: cond}

	n.mu.Lock()
	if _, busy := n.subs[num]; busy {
		n.mu.Unlock()
		return nil, &errcode.E{C: errcode.PinInUse, Op: "subscribe", Msg: "pin " + itoa(num)}
	}
	n.subs[num] = s
	n.mu.Unlock()

	c, err := n.arm(num, cond, cb)
	if err != nil {
		n.release(s)
		n.log.Debug("notify: subscribe failed", "pin", num, "condition", cond.String(), "err", err)
		return nil, err
	}
	n.mu.Lock()
	s.capsule = c
	n.mu.Unlock()
	n.log.Debug("notify: subscribed", "pin", num, "condition", cond.String())
	return s, nil
}

// arm performs the controller side of subscribing and undoes its own
// completed steps on failure.
func (n *Notifier) arm(pin int, cond Condition, cb func()) (*capsule, error) {
	if r, ok := n.ctrl.(intc.ConflictResetter); ok {
		if err := r.ResetConflicting(pin); err != nil {
			return nil, controllerErr("reset_conflicting", pin, err)
		}
	}
	if err := n.ctrl.SetTrigger(pin, cond.Native()); err != nil {
		return nil, controllerErr("set_trigger", pin, err)
	}

	c := newCapsule(cb)
	if err := n.ctrl.RegisterHandler(pin, trampoline, c.pointer()); err != nil {
		n.clearTrigger(pin)
		return nil, controllerErr("register_handler", pin, err)
	}
	if cond != Disabled {
		if err := n.ctrl.EnablePinInterrupt(pin); err != nil {
			n.mustRemove(pin)
			n.clearTrigger(pin)
			return nil, controllerErr("enable_pin", pin, err)
		}
	}
	return c, nil
}

// ConfigureInterrupt sets the trigger of pin and arms or disarms its
// interrupt. Any Subscription on pin stays registered; with Disabled its
// callback simply stops running until the pin is armed again.
func (n *Notifier) ConfigureInterrupt(pin Pin, cond Condition) error {
	if cond >= Max {
		return &errcode.E{C: errcode.InvalidParams, Op: "configure_interrupt", Msg: "condition " + cond.String()}
	}
	if err := n.gate.Ensure(); err != nil {
		return controllerErr("enable_service", -1, err)
	}
	num := pin.Number()
	if err := n.ctrl.SetTrigger(num, cond.Native()); err != nil {
		return controllerErr("set_trigger", num, err)
	}
	if cond == Disabled {
		if err := n.ctrl.DisablePinInterrupt(num); err != nil {
			return controllerErr("disable_pin", num, err)
		}
	} else if err := n.ctrl.EnablePinInterrupt(num); err != nil {
		return controllerErr("enable_pin", num, err)
	}

	n.mu.Lock()
	if s := n.subs[num]; s != nil {
		s.cond = cond
	}
	n.mu.Unlock()
	n.log.Debug("notify: configured", "pin", num, "condition", cond.String())
	return nil
}

// With subscribes, runs body and tears the subscription down on every exit
// path, panics included.
func (n *Notifier) With(pin Pin, cond Condition, cb func(), body func(*Subscription) error) error {
	s, err := n.SubscribeWithCondition(pin, cond, cb)
	if err != nil {
		return err
	}
	defer s.Unsubscribe()
	return body(s)
}

// Active returns the live subscription on pin, if any.
func (n *Notifier) Active(pin int) (*Subscription, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	s, ok := n.subs[pin]
	return s, ok && s.capsule != nil
}

// Close tears down every live subscription.
func (n *Notifier) Close() {
	n.mu.Lock()
	live := make([]*Subscription, 0, len(n.subs))
	for _, s := range n.subs {
		if s.capsule != nil { // still arming otherwise
			live = append(live, s)
		}
	}
	n.mu.Unlock()
	for _, s := range live {
		s.Unsubscribe()
	}
}

func (n *Notifier) teardown(s *Subscription) {
	if err := n.ctrl.DisablePinInterrupt(s.pin); err != nil {
		n.log.Warn("notify: disable on teardown failed", "pin", s.pin, "err", err)
	}
	n.mustRemove(s.pin)
	// The controller no longer references the capsule.
	n.release(s)
	n.log.Debug("notify: unsubscribed", "pin", s.pin)
}

func (n *Notifier) release(s *Subscription) {
	n.mu.Lock()
	s.capsule = nil
	if n.subs[s.pin] == s {
		delete(n.subs, s.pin)
	}
	n.mu.Unlock()
}

// mustRemove panics when the controller keeps a handler registration: the
// table would point at a capsule that is about to be dropped.
func (n *Notifier) mustRemove(pin int) {
	if err := n.ctrl.RemoveHandler(pin); err != nil {
		n.log.Error("notify: remove handler failed", "pin", pin, "err", err)
		panic(controllerErr("remove_handler", pin, err))
	}
}

func (n *Notifier) clearTrigger(pin int) {
	if err := n.ctrl.SetTrigger(pin, intc.TriggerDisable); err != nil {
		n.log.Warn("notify: restoring trigger failed", "pin", pin, "err", err)
	}
}

func controllerErr(op string, pin int, err error) error {
	e := &errcode.E{
		C:      errcode.ControllerFailed,
		Op:     op,
		Status: int32(intc.StatusOf(err)),
		Err:    err,
	}
	if pin >= 0 {
		e.Msg = "pin " + itoa(pin) + ": " + err.Error()
	}
	return e
}
