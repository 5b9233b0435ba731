// Package sim is an in-memory interrupt controller for host builds and tests.
//
// Lines hold a level, a trigger type, an enable bit and one handler slot.
// SetLevel evaluates the trigger like the hardware would and delivers to the
// registered handler synchronously on the caller's goroutine, which plays the
// part of interrupt context. Handlers must not call back into the Controller.
package sim

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"pinnotify-go/intc"
)

// Op names a controller entry point for counters and failure injection.
type Op uint8

const (
	OpEnableService Op = iota
	OpSetTrigger
	OpEnablePin
	OpDisablePin
	OpRegister
	OpRemove
	OpResetConflicting
	numOps
)

func (o Op) String() string {
	switch o {
	case OpEnableService:
		return "enable_service"
	case OpSetTrigger:
		return "set_trigger"
	case OpEnablePin:
		return "enable_pin"
	case OpDisablePin:
		return "disable_pin"
	case OpRegister:
		return "register_handler"
	case OpRemove:
		return "remove_handler"
	case OpResetConflicting:
		return "reset_conflicting"
	default:
		return "unknown"
	}
}

// AnyPin matches every pin in Fail.
const AnyPin = -1

// DefaultLines is the number of lines of a Controller built without WithLines.
const DefaultLines = 64

var (
	_ intc.Controller       = (*Controller)(nil)
	_ intc.ConflictResetter = (*Controller)(nil)
)

type line struct {
	trigger intc.Trigger
	enabled bool
	level   bool
	handler intc.Handler
	arg     unsafe.Pointer
}

type failKey struct {
	op  Op
	pin int
}

// Controller implements intc.Controller in memory.
type Controller struct {
	// mu guards everything below; delivery holds it shared so that
	// RemoveHandler (exclusive) waits for in-flight handlers.
	mu      sync.RWMutex
	service bool
	lines   []line
	fails   map[failKey]error

	calls     [numOps]atomic.Uint32
	delivered atomic.Uint32
}

// Option configures a Controller.
type Option func(*Controller)

// WithLines sets the number of simulated lines.
func WithLines(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.lines = make([]line, n)
		}
	}
}

func New(opts ...Option) *Controller {
	c := &Controller{
		lines: make([]line, DefaultLines),
		fails: map[failKey]error{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Fail makes op on pin return err until cleared with a nil err.
// pin may be AnyPin; EnableService ignores pin.
func (c *Controller) Fail(op Op, pin int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := failKey{op: op, pin: pin}
	if err == nil {
		delete(c.fails, k)
		return
	}
	c.fails[k] = err
}

// caller holds mu
func (c *Controller) injected(op Op, pin int) error {
	c.calls[op].Add(1)
	if err, ok := c.fails[failKey{op: op, pin: pin}]; ok {
		return err
	}
	if err, ok := c.fails[failKey{op: op, pin: AnyPin}]; ok {
		return err
	}
	return nil
}

// caller holds mu
func (c *Controller) lineFor(op Op, pin int) (*line, error) {
	if err := c.injected(op, pin); err != nil {
		return nil, err
	}
	if pin < 0 || pin >= len(c.lines) {
		return nil, intc.StatusInvalidArg
	}
	return &c.lines[pin], nil
}

// EnableService installs the dispatch service. A second call fails with
// StatusInvalidState, as the native service does.
func (c *Controller) EnableService() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.injected(OpEnableService, AnyPin); err != nil {
		return err
	}
	if c.service {
		return intc.StatusInvalidState
	}
	c.service = true
	return nil
}

func (c *Controller) SetTrigger(pin int, t intc.Trigger) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, err := c.lineFor(OpSetTrigger, pin)
	if err != nil {
		return err
	}
	if t >= intc.TriggerMax {
		return intc.StatusInvalidArg
	}
	l.trigger = t
	return nil
}

func (c *Controller) EnablePinInterrupt(pin int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, err := c.lineFor(OpEnablePin, pin)
	if err != nil {
		return err
	}
	l.enabled = true
	return nil
}

func (c *Controller) DisablePinInterrupt(pin int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, err := c.lineFor(OpDisablePin, pin)
	if err != nil {
		return err
	}
	l.enabled = false
	return nil
}

func (c *Controller) RegisterHandler(pin int, h intc.Handler, arg unsafe.Pointer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, err := c.lineFor(OpRegister, pin)
	if err != nil {
		return err
	}
	switch {
	case !c.service:
		return intc.StatusInvalidState
	case h == nil:
		return intc.StatusInvalidArg
	case l.handler != nil:
		return intc.StatusInvalidState
	}
	l.handler, l.arg = h, arg
	return nil
}

// RemoveHandler clears the slot. Removing an empty slot succeeds.
func (c *Controller) RemoveHandler(pin int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, err := c.lineFor(OpRemove, pin)
	if err != nil {
		return err
	}
	l.handler, l.arg = nil, nil
	return nil
}

func (c *Controller) ResetConflicting(pin int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.lineFor(OpResetConflicting, pin)
	return err
}

// SetLevel drives the line and delivers one interrupt if the configured
// trigger matches: edges on transitions, levels on every call that leaves
// the line at the triggering level. It reports whether a handler ran.
func (c *Controller) SetLevel(pin int, level bool) bool {
	c.mu.Lock()
	if pin < 0 || pin >= len(c.lines) {
		c.mu.Unlock()
		return false
	}
	l := &c.lines[pin]
	old := l.level
	l.level = level
	fire := l.trigger.Fires(old, level)
	c.mu.Unlock()
	if !fire {
		return false
	}
	return c.deliver(pin)
}

// Fire delivers one interrupt on pin regardless of its level, provided the
// line is armed. It reports whether a handler ran.
func (c *Controller) Fire(pin int) bool {
	return c.deliver(pin)
}

func (c *Controller) deliver(pin int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if pin < 0 || pin >= len(c.lines) {
		return false
	}
	l := &c.lines[pin]
	if !c.service || !l.enabled || l.trigger == intc.TriggerDisable || l.handler == nil {
		return false
	}
	l.handler(l.arg)
	c.delivered.Add(1)
	return true
}

// ---- Introspection for tests and tools ----

// Calls returns how many times op was invoked, failed calls included.
func (c *Controller) Calls(op Op) int { return int(c.calls[op].Load()) }

// Delivered returns the number of handler invocations so far.
func (c *Controller) Delivered() int { return int(c.delivered.Load()) }

func (c *Controller) ServiceEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.service
}

func (c *Controller) Registered(pin int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return pin >= 0 && pin < len(c.lines) && c.lines[pin].handler != nil
}

func (c *Controller) Trigger(pin int) intc.Trigger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if pin < 0 || pin >= len(c.lines) {
		return intc.TriggerDisable
	}
	return c.lines[pin].trigger
}

func (c *Controller) PinEnabled(pin int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return pin >= 0 && pin < len(c.lines) && c.lines[pin].enabled
}

func (c *Controller) Level(pin int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return pin >= 0 && pin < len(c.lines) && c.lines[pin].level
}

var (
	sharedOnce sync.Once
	shared     *Controller
)

// Shared returns the process-wide simulated controller used as the host
// platform default.
func Shared() *Controller {
	sharedOnce.Do(func() { shared = New() })
	return shared
}
