//go:build rp2040 || rp2350

// Package rp2 implements intc.Controller on RP2040/RP2350 GPIO bank 0.
//
// TinyGo owns the IO_IRQ_BANK0 vector and calls a func(machine.Pin) per pin.
// The controller installs one dispatch method for every armed pin and keeps
// the raw handler and its context in a slot table, so enabling and disabling
// a pin never touches the registration itself.
package rp2

import (
	"machine"
	"runtime/interrupt"
	"sync"
	"unsafe"

	"pinnotify-go/intc"
)

const maxPins = 48

var _ intc.Controller = (*Controller)(nil)

type slot struct {
	h   intc.Handler
	arg unsafe.Pointer

	change  machine.PinChange
	enabled bool

	// What is currently installed in machine.
	installed       bool
	installedChange machine.PinChange
}

// Controller drives machine.Pin.SetInterrupt.
type Controller struct {
	mu    sync.Mutex // serialises configuration; never taken by dispatch
	slots [maxPins]slot
	isr   func(machine.Pin)
}

func New() *Controller {
	c := &Controller{}
	c.isr = c.dispatch
	return c
}

var (
	sharedOnce sync.Once
	shared     *Controller
)

// Shared returns the process-wide controller.
func Shared() *Controller {
	sharedOnce.Do(func() { shared = New() })
	return shared
}

// dispatch runs in interrupt context.
func (c *Controller) dispatch(p machine.Pin) {
	if int(p) >= maxPins {
		return
	}
	s := &c.slots[p]
	if h := s.h; h != nil {
		h(s.arg)
	}
}

// EnableService is a no-op: TinyGo enables the bank interrupt the first
// time a pin callback is installed.
func (c *Controller) EnableService() error { return nil }

func (c *Controller) SetTrigger(pin int, t intc.Trigger) error {
	ch, ok := toPinChange(t)
	if !ok {
		return intc.StatusInvalidArg
	}
	return c.update(pin, func(s *slot) { s.change = ch })
}

func (c *Controller) EnablePinInterrupt(pin int) error {
	return c.update(pin, func(s *slot) { s.enabled = true })
}

func (c *Controller) DisablePinInterrupt(pin int) error {
	return c.update(pin, func(s *slot) { s.enabled = false })
}

func (c *Controller) RegisterHandler(pin int, h intc.Handler, arg unsafe.Pointer) error {
	if h == nil {
		return intc.StatusInvalidArg
	}
	if pin < 0 || pin >= maxPins {
		return intc.StatusInvalidArg
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	s := &c.slots[pin]
	if s.h != nil {
		return intc.StatusInvalidState
	}
	st := interrupt.Disable()
	s.h, s.arg = h, arg
	interrupt.Restore(st)
	return c.apply(pin, s)
}

// RemoveHandler disarms the pin and clears the slot. With interrupts masked
// while the slot is cleared, no dispatch can observe a stale context.
func (c *Controller) RemoveHandler(pin int) error {
	if pin < 0 || pin >= maxPins {
		return intc.StatusInvalidArg
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	s := &c.slots[pin]
	st := interrupt.Disable()
	s.h, s.arg = nil, nil
	interrupt.Restore(st)
	return c.apply(pin, s)
}

func (c *Controller) update(pin int, fn func(*slot)) error {
	if pin < 0 || pin >= maxPins {
		return intc.StatusInvalidArg
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	s := &c.slots[pin]
	fn(s)
	return c.apply(pin, s)
}

// apply reconciles machine state with the slot. caller holds mu.
func (c *Controller) apply(pin int, s *slot) error {
	p := machine.Pin(pin)
	want := s.enabled && s.h != nil && s.change != 0
	if s.installed && (!want || s.installedChange != s.change) {
		if err := p.SetInterrupt(s.installedChange, nil); err != nil {
			return mapErr(err)
		}
		s.installed = false
	}
	if want && !s.installed {
		if err := p.SetInterrupt(s.change, c.isr); err != nil {
			return mapErr(err)
		}
		s.installed, s.installedChange = true, s.change
	}
	return nil
}

func toPinChange(t intc.Trigger) (machine.PinChange, bool) {
	switch t {
	case intc.TriggerDisable:
		return 0, true
	case intc.TriggerPosEdge:
		return machine.PinRising, true
	case intc.TriggerNegEdge:
		return machine.PinFalling, true
	case intc.TriggerAnyEdge:
		return machine.PinToggle, true
	case intc.TriggerLowLevel:
		return machine.PinLevelLow, true
	case intc.TriggerHighLevel:
		return machine.PinLevelHigh, true
	default:
		return 0, false
	}
}

func mapErr(err error) error {
	switch err {
	case nil:
		return nil
	case machine.ErrInvalidInputPin:
		return intc.StatusInvalidArg
	case machine.ErrNoPinChangeChannel:
		return intc.StatusInvalidState
	default:
		return intc.StatusFail
	}
}
