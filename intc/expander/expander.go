// Package expander implements intc.Controller for a PCA9554-class 8-bit I²C
// GPIO expander.
//
// The expander has a single open-drain INT output and no per-line trigger
// logic, so triggers are evaluated here: Service reads the input port once
// and dispatches every armed line whose trigger matches the change since the
// previous read. Service does bus I/O and must not be called from interrupt
// context; the usual wiring subscribes the MCU pin tied to INT with a
// callback that wakes a goroutine calling Service.
package expander

import (
	"sync"
	"unsafe"

	"tinygo.org/x/drivers"

	"pinnotify-go/intc"
)

// Registers.
const (
	RegInput    = 0x00
	RegOutput   = 0x01
	RegPolarity = 0x02
	RegConfig   = 0x03 // 1 = input
)

const (
	// Lines is the number of expander I/O lines.
	Lines = 8
	// DefaultAddress is the PCA9554 address with A2..A0 tied low.
	DefaultAddress = 0x20
)

var (
	_ intc.Controller       = (*Device)(nil)
	_ intc.ConflictResetter = (*Device)(nil)
)

type line struct {
	trigger intc.Trigger
	enabled bool
	handler intc.Handler
	arg     unsafe.Pointer
}

// Device is one expander on a bus.
type Device struct {
	bus  drivers.I2C
	addr uint16

	// mu guards the fields below; dispatch holds it shared so that
	// RemoveHandler waits for a running handler.
	mu      sync.RWMutex
	service bool
	last    byte
	lines   [Lines]line
}

// New returns a Device at addr on bus. Nothing is sent until EnableService.
func New(bus drivers.I2C, addr uint16) *Device {
	return &Device{bus: bus, addr: addr}
}

func (d *Device) readReg(reg byte) (byte, error) {
	var r [1]byte
	if err := d.bus.Tx(d.addr, []byte{reg}, r[:]); err != nil {
		return 0, err
	}
	return r[0], nil
}

func (d *Device) writeReg(reg, v byte) error {
	return d.bus.Tx(d.addr, []byte{reg, v}, nil)
}

// EnableService takes the first input snapshot edges are measured against.
func (d *Device) EnableService() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.service {
		return intc.StatusInvalidState
	}
	in, err := d.readReg(RegInput)
	if err != nil {
		return err
	}
	d.last = in
	d.service = true
	return nil
}

// ResetConflicting makes the line an input with normal polarity.
func (d *Device) ResetConflicting(pin int) error {
	if !valid(pin) {
		return intc.StatusInvalidArg
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	bit := byte(1) << pin
	cfg, err := d.readReg(RegConfig)
	if err != nil {
		return err
	}
	if cfg&bit == 0 {
		if err := d.writeReg(RegConfig, cfg|bit); err != nil {
			return err
		}
	}
	pol, err := d.readReg(RegPolarity)
	if err != nil {
		return err
	}
	if pol&bit != 0 {
		return d.writeReg(RegPolarity, pol&^bit)
	}
	return nil
}

func (d *Device) SetTrigger(pin int, t intc.Trigger) error {
	if !valid(pin) || t >= intc.TriggerMax {
		return intc.StatusInvalidArg
	}
	d.mu.Lock()
	d.lines[pin].trigger = t
	d.mu.Unlock()
	return nil
}

func (d *Device) EnablePinInterrupt(pin int) error  { return d.setEnabled(pin, true) }
func (d *Device) DisablePinInterrupt(pin int) error { return d.setEnabled(pin, false) }

func (d *Device) setEnabled(pin int, on bool) error {
	if !valid(pin) {
		return intc.StatusInvalidArg
	}
	d.mu.Lock()
	d.lines[pin].enabled = on
	d.mu.Unlock()
	return nil
}

func (d *Device) RegisterHandler(pin int, h intc.Handler, arg unsafe.Pointer) error {
	if !valid(pin) || h == nil {
		return intc.StatusInvalidArg
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.service {
		return intc.StatusInvalidState
	}
	l := &d.lines[pin]
	if l.handler != nil {
		return intc.StatusInvalidState
	}
	l.handler, l.arg = h, arg
	return nil
}

func (d *Device) RemoveHandler(pin int) error {
	if !valid(pin) {
		return intc.StatusInvalidArg
	}
	d.mu.Lock()
	d.lines[pin].handler, d.lines[pin].arg = nil, nil
	d.mu.Unlock()
	return nil
}

// Service reads the input port and runs the handler of every armed line
// whose trigger fires. It returns how many handlers ran.
func (d *Device) Service() (int, error) {
	in, err := d.readReg(RegInput)
	if err != nil {
		return 0, err
	}

	d.mu.Lock()
	if !d.service {
		d.mu.Unlock()
		return 0, intc.StatusInvalidState
	}
	old := d.last
	d.last = in
	var due byte
	for i := range d.lines {
		bit := byte(1) << i
		if d.lines[i].trigger.Fires(old&bit != 0, in&bit != 0) {
			due |= bit
		}
	}
	d.mu.Unlock()

	if due == 0 {
		return 0, nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	n := 0
	for i := range d.lines {
		l := &d.lines[i]
		if due&(1<<i) == 0 || !l.enabled || l.handler == nil {
			continue
		}
		l.handler(l.arg)
		n++
	}
	return n, nil
}

func valid(pin int) bool { return pin >= 0 && pin < Lines }
