// Package intc describes the interrupt controller the notify layer drives.
//
// The contract mirrors a C-style GPIO ISR registry: one global service
// enable, per-pin trigger type and enable bits, and a handler table taking a
// raw function plus an opaque context pointer that is passed back verbatim.
package intc

//go:generate mockgen -source=intc.go -destination=mocks/mock_intc.go -package=mocks Controller,ConflictResetter

import (
	"errors"
	"unsafe"

	"pinnotify-go/x/conv"
)

// Trigger is the controller's native trigger-type encoding.
type Trigger uint32

const (
	TriggerDisable   Trigger = 0
	TriggerPosEdge   Trigger = 1
	TriggerNegEdge   Trigger = 2
	TriggerAnyEdge   Trigger = 3
	TriggerLowLevel  Trigger = 4
	TriggerHighLevel Trigger = 5
	TriggerMax       Trigger = 6 // reserved upper bound, not a trigger policy
)

// Fires reports whether a line configured with t raises an interrupt when
// its level moves from old to now. Level triggers fire on every sample at
// the triggering level.
func (t Trigger) Fires(old, now bool) bool {
	switch t {
	case TriggerPosEdge:
		return !old && now
	case TriggerNegEdge:
		return old && !now
	case TriggerAnyEdge:
		return old != now
	case TriggerLowLevel:
		return !now
	case TriggerHighLevel:
		return now
	default:
		return false
	}
}

// Handler is the raw callback signature stored in the dispatch table.
// arg is the context pointer given at registration.
type Handler func(arg unsafe.Pointer)

// Controller is the per-process interrupt controller.
//
// RemoveHandler must be synchronous with respect to delivery: once it
// returns, the handler for that pin is not running and will not run again.
type Controller interface {
	EnableService() error
	SetTrigger(pin int, t Trigger) error
	EnablePinInterrupt(pin int) error
	DisablePinInterrupt(pin int) error
	RegisterHandler(pin int, h Handler, arg unsafe.Pointer) error
	RemoveHandler(pin int) error
}

// ConflictResetter is implemented by controllers whose pins can carry a
// low-power or analog configuration that blocks digital interrupts.
type ConflictResetter interface {
	ResetConflicting(pin int) error
}

// Status is a native, non-zero controller status code.
type Status int32

// Native status values (ESP-IDF esp_err_t numbering).
const (
	StatusFail         Status = -1
	StatusNoMem        Status = 0x101
	StatusInvalidArg   Status = 0x102
	StatusInvalidState Status = 0x103
	StatusNotFound     Status = 0x105
	StatusNotSupported Status = 0x106
)

func (s Status) Error() string {
	var buf [24]byte
	if s < 0 {
		return "intc: status " + string(conv.Itoa(buf[:], int64(s)))
	}
	return "intc: status 0x" + string(conv.Hex32(buf[:8], uint32(s), 0))
}

// StatusOf extracts the native status from err, or StatusFail when err
// carries none. A nil err yields 0.
func StatusOf(err error) Status {
	if err == nil {
		return 0
	}
	var s Status
	if errors.As(err, &s) {
		return s
	}
	return StatusFail
}
