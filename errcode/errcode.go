package errcode

import "errors"

// Code is a stable, machine-readable error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	Unsupported   Code = "unsupported"
	InvalidParams Code = "invalid_params"

	UnknownPin Code = "unknown_pin"
	PinInUse   Code = "pin_in_use"

	// ControllerFailed is the single failure kind of the interrupt layer:
	// a controller call returned a non-success status.
	ControllerFailed Code = "controller_failed"

	Error Code = "error" // generic fallback
)

// E keeps a Code together with the failing operation, the native
// controller status (0 when none) and the underlying cause.
type E struct {
	C      Code
	Op     string
	Msg    string
	Status int32
	Err    error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s += " (" + e.Op + ")"
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	} else if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Is lets errors.Is match an *E against its bare Code.
func (e *E) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.C
}

// Of extracts a Code from an error chain, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	type coder interface{ Code() Code }
	var x coder
	if errors.As(err, &x) {
		return x.Code()
	}
	return Error
}
