package notify

import "unsafe"

// capsule boxes a callback at a stable heap address so it can travel through
// the controller's handler table as an opaque pointer.
type capsule struct {
	fn func()
}

func newCapsule(fn func()) *capsule {
	if fn == nil {
		panic("notify: nil callback")
	}
	return &capsule{fn: fn}
}

// pointer is valid for as long as the owning Subscription holds the capsule.
func (c *capsule) pointer() unsafe.Pointer { return unsafe.Pointer(c) }

func (c *capsule) invoke() { c.fn() }

// capsuleFrom reverses pointer. p must come from pointer() on a capsule that
// is still owned by a live Subscription.
func capsuleFrom(p unsafe.Pointer) *capsule { return (*capsule)(p) }

// trampoline is the only handler this package registers with a controller.
// It runs in interrupt context: one conversion, one indirect call.
func trampoline(arg unsafe.Pointer) {
	capsuleFrom(arg).invoke()
}
