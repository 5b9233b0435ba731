package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapsulePointerIsStable(t *testing.T) {
	c := newCapsule(func() {})
	p := c.pointer()
	for i := 0; i < 3; i++ {
		assert.Equal(t, p, c.pointer())
	}
	assert.Same(t, c, capsuleFrom(p))
}

func TestTrampolineInvokesCapturedState(t *testing.T) {
	var order []int
	next := 0
	c := newCapsule(func() {
		next++
		order = append(order, next)
	})
	for i := 0; i < 4; i++ {
		trampoline(c.pointer())
	}
	assert.Equal(t, []int{1, 2, 3, 4}, order)
}

func TestTrampolineKeepsCapsulesApart(t *testing.T) {
	var a, b int
	ca := newCapsule(func() { a++ })
	cb := newCapsule(func() { b++ })
	trampoline(ca.pointer())
	trampoline(cb.pointer())
	trampoline(cb.pointer())
	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestNilCallbackPanics(t *testing.T) {
	assert.PanicsWithValue(t, "notify: nil callback", func() { newCapsule(nil) })
}
