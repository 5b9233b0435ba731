package sim

import (
	"errors"
	"sync"
	"testing"
	"time"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinnotify-go/intc"
)

type counter struct{ n int }

func count(arg unsafe.Pointer) { (*counter)(arg).n++ }

func armed(t *testing.T, trig intc.Trigger) (*Controller, *counter) {
	t.Helper()
	c := New(WithLines(8))
	cnt := &counter{}
	require.NoError(t, c.EnableService())
	require.NoError(t, c.SetTrigger(3, trig))
	require.NoError(t, c.RegisterHandler(3, count, unsafe.Pointer(cnt)))
	require.NoError(t, c.EnablePinInterrupt(3))
	return c, cnt
}

func TestEnableServiceOnlyOnce(t *testing.T) {
	c := New()
	require.NoError(t, c.EnableService())
	assert.ErrorIs(t, c.EnableService(), intc.StatusInvalidState)
	assert.Equal(t, 2, c.Calls(OpEnableService))
	assert.True(t, c.ServiceEnabled())
}

func TestRegisterRequiresService(t *testing.T) {
	c := New()
	err := c.RegisterHandler(1, count, nil)
	assert.ErrorIs(t, err, intc.StatusInvalidState)
	assert.False(t, c.Registered(1))
}

func TestRegisterTwiceRejected(t *testing.T) {
	c, _ := armed(t, intc.TriggerAnyEdge)
	assert.ErrorIs(t, c.RegisterHandler(3, count, nil), intc.StatusInvalidState)
}

func TestPinOutOfRange(t *testing.T) {
	c := New(WithLines(4))
	assert.ErrorIs(t, c.SetTrigger(4, intc.TriggerPosEdge), intc.StatusInvalidArg)
	assert.ErrorIs(t, c.EnablePinInterrupt(-2), intc.StatusInvalidArg)
	assert.False(t, c.SetLevel(9, true))
}

func TestSetTriggerRejectsMax(t *testing.T) {
	c := New()
	assert.ErrorIs(t, c.SetTrigger(0, intc.TriggerMax), intc.StatusInvalidArg)
}

func TestEdgeAndLevelEvaluation(t *testing.T) {
	cases := []struct {
		trig   intc.Trigger
		levels []bool
		want   int
	}{
		{intc.TriggerPosEdge, []bool{true, false, true, true}, 2},
		{intc.TriggerNegEdge, []bool{true, false, true, false}, 2},
		{intc.TriggerAnyEdge, []bool{true, false, true, true}, 3},
		{intc.TriggerHighLevel, []bool{true, true, false}, 2},
		{intc.TriggerLowLevel, []bool{false, true, false}, 2},
		{intc.TriggerDisable, []bool{true, false}, 0},
	}
	for _, tc := range cases {
		c, cnt := armed(t, tc.trig)
		for _, l := range tc.levels {
			c.SetLevel(3, l)
		}
		assert.Equal(t, tc.want, cnt.n, "trigger %d", tc.trig)
		assert.Equal(t, tc.want, c.Delivered())
	}
}

func TestDisabledLineDoesNotDeliver(t *testing.T) {
	c, cnt := armed(t, intc.TriggerAnyEdge)
	require.NoError(t, c.DisablePinInterrupt(3))
	assert.False(t, c.Fire(3))
	require.NoError(t, c.EnablePinInterrupt(3))
	assert.True(t, c.Fire(3))
	assert.Equal(t, 1, cnt.n)
}

func TestFailInjection(t *testing.T) {
	c := New()
	boom := errors.New("boom")
	c.Fail(OpSetTrigger, 2, intc.StatusNotSupported)
	c.Fail(OpEnablePin, AnyPin, boom)

	assert.ErrorIs(t, c.SetTrigger(2, intc.TriggerAnyEdge), intc.StatusNotSupported)
	assert.NoError(t, c.SetTrigger(1, intc.TriggerAnyEdge))
	assert.ErrorIs(t, c.EnablePinInterrupt(5), boom)

	c.Fail(OpEnablePin, AnyPin, nil)
	assert.NoError(t, c.EnablePinInterrupt(5))
	assert.Equal(t, 2, c.Calls(OpSetTrigger))
}

func TestRemoveWaitsForInFlightHandler(t *testing.T) {
	c := New()
	require.NoError(t, c.EnableService())
	require.NoError(t, c.SetTrigger(0, intc.TriggerAnyEdge))

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	h := func(unsafe.Pointer) {
		once.Do(func() { close(entered) })
		<-release
	}
	require.NoError(t, c.RegisterHandler(0, h, nil))
	require.NoError(t, c.EnablePinInterrupt(0))

	go c.Fire(0)
	<-entered

	removed := make(chan struct{})
	go func() {
		_ = c.RemoveHandler(0)
		close(removed)
	}()

	select {
	case <-removed:
		t.Fatal("RemoveHandler returned while handler was running")
	case <-time.After(20 * time.Millisecond):
	}
	close(release)
	select {
	case <-removed:
	case <-time.After(time.Second):
		t.Fatal("RemoveHandler did not return")
	}
	assert.False(t, c.Registered(0))
	assert.False(t, c.Fire(0))
}

func TestOpNames(t *testing.T) {
	assert.Equal(t, "enable_service", OpEnableService.String())
	assert.Equal(t, "remove_handler", OpRemove.String())
	assert.Equal(t, "unknown", numOps.String())
}
