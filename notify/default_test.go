package notify

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinnotify-go/intc"
	"pinnotify-go/intc/sim"
)

func TestDefaultUsesSharedSimulator(t *testing.T) {
	ctrl := sim.Shared()
	assert.Same(t, Default(), Default())

	var c atomic.Int32
	sub, err := SubscribeWithCondition(PinNumber(60), RisingEdge, func() { c.Add(1) })
	require.NoError(t, err)
	assert.True(t, ctrl.ServiceEnabled())

	ctrl.SetLevel(60, true)
	ctrl.SetLevel(60, false)
	assert.EqualValues(t, 1, c.Load())

	require.NoError(t, ConfigureInterrupt(PinNumber(60), FallingEdge))
	assert.Equal(t, intc.TriggerNegEdge, ctrl.Trigger(60))
	ctrl.SetLevel(60, true)
	ctrl.SetLevel(60, false)
	assert.EqualValues(t, 2, c.Load())

	sub.Unsubscribe()
	assert.False(t, ctrl.Registered(60))

	again, err := Subscribe(PinNumber(60), func() {})
	require.NoError(t, err)
	again.Unsubscribe()
}
