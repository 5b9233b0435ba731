package boards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinPinSets(t *testing.T) {
	assert.True(t, Pico.Has(0))
	assert.True(t, Pico.Has(28))
	assert.False(t, Pico.Has(29))
	assert.True(t, Pico2.Has(29))
	assert.Equal(t, 29, Pico.Count())

	for _, n := range []int{20, 24, 26, 28, 31, 36} {
		assert.False(t, ESP32.Has(n), "esp32 gpio %d", n)
	}
	for _, n := range []int{0, 19, 21, 23, 25, 27, 32, 35} {
		assert.True(t, ESP32.Has(n), "esp32 gpio %d", n)
	}
	assert.Equal(t, 29, ESP32.Count())

	assert.True(t, Host.Has(63))
	assert.False(t, Host.Has(64))
	assert.False(t, Host.Has(-1))
}

func TestRangeClamps(t *testing.T) {
	assert.Equal(t, uint64(0b1110), Range(1, 3))
	assert.Equal(t, uint64(0b1), Range(-5, 0))
	assert.Equal(t, ^uint64(0), Range(0, 100))
	assert.Zero(t, Range(4, 3))
	assert.Equal(t, uint64(0b101), Of(0, 2))
}

func TestLookupBuiltins(t *testing.T) {
	b, ok := Lookup("pico")
	require.True(t, ok)
	assert.Equal(t, Pico, b)
	_, ok = Lookup("nope")
	assert.False(t, ok)
	assert.Subset(t, Names(), []string{"esp32", "host", "pico", "pico2"})
}

func TestRegisterDuplicatePanics(t *testing.T) {
	const name = "test_duplicate_board"
	if _, ok := Lookup(name); !ok {
		Register(Board{Name: name, Pins: Range(0, 3)})
	}
	assert.Panics(t, func() { Register(Board{Name: name}) })
}
