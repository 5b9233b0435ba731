package irqring

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPopOrderAcrossWrap(t *testing.T) {
	r := New(8)
	next := 0
	for round := 0; round < 50; round++ {
		for i := 0; i < 5; i++ {
			require.True(t, r.Push(round*5+i))
		}
		for i := 0; i < 5; i++ {
			ev, ok := r.Pop()
			require.True(t, ok)
			assert.Equal(t, next, ev.Pin)
			assert.Equal(t, uint32(next+1), ev.Seq)
			next++
		}
	}
	_, ok := r.Pop()
	assert.False(t, ok)
}

func TestFullRingDropsAndCounts(t *testing.T) {
	r := New(4)
	for i := 0; i < 4; i++ {
		require.True(t, r.Push(i))
	}
	assert.False(t, r.Push(99))
	assert.Equal(t, uint32(1), r.Dropped())
	assert.Equal(t, 4, r.Len())

	evs := r.Drain(nil)
	require.Len(t, evs, 4)
	assert.Equal(t, 3, evs[3].Pin)

	require.True(t, r.Push(5))
	ev, _ := r.Pop()
	assert.Equal(t, uint32(6), ev.Seq, "dropped push still consumed a sequence number")
}

func TestReadableEdgeCoalesces(t *testing.T) {
	r := New(8)
	select {
	case <-r.Readable():
		t.Fatal("unexpected Readable on empty ring")
	default:
	}
	r.Push(1)
	r.Push(2)
	select {
	case <-r.Readable():
	default:
		t.Fatal("expected Readable")
	}
	select {
	case <-r.Readable():
		t.Fatal("unexpected extra Readable")
	default:
	}
	r.Drain(nil)
	r.Push(3)
	select {
	case <-r.Readable():
	default:
		t.Fatal("expected Readable after refill")
	}
}

func TestConcurrentProducerConsumer(t *testing.T) {
	r := New(16)
	const n = 5000
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; {
			if r.Push(i) {
				i++
			}
		}
	}()

	var got []Event
	for len(got) < n {
		got = r.Drain(got)
	}
	wg.Wait()
	for i, ev := range got {
		require.Equal(t, i, ev.Pin)
	}
}

func TestNewRejectsBadSize(t *testing.T) {
	assert.Panics(t, func() { New(6) })
	assert.Panics(t, func() { New(1) })
}
