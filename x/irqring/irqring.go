// Package irqring is a single-producer, single-consumer ring of pin events
// for handing work from an interrupt callback to a goroutine.
//
// Push never blocks or allocates and is safe from interrupt context. A full
// ring drops the event and counts it.
package irqring

import "sync/atomic"

// Event is one delivery: the pin and a per-ring sequence number.
type Event struct {
	Pin int
	Seq uint32
}

// Ring holds up to a power-of-two number of events.
type Ring struct {
	buf  []Event
	mask uint32
	rd   atomic.Uint32 // consumer index (monotonic)
	wr   atomic.Uint32 // producer index (monotonic)
	seq  uint32        // producer only

	dropped  atomic.Uint32
	readable chan struct{} // empty -> non-empty edge
}

func New(size int) *Ring {
	if size < 2 || (size&(size-1)) != 0 {
		panic("irqring: size must be power of two >= 2")
	}
	return &Ring{
		buf:      make([]Event, size),
		mask:     uint32(size - 1),
		readable: make(chan struct{}, 1),
	}
}

func (r *Ring) size() uint32 { return uint32(len(r.buf)) }

// Len returns the number of queued events.
func (r *Ring) Len() int {
	return int(r.wr.Load() - r.rd.Load())
}

// Push queues an event for pin. It reports false when the ring is full.
func (r *Ring) Push(pin int) bool {
	rd := r.rd.Load()
	wr := r.wr.Load()
	r.seq++
	if wr-rd == r.size() {
		r.dropped.Add(1)
		return false
	}
	r.buf[wr&r.mask] = Event{Pin: pin, Seq: r.seq}
	r.wr.Store(wr + 1) // release

	if wr == rd {
		select {
		case r.readable <- struct{}{}:
		default:
		}
	}
	return true
}

// Pop removes the oldest event.
func (r *Ring) Pop() (Event, bool) {
	rd := r.rd.Load()
	if rd == r.wr.Load() { // acquire
		return Event{}, false
	}
	ev := r.buf[rd&r.mask]
	r.rd.Store(rd + 1)
	return ev, true
}

// Drain pops every queued event into dst and returns the extended slice.
func (r *Ring) Drain(dst []Event) []Event {
	for {
		ev, ok := r.Pop()
		if !ok {
			return dst
		}
		dst = append(dst, ev)
	}
}

// Dropped returns how many pushes found the ring full.
func (r *Ring) Dropped() uint32 { return r.dropped.Load() }

// Readable signals the empty to non-empty transition. Tokens coalesce, so
// a consumer drains fully after each receive.
func (r *Ring) Readable() <-chan struct{} { return r.readable }
