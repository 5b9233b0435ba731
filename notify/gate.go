package notify

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"pinnotify-go/intc"
)

// Gate runs a controller's one-time service enable at most once per process.
//
// Concurrent callers join a single in-flight enable. Flights never overlap
// and each re-checks the flag, so the enable is never issued twice after a
// success. A failed enable leaves the gate closed and the next Ensure
// retries. There is no way back once enabled.
type Gate struct {
	enabled atomic.Bool
	flight  singleflight.Group
	enable  func() error
}

// NewGate returns a Gate around enable.
func NewGate(enable func() error) *Gate {
	return &Gate{enable: enable}
}

// Ensure returns nil once the enable step has succeeded.
func (g *Gate) Ensure() error {
	if g.enabled.Load() {
		return nil
	}
	_, err, _ := g.flight.Do("enable", func() (any, error) {
		if g.enabled.Load() {
			return nil, nil
		}
		if err := g.enable(); err != nil {
			return nil, err
		}
		g.enabled.Store(true)
		return nil, nil
	})
	return err
}

// Enabled reports whether the enable step has completed successfully.
func (g *Gate) Enabled() bool { return g.enabled.Load() }

var (
	gatesMu sync.Mutex
	gates   = map[intc.Controller]*Gate{}
)

// GateFor returns the process-wide Gate of c. Every Notifier on the same
// controller shares it. c must be a comparable value (a pointer in practice).
func GateFor(c intc.Controller) *Gate {
	gatesMu.Lock()
	defer gatesMu.Unlock()
	g, ok := gates[c]
	if !ok {
		g = NewGate(c.EnableService)
		gates[c] = g
	}
	return g
}
