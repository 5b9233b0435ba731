// Package boards describes which GPIO numbers a board exposes.
//
// A Board only says what the PCB/SoC can do. Wiring choices belong to the
// program that claims pins.
package boards

import (
	"fmt"
	"sync"

	"golang.org/x/exp/slices"
)

// Board names a pin set. Bit n of Pins is set when GPIO n exists.
type Board struct {
	Name string
	Pins uint64
}

// Has reports whether GPIO n exists on the board.
func (b Board) Has(n int) bool {
	return n >= 0 && n < 64 && b.Pins&(1<<uint(n)) != 0
}

// Count returns the number of usable GPIOs.
func (b Board) Count() int {
	n := 0
	for p := b.Pins; p != 0; p &= p - 1 {
		n++
	}
	return n
}

// Range returns the mask with bits lo..hi set (inclusive).
func Range(lo, hi int) uint64 {
	var m uint64
	for n := lo; n <= hi && n < 64; n++ {
		if n >= 0 {
			m |= 1 << uint(n)
		}
	}
	return m
}

// Of returns the mask with the given bits set.
func Of(pins ...int) uint64 {
	var m uint64
	for _, n := range pins {
		m |= Range(n, n)
	}
	return m
}

var (
	mu     sync.RWMutex
	boards = map[string]Board{}
)

// Register adds b to the process-wide table. It panics on a duplicate name.
func Register(b Board) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := boards[b.Name]; exists {
		panic(fmt.Sprintf("board already registered with name %q", b.Name))
	}
	boards[b.Name] = b
}

func Lookup(name string) (Board, bool) {
	mu.RLock()
	defer mu.RUnlock()
	b, ok := boards[name]
	return b, ok
}

// Names lists registered boards in lexical order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(boards))
	for n := range boards {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Built-in boards.
var (
	Pico  = Board{Name: "pico", Pins: Range(0, 28)}
	Pico2 = Board{Name: "pico2", Pins: Range(0, 29)}
	// ESP32 leaves out the flash pins and the gaps of the WROOM pinout.
	ESP32 = Board{Name: "esp32", Pins: Range(0, 19) | Range(21, 23) | Of(25, 27) | Range(32, 35)}
	Host  = Board{Name: "host", Pins: Range(0, 63)}
)

func init() {
	Register(Pico)
	Register(Pico2)
	Register(ESP32)
	Register(Host)
}
