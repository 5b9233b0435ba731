// Package pins tracks which owner holds each GPIO of a board.
package pins

import (
	"sync"

	"golang.org/x/exp/slices"

	"pinnotify-go/boards"
	"pinnotify-go/errcode"
)

// Input is a claimed GPIO. It satisfies notify.Pin.
type Input struct {
	n int
}

func (p *Input) Number() int { return p.n }

// Registry hands out pins of one board to named owners.
type Registry struct {
	board boards.Board

	mu     sync.Mutex
	owners map[int]string // pin -> owner
	cache  map[int]*Input // pin -> handle
}

func New(board boards.Board) *Registry {
	return &Registry{
		board:  board,
		owners: make(map[int]string),
		cache:  make(map[int]*Input),
	}
}

// Board returns the board the registry was built for.
func (r *Registry) Board() boards.Board { return r.board }

// Claim gives pin n to owner. Claiming a pin the owner already holds returns
// the same handle.
func (r *Registry) Claim(owner string, n int) (*Input, error) {
	if owner == "" {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "claim", Msg: "empty owner"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.board.Has(n) {
		return nil, errcode.UnknownPin
	}
	if cur, inUse := r.owners[n]; inUse && cur != owner {
		return nil, errcode.PinInUse
	}
	r.owners[n] = owner
	p, ok := r.cache[n]
	if !ok {
		p = &Input{n: n}
		r.cache[n] = p
	}
	return p, nil
}

// Release frees n if owner holds it.
func (r *Registry) Release(owner string, n int) {
	r.mu.Lock()
	if cur, ok := r.owners[n]; ok && cur == owner {
		delete(r.owners, n)
	}
	r.mu.Unlock()
}

func (r *Registry) Owner(n int) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.owners[n]
	return o, ok
}

// Claimed lists held pins in ascending order.
func (r *Registry) Claimed() []int {
	r.mu.Lock()
	out := make([]int, 0, len(r.owners))
	for n := range r.owners {
		out = append(out, n)
	}
	r.mu.Unlock()
	slices.Sort(out)
	return out
}
