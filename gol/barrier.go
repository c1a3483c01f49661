package gol

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrBarrierParties = errors.New("barrier needs at least one party")
	ErrBarrierBusy    = errors.New("barrier closed while parties are waiting")
	ErrBarrierBroken  = errors.New("barrier broken")
)

// Barrier is a reusable rendezvous for a fixed number of goroutines.
// Wait returns once every party has called it since the previous release.
type Barrier struct {
	parties    int
	count      int    // parties waiting in the current round
	generation uint64 // incremented on every release
	err        error  // set once the barrier is broken
	cond       *sync.Cond
}

func NewBarrier(parties int) (*Barrier, error) {
	if parties < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBarrierParties, parties)
	}
	return &Barrier{
		parties: parties,
		cond:    sync.NewCond(new(sync.Mutex)),
	}, nil
}

func (b *Barrier) Parties() int { return b.parties }

// Wait blocks until all parties arrive, or returns the error the barrier was broken with.
func (b *Barrier) Wait() error {
	b.cond.L.Lock()
	defer b.cond.L.Unlock()
	if b.err != nil {
		return b.err
	}
	generation := b.generation
	b.count++
	if b.count == b.parties {
		// Last arrival releases the round
		b.count = 0
		b.generation++
		b.cond.Broadcast()
		return nil
	}
	for generation == b.generation && b.err == nil {
		b.cond.Wait()
	}
	if generation != b.generation {
		return nil
	}
	return b.err
}

// Break releases every waiting party with err and makes later waits fail immediately.
func (b *Barrier) Break(err error) {
	b.cond.L.Lock()
	defer b.cond.L.Unlock()
	if b.err != nil {
		return
	}
	b.err = fmt.Errorf("%w: %w", ErrBarrierBroken, err)
	b.count = 0
	b.cond.Broadcast()
}

// Close fails if a party is still parked in Wait.
func (b *Barrier) Close() error {
	b.cond.L.Lock()
	defer b.cond.L.Unlock()
	if b.count != 0 {
		return fmt.Errorf("%w: %d of %d", ErrBarrierBusy, b.count, b.parties)
	}
	return nil
}
