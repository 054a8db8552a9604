package pipeline

import "sync"

// Barrier synchronizes a fixed number of goroutines at a rendezvous point,
// mirroring pthread_barrier_wait: every call blocks until n callers have
// arrived, then all are released, and exactly one of the n calls returns
// true (the "serial" caller, conventionally used to perform a once-per-round
// follow-up action). Reusable across rounds via an internal generation
// counter, though the pipeline driver only ever uses one round.
type Barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	n          int
	count      int
	generation int
}

// NewBarrier creates a barrier for n participants. n must be >= 1.
func NewBarrier(n int) *Barrier {
	b := &Barrier{n: n}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until n callers have called Wait, then releases all of them.
// Exactly one call returns true.
func (b *Barrier) Wait() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.generation
	b.count++
	if b.count == b.n {
		b.count = 0
		b.generation++
		b.cond.Broadcast()
		return true
	}
	for gen == b.generation {
		b.cond.Wait()
	}
	return false
}
