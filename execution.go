package striad

import (
	"runtime"
	"sync"
)

// Workers returns the size of the worker pool: the runtime's GOMAXPROCS
// setting, which the environment controls. It is queried, never changed.
func Workers() int {
	return runtime.GOMAXPROCS(0)
}

// Partition returns the half-open range [lo, hi) of [0, n) owned by worker
// id out of workers. Ranges are contiguous, ordered by id and disjoint,
// differ in length by at most one element and together cover [0, n)
// exactly once. Workers beyond n receive empty ranges.
func Partition(n, workers, id int) (lo, hi int) {
	if workers < 1 || id < 0 || id >= workers || n <= 0 {
		return 0, 0
	}
	base := n / workers
	extra := n % workers

	// The first extra workers take one more element each.
	lo = id*base + min(id, extra)
	hi = lo + base
	if id < extra {
		hi++
	}
	return lo, hi
}

// forkJoin runs fn on workers goroutines, passing each its id, and returns
// once all of them have finished.
func forkJoin(workers int, fn func(id int)) {
	if workers <= 1 {
		fn(0)
		return
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for id := 0; id < workers; id++ {
		go func(id int) {
			defer wg.Done()
			fn(id)
		}(id)
	}
	wg.Wait()
}

// barrier is a reusable rendezvous point for a fixed number of goroutines.
// Writes made before Wait are visible to every participant after it.
type barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	parties int
	waiting int
	gen     uint64
}

func newBarrier(parties int) *barrier {
	b := &barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until all parties have called Wait for the current round.
func (b *barrier) Wait() {
	b.mu.Lock()
	gen := b.gen
	b.waiting++
	if b.waiting == b.parties {
		b.waiting = 0
		b.gen++
		b.cond.Broadcast()
		b.mu.Unlock()
		return
	}
	for gen == b.gen {
		b.cond.Wait()
	}
	b.mu.Unlock()
}
