package boards

import "sync"

// scanResult pairs one fragment's parameters with the warnings its scan produced.
type scanResult struct {
	params   Params
	warnings []string
}

// resultQueue is a thread-safe FIFO queue for scan results.
//
// The queue is unbounded so that a worker can never block while enqueuing: the
// orchestrator drains on a fixed cadence rather than synchronously with each
// push, and a bounded buffer would let a producer stall indefinitely between
// drain passes. Unboundedness plus continuous draining is the concurrency
// invariant the whole scan pipeline depends on.
//
// Thread-safety covers one producing worker and the draining orchestrator.
type resultQueue struct {
	mu      sync.Mutex
	results []scanResult
}

// newResultQueue creates an empty result queue.
func newResultQueue() *resultQueue {
	return &resultQueue{
		results: make([]scanResult, 0, 64), // Pre-allocate for typical shares
	}
}

// push adds a result to the back of the queue.
// Thread-safe: may be called from any goroutine.
func (q *resultQueue) push(r scanResult) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.results = append(q.results, r)
}

// drainAll removes and returns every queued result.
// Returns nil when the queue is empty.
func (q *resultQueue) drainAll() []scanResult {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.results) == 0 {
		return nil
	}
	out := q.results
	// Hand the backing array to the caller and start fresh so drained
	// results do not pin queue memory.
	q.results = make([]scanResult, 0, 64)
	return out
}

// len returns the current queue length.
func (q *resultQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.results)
}
