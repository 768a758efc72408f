package pipeline

import (
	"container/list"
	"sync"

	"github.com/aegroto/remotia/pkg/frame"
)

// unboundedQueue is a many-producer, single-consumer FIFO of FrameData
// exposed as a receive channel. Stage-to-stage carriers and Feeders are
// unbounded deliberately (spec §5): BufferPools bound memory, Tickers
// bound production rate, and drop processors shed load on overload, so
// no intra-process queue needs its own bound. No library in the
// retrieved pack offers a generic unbounded channel for arbitrary
// struct values, so this is built on container/list + sync.Cond.
type unboundedQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  list.List
	closed bool
	out    chan *frame.Data
}

func newUnboundedQueue() *unboundedQueue {
	q := &unboundedQueue{out: make(chan *frame.Data)}
	q.cond = sync.NewCond(&q.mu)
	go q.pump()
	return q
}

// Send enqueues a FrameData. Safe to call from multiple goroutines
// concurrently (feeder fan-in).
func (q *unboundedQueue) Send(fd *frame.Data) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.items.PushBack(fd)
	q.cond.Signal()
}

// Close marks the queue closed; the pump drains whatever remains queued
// and then closes Out().
func (q *unboundedQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Signal()
}

// Out returns the receive side of the queue.
func (q *unboundedQueue) Out() <-chan *frame.Data {
	return q.out
}

func (q *unboundedQueue) pump() {
	defer close(q.out)

	for {
		q.mu.Lock()
		for q.items.Len() == 0 && !q.closed {
			q.cond.Wait()
		}
		if q.items.Len() == 0 {
			q.mu.Unlock()
			return
		}
		front := q.items.Remove(q.items.Front()).(*frame.Data)
		q.mu.Unlock()

		q.out <- front
	}
}
