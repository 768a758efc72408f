package pipeline

import "github.com/aegroto/remotia/pkg/frame"

// Feeder is a cloneable handle that injects FrameData into a feedable
// Pipeline's head Stage. Many Feeders (one per OnErrorSwitch elsewhere
// in the process) may feed the same Pipeline concurrently; the
// underlying unboundedQueue is a many-producer, single-consumer queue,
// so Feeder never exposes the Pipeline's mutable internals.
type Feeder struct {
	queue *unboundedQueue
}

// Feed enqueues fd for processing by the owning Pipeline's head Stage.
func (f Feeder) Feed(fd *frame.Data) {
	f.queue.Send(fd)
}

// Clone returns an independent handle to the same underlying queue.
func (f Feeder) Clone() Feeder {
	return Feeder{queue: f.queue}
}
