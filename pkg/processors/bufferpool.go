package processors

import (
	"context"

	"github.com/aegroto/remotia/pkg/frame"
)

// BufferBorrower removes one buffer from Pool and inserts it into the
// frame under Pool's identifier key. If the pool is empty it drops the
// frame with DropNoAvailableBuffers instead of blocking (spec §4.4,
// §9: non-blocking borrow is mandated so backpressure never inverts
// into head-of-line blocking).
type BufferBorrower struct {
	Pool *frame.Pool
}

func NewBufferBorrower(pool *frame.Pool) BufferBorrower {
	return BufferBorrower{Pool: pool}
}

func (b BufferBorrower) Process(_ context.Context, fd *frame.Data) (*frame.Data, bool) {
	buf, ok := b.Pool.TryBorrow()
	if !ok {
		fd.SetDropReason(frame.DropNoAvailableBuffers)
		return fd, true
	}
	fd.InsertWritableBuffer(b.Pool.ID(), buf)
	return fd, true
}

// BufferRedeemer extracts the buffer under Pool's identifier key and
// returns it to the pool. When Soft is true, absence of the buffer is
// tolerated (pass-through) rather than a programming-error panic; this
// is the mode used by error-pipeline cleanup, where the buffer may
// never have been borrowed on the path that led to the drop.
type BufferRedeemer struct {
	Pool *frame.Pool
	Soft bool
}

func NewBufferRedeemer(pool *frame.Pool) BufferRedeemer {
	return BufferRedeemer{Pool: pool}
}

func NewSoftBufferRedeemer(pool *frame.Pool) BufferRedeemer {
	return BufferRedeemer{Pool: pool, Soft: true}
}

func (r BufferRedeemer) Process(_ context.Context, fd *frame.Data) (*frame.Data, bool) {
	if r.Soft {
		if buf, ok := fd.TryExtractWritableBuffer(r.Pool.ID()); ok {
			r.Pool.Return(buf)
		}
		return fd, true
	}

	buf := fd.ExtractWritableBuffer(r.Pool.ID())
	r.Pool.Return(buf)
	return fd, true
}
