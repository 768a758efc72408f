package processors

import (
	"context"

	"github.com/aegroto/remotia/pkg/capture"
	"github.com/aegroto/remotia/pkg/frame"
)

// CaptureAdder typically sits right after the BufferBorrower at the
// head of a sending pipeline: it takes the raw frame buffer that
// borrower inserted and fills it via a capture.Backend.
type CaptureAdder struct {
	backend   capture.Backend
	bufferKey string
}

func NewCaptureAdder(backend capture.Backend, bufferKey string) *CaptureAdder {
	return &CaptureAdder{backend: backend, bufferKey: bufferKey}
}

func (c *CaptureAdder) Process(ctx context.Context, fd *frame.Data) (*frame.Data, bool) {
	buf, ok := fd.WritableBufferRef(c.bufferKey)
	if !ok {
		fd.SetDropReason(frame.DropEmptyFrame)
		return fd, true
	}

	captured, err := c.backend.Capture(ctx, buf)
	if err != nil {
		fd.SetDropReason(frame.DropEmptyFrame)
		return fd, true
	}

	fd.InsertWritableBuffer(c.bufferKey, captured)
	return fd, true
}
