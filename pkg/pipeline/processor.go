package pipeline

import (
	"context"

	"github.com/aegroto/remotia/pkg/frame"
)

// Processor is a single transformation on a FrameData. Returning ok =
// false terminates the frame's traversal of the current Stage: the
// frame was either consumed, diverted to a side pipeline, or otherwise
// absorbed, and no later Processor in the Stage runs.
type Processor interface {
	Process(ctx context.Context, fd *frame.Data) (out *frame.Data, ok bool)
}

// ProcessorFunc adapts a plain function to the Processor interface.
type ProcessorFunc func(ctx context.Context, fd *frame.Data) (*frame.Data, bool)

func (f ProcessorFunc) Process(ctx context.Context, fd *frame.Data) (*frame.Data, bool) {
	return f(ctx, fd)
}
