package processors

import (
	"context"

	"github.com/aegroto/remotia/pkg/frame"
	"github.com/aegroto/remotia/pkg/render"
)

// RenderDispatcher is typically the tail Processor of a receiving
// pipeline: it hands the decoded frame buffer to a render.Renderer and
// drops the frame if rendering fails.
type RenderDispatcher struct {
	renderer  render.Renderer
	bufferKey string
}

func NewRenderDispatcher(renderer render.Renderer, bufferKey string) *RenderDispatcher {
	return &RenderDispatcher{renderer: renderer, bufferKey: bufferKey}
}

func (r *RenderDispatcher) Process(ctx context.Context, fd *frame.Data) (*frame.Data, bool) {
	buf, ok := fd.WritableBufferRef(r.bufferKey)
	if !ok {
		fd.SetDropReason(frame.DropEmptyFrame)
		return fd, true
	}

	if err := r.renderer.Render(ctx, buf); err != nil {
		fd.SetDropReason(frame.DropEmptyFrame)
		return fd, true
	}

	return fd, true
}
