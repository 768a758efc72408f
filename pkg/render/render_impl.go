package render

import (
	"context"
	"sync"
)

// NullRenderer discards every frame. Used when a binary runs headless.
type NullRenderer struct{}

func (NullRenderer) Render(_ context.Context, _ []byte) error {
	return nil
}

// RecordingRenderer retains a copy of every frame it receives, for
// assertions in end-to-end tests.
type RecordingRenderer struct {
	mu     sync.Mutex
	frames [][]byte
}

func NewRecordingRenderer() *RecordingRenderer {
	return &RecordingRenderer{}
}

func (r *RecordingRenderer) Render(_ context.Context, buf []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]byte, len(buf))
	copy(cp, buf)
	r.frames = append(r.frames, cp)
	return nil
}

// Frames returns every frame recorded so far, in arrival order.
func (r *RecordingRenderer) Frames() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]byte, len(r.frames))
	copy(out, r.frames)
	return out
}

var (
	_ Renderer = NullRenderer{}
	_ Renderer = (*RecordingRenderer)(nil)
)
