// Package capture defines the collaborator boundary for acquiring raw
// frame bytes. Platform-specific screen/camera capture is out of scope
// for this core (spec Non-goals exclude device-level detail); Backend
// is the seam a real capture driver plugs into, mirrored loosely on
// go4vl's device-as-a-frame-channel shape.
package capture

import "context"

// Backend produces one raw frame per Capture call, writing into dst
// when it is large enough and returning the slice actually filled.
type Backend interface {
	Capture(ctx context.Context, dst []byte) ([]byte, error)
	// FrameBytes is the backend's fixed per-frame buffer size, used to
	// size the BufferPool a BufferBorrower draws from.
	FrameBytes() int
}
