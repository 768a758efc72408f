// Package render defines the collaborator boundary for consuming
// reconstructed frame bytes on the client side — the mirror of
// pkg/capture. Actual on-screen presentation is out of scope; Renderer
// is the seam a real display backend plugs into.
package render

import "context"

// Renderer consumes one decoded frame's bytes.
type Renderer interface {
	Render(ctx context.Context, buf []byte) error
}
