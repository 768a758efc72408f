// Package transport adapts the pipeline's Processor contract onto
// concrete byte-stream transports: plain TCP and WebSocket, mirroring
// the binary framing conventions the teacher repo uses for its own
// streaming connections (spec §4.9 expansion).
package transport

import "context"

// Sender writes one frame buffer out over a transport connection.
type Sender interface {
	Send(ctx context.Context, buf []byte) error
	Close() error
}

// Receiver reads one frame buffer in from a transport connection,
// blocking until a full frame arrives or the read fails. TCPReceiver
// applies ctx's deadline, if any, as the read deadline; cancelling a ctx
// that has no deadline does not interrupt a read, and WSReceiver does
// not consult ctx at all.
type Receiver interface {
	Receive(ctx context.Context) ([]byte, error)
	Close() error
}
