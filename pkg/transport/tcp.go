package transport

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
)

// tcpLengthPrefix is the width, in bytes, of the length header each
// frame is prefixed with on the wire: a little-endian uint32, mirroring
// the fixed-width binary headers the teacher writes by hand rather
// than through a generic framing library (spec §4.9).
const tcpLengthPrefix = 4

// TCPSender writes length-prefixed frames to a net.Conn.
type TCPSender struct {
	conn net.Conn
}

func NewTCPSender(conn net.Conn) *TCPSender {
	return &TCPSender{conn: conn}
}

func (s *TCPSender) Send(ctx context.Context, buf []byte) error {
	if deadline, ok := ctx.Deadline(); ok {
		_ = s.conn.SetWriteDeadline(deadline)
	}

	header := make([]byte, tcpLengthPrefix)
	binary.LittleEndian.PutUint32(header, uint32(len(buf)))

	if _, err := s.conn.Write(header); err != nil {
		return fmt.Errorf("transport: write length header: %w", err)
	}
	if _, err := s.conn.Write(buf); err != nil {
		return fmt.Errorf("transport: write payload: %w", err)
	}
	return nil
}

func (s *TCPSender) Close() error {
	return s.conn.Close()
}

// TCPReceiver reads length-prefixed frames from a net.Conn.
type TCPReceiver struct {
	conn net.Conn
}

func NewTCPReceiver(conn net.Conn) *TCPReceiver {
	return &TCPReceiver{conn: conn}
}

func (r *TCPReceiver) Receive(ctx context.Context) ([]byte, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = r.conn.SetReadDeadline(deadline)
	}

	header := make([]byte, tcpLengthPrefix)
	if _, err := io.ReadFull(r.conn, header); err != nil {
		return nil, fmt.Errorf("transport: read length header: %w", err)
	}

	length := binary.LittleEndian.Uint32(header)
	buf := make([]byte, length)
	if _, err := io.ReadFull(r.conn, buf); err != nil {
		return nil, fmt.Errorf("transport: read payload: %w", err)
	}
	return buf, nil
}

func (r *TCPReceiver) Close() error {
	return r.conn.Close()
}

var (
	_ Sender   = (*TCPSender)(nil)
	_ Receiver = (*TCPReceiver)(nil)
)
