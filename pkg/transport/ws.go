package transport

import (
	"context"

	"github.com/gorilla/websocket"
)

// WSSender writes each frame as one binary WebSocket message, the way
// the teacher's stream handler pushes video frames to the browser —
// minus the application-level header bytes, since frame identity and
// timing already travel in FrameData stats rather than on the wire
// here.
type WSSender struct {
	conn *websocket.Conn
}

func NewWSSender(conn *websocket.Conn) *WSSender {
	return &WSSender{conn: conn}
}

func (s *WSSender) Send(_ context.Context, buf []byte) error {
	return s.conn.WriteMessage(websocket.BinaryMessage, buf)
}

func (s *WSSender) Close() error {
	return s.conn.Close()
}

// WSReceiver reads binary WebSocket messages, discarding any other
// message type (control pings are handled by gorilla's read loop
// internally via SetPingHandler, as in the teacher's heartbeat setup).
type WSReceiver struct {
	conn *websocket.Conn
}

func NewWSReceiver(conn *websocket.Conn) *WSReceiver {
	return &WSReceiver{conn: conn}
}

func (r *WSReceiver) Receive(_ context.Context) ([]byte, error) {
	for {
		messageType, data, err := r.conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		if messageType == websocket.BinaryMessage {
			return data, nil
		}
	}
}

func (r *WSReceiver) Close() error {
	return r.conn.Close()
}

var (
	_ Sender   = (*WSSender)(nil)
	_ Receiver = (*WSReceiver)(nil)
)
