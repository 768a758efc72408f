package processors

import (
	"context"

	"github.com/aegroto/remotia/pkg/frame"
	"github.com/aegroto/remotia/pkg/transport"
)

// TransportSender is a terminal Processor: it sends the buffer at
// bufferKey over a transport.Sender and drops the frame on write error.
type TransportSender struct {
	sender    transport.Sender
	bufferKey string
}

func NewTransportSender(sender transport.Sender, bufferKey string) *TransportSender {
	return &TransportSender{sender: sender, bufferKey: bufferKey}
}

func (t *TransportSender) Process(ctx context.Context, fd *frame.Data) (*frame.Data, bool) {
	buf, ok := fd.WritableBufferRef(t.bufferKey)
	if !ok {
		fd.SetDropReason(frame.DropEmptyFrame)
		return fd, true
	}

	if err := t.sender.Send(ctx, buf); err != nil {
		fd.SetDropReason(frame.DropConnectionError)
		return fd, true
	}

	return fd, true
}

// TransportReceiver is a head-of-pipeline Processor: it blocks until a
// frame arrives over a transport.Receiver and stores it at bufferKey.
type TransportReceiver struct {
	receiver  transport.Receiver
	bufferKey string
}

func NewTransportReceiver(receiver transport.Receiver, bufferKey string) *TransportReceiver {
	return &TransportReceiver{receiver: receiver, bufferKey: bufferKey}
}

func (t *TransportReceiver) Process(ctx context.Context, fd *frame.Data) (*frame.Data, bool) {
	buf, err := t.receiver.Receive(ctx)
	if err != nil {
		fd.SetDropReason(frame.DropConnectionError)
		return fd, true
	}

	fd.InsertWritableBuffer(t.bufferKey, buf)
	return fd, true
}
