package remvsp

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aegroto/remotia/pkg/frame"
)

// TestSenderReceiverRoundTrip is an end-to-end slice of seed scenario
// S6: a frame too large for one datagram, fragmented by a real Sender
// over a loopback UDP socket, reassembles byte-identical on the
// Receiver side.
func TestSenderReceiverRoundTrip(t *testing.T) {
	recvConn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	recvAddr := recvConn.LocalAddr().(*net.UDPAddr)
	recvConn.Close()

	receiver, err := NewReceiver(recvAddr, frame.RawFrameBuffer)
	require.NoError(t, err)
	defer receiver.Close()

	sender, err := NewSender(recvAddr, frame.RawFrameBuffer, 64)
	require.NoError(t, err)
	defer sender.Close()

	payload := bytes.Repeat([]byte{0xAB}, 64*5+10)

	outbound := frame.New()
	outbound.Set(frame.StatCaptureTimestamp, 123456)
	outbound.InsertWritableBuffer(frame.RawFrameBuffer, payload)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	result, ok := sender.Process(ctx, outbound)
	require.True(t, ok)
	require.False(t, result.IsDropped())

	inbound := frame.New()
	inbound, ok = receiver.Process(ctx, inbound)
	require.True(t, ok, "receiver must reconstruct the frame before the context deadline")

	reconstructed := inbound.ExtractWritableBuffer(frame.RawFrameBuffer)
	require.Equal(t, payload, reconstructed)
	require.Equal(t, uint64(123456), inbound.Get(frame.StatCaptureTimestamp))

	_, ok = inbound.TryGetLocal(frame.StatReceptionDelay)
	require.True(t, ok, "receiver must record a reception delay for every reconstructed frame")
}
