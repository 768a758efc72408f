package remvsp

import (
	"context"
	"math/rand"
	"net"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aegroto/remotia/pkg/frame"
	"github.com/aegroto/remotia/pkg/pipeline"
)

// RetransmitProbability is the chance, per outbound fragment, that the
// sender fires a second, immediate copy of the datagram. RemVSP carries
// no ACK/NACK channel (Open Question #2): redundant sends are the only
// loss-mitigation available, traded off against bandwidth.
const RetransmitProbability = 0.05

// Sender is a terminal Processor: it reads the writable buffer named by
// bufferKey out of a FrameData, fragments it into RemVSP datagrams and
// writes them to a UDP socket, one frame_id per processed frame. It is
// grounded on the Moonlight proxy's raw-socket, manually-framed UDP
// handling, adapted from TCP-encapsulated Moonlight packets to native
// UDP fragments.
type Sender struct {
	conn         *net.UDPConn
	bufferKey    string
	fragmentSize int
	nextFrameID  uint64
	rng          *rand.Rand
}

// NewSender dials raddr over UDP and returns a Sender that fragments the
// buffer stored under bufferKey into payloads of at most fragmentSize
// bytes. The first hello datagram is sent immediately so the receiver
// captures the client's ephemeral source port (spec §6).
func NewSender(raddr *net.UDPAddr, bufferKey string, fragmentSize int) (*Sender, error) {
	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Write(Hello()); err != nil {
		conn.Close()
		return nil, err
	}

	return &Sender{
		conn:         conn,
		bufferKey:    bufferKey,
		fragmentSize: fragmentSize,
		nextFrameID:  1,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Close releases the underlying socket.
func (s *Sender) Close() error {
	return s.conn.Close()
}

func (s *Sender) Process(_ context.Context, fd *frame.Data) (*frame.Data, bool) {
	payload, ok := fd.TryExtractWritableBuffer(s.bufferKey)
	if !ok {
		fd.SetDropReason(frame.DropEmptyFrame)
		return fd, true
	}

	frameID := s.nextFrameID
	s.nextFrameID++

	fragmentCount := (len(payload) + s.fragmentSize - 1) / s.fragmentSize
	if fragmentCount == 0 {
		fragmentCount = 1
	}

	captureTimestamp, _ := fd.TryGet(frame.StatCaptureTimestamp)
	header := FrameHeader{
		FrameID:             frameID,
		FrameFragmentsCount: uint16(fragmentCount),
		FragmentSize:        uint16(s.fragmentSize),
		CaptureTimestamp:    captureTimestamp,
	}

	for i := 0; i < fragmentCount; i++ {
		start := i * s.fragmentSize
		end := start + s.fragmentSize
		if end > len(payload) {
			end = len(payload)
		}

		fragment := FrameFragment{
			Header:     header,
			FragmentID: uint16(i),
			Data:       payload[start:end],
		}
		datagram := Encode(fragment)

		if _, err := s.conn.Write(datagram); err != nil {
			log.Debug().Err(err).Uint64("frame_id", frameID).Msg("remvsp send failed")
			fd.SetDropReason(frame.DropConnectionError)
			return fd, true
		}

		if s.rng.Float64() < RetransmitProbability {
			_, _ = s.conn.Write(datagram)
		}
	}

	fd.InsertWritableBuffer(s.bufferKey, payload)
	return fd, true
}

var _ pipeline.Processor = (*Sender)(nil)
