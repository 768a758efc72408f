package remvsp

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aegroto/remotia/pkg/frame"
)

func nowMillis() uint64 {
	return uint64(time.Now().UnixMilli())
}

// frameReconstruction tracks the fragments seen so far for one frame_id.
// firstReceivedAt is stamped on the fragment that opens the
// reconstruction, so reassembly can report how long the frame spent in
// flight across all its fragments (spec §3/§4.5).
type frameReconstruction struct {
	header          FrameHeader
	fragments       map[uint16][]byte
	receivedSize    int
	firstReceivedAt uint64
}

func newFrameReconstruction(header FrameHeader) *frameReconstruction {
	return &frameReconstruction{
		header:          header,
		fragments:       make(map[uint16][]byte, header.FrameFragmentsCount),
		firstReceivedAt: nowMillis(),
	}
}

func (r *frameReconstruction) add(fragmentID uint16, data []byte) {
	if _, dup := r.fragments[fragmentID]; dup {
		return
	}
	r.fragments[fragmentID] = data
	r.receivedSize += len(data)
}

func (r *frameReconstruction) complete() bool {
	return len(r.fragments) == int(r.header.FrameFragmentsCount)
}

// assemble concatenates fragments in fragment_id order and reports how
// long reconstruction took, in milliseconds, from the first fragment
// received to the one that completed it. Only valid once complete()
// reports true.
func (r *frameReconstruction) assemble() ([]byte, uint64) {
	out := make([]byte, 0, r.receivedSize)
	for i := uint16(0); i < r.header.FrameFragmentsCount; i++ {
		out = append(out, r.fragments[i]...)
	}

	now := nowMillis()
	var delay uint64
	if now > r.firstReceivedAt {
		delay = now - r.firstReceivedAt
	}
	return out, delay
}

// ReceptionState is the receiver-side reassembly state machine: one
// instance per stream. It is safe for concurrent use between the
// listening goroutine and whatever inspects state for diagnostics, but
// Receiver itself drives it from a single goroutine.
type ReceptionState struct {
	mu                    sync.Mutex
	inProgress            map[uint64]*frameReconstruction
	lastReconstructedFrame uint64
	haveReconstructed     bool
}

func newReceptionState() *ReceptionState {
	return &ReceptionState{
		inProgress: make(map[uint64]*frameReconstruction),
	}
}

// accept feeds one decoded fragment into the state machine. It returns
// the assembled frame, its header and the reception delay in
// milliseconds (first fragment seen to last fragment completing the
// frame) once the frame_id it completes is newer than every frame
// already reconstructed; stale or duplicate frame_ids are dropped
// silently (spec §4.5 staleness rule: frame_id <=
// last_reconstructed_frame is discarded unconditionally).
func (s *ReceptionState) accept(fragment FrameFragment) ([]byte, FrameHeader, uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	frameID := fragment.Header.FrameID
	if s.haveReconstructed && frameID <= s.lastReconstructedFrame {
		return nil, FrameHeader{}, 0, false
	}

	recon, ok := s.inProgress[frameID]
	if !ok {
		recon = newFrameReconstruction(fragment.Header)
		s.inProgress[frameID] = recon
	}
	recon.add(fragment.FragmentID, fragment.Data)

	if !recon.complete() {
		return nil, FrameHeader{}, 0, false
	}

	delete(s.inProgress, frameID)
	s.lastReconstructedFrame = frameID
	s.haveReconstructed = true

	// Any other in-progress reconstruction older than the one that just
	// completed can never complete: their missing fragments would now
	// be rejected as stale on arrival, so drop them to bound memory.
	for id := range s.inProgress {
		if id <= frameID {
			delete(s.inProgress, id)
		}
	}

	data, delay := recon.assemble()
	return data, recon.header, delay, true
}

// Receiver listens on a UDP socket, reassembles RemVSP fragments and
// yields complete frames one at a time. It is the head-of-pipeline
// Processor for a receive-side Pipeline: Process blocks until a frame
// reconstructs or ctx is cancelled.
type Receiver struct {
	conn      *net.UDPConn
	bufferKey string
	state     *ReceptionState

	out  chan assembledFrame
	done chan struct{}
}

type assembledFrame struct {
	header      FrameHeader
	data        []byte
	receptionMs uint64
}

// NewReceiver listens on laddr and starts the background read loop.
func NewReceiver(laddr *net.UDPAddr, bufferKey string) (*Receiver, error) {
	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return nil, err
	}

	r := &Receiver{
		conn:      conn,
		bufferKey: bufferKey,
		state:     newReceptionState(),
		out:       make(chan assembledFrame, 8),
		done:      make(chan struct{}),
	}
	go r.readLoop()
	return r, nil
}

func (r *Receiver) readLoop() {
	buf := make([]byte, MaxFragmentPayload+fragmentPrefixSize)
	for {
		n, _, err := r.conn.ReadFromUDP(buf)
		if err != nil {
			close(r.out)
			return
		}
		if n == HelloSize {
			continue
		}

		fragment, err := Decode(buf[:n])
		if err != nil {
			log.Debug().Err(err).Msg("remvsp: dropping malformed fragment")
			continue
		}

		data, header, delay, ok := r.state.accept(fragment)
		if !ok {
			continue
		}

		select {
		case r.out <- assembledFrame{header: header, data: data, receptionMs: delay}:
		case <-r.done:
			return
		}
	}
}

// Close stops the read loop and releases the socket.
func (r *Receiver) Close() error {
	close(r.done)
	return r.conn.Close()
}

func (r *Receiver) Process(ctx context.Context, fd *frame.Data) (*frame.Data, bool) {
	select {
	case assembled, ok := <-r.out:
		if !ok {
			fd.SetDropReason(frame.DropConnectionError)
			return fd, false
		}
		fd.InsertWritableBuffer(r.bufferKey, assembled.data)
		fd.Set(frame.StatCaptureTimestamp, assembled.header.CaptureTimestamp)
		fd.Set(frame.StatFrameID, assembled.header.FrameID)
		fd.SetLocal(frame.StatReceptionDelay, assembled.receptionMs)
		return fd, true
	case <-ctx.Done():
		fd.SetDropReason(frame.DropTimeout)
		return fd, false
	}
}
