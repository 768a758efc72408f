package capture

import "context"

// MockBackend fills each call's buffer with the next value from a fixed
// sequence, wrapping around. It is the capture.Backend used in tests
// and in scenario harnesses where no real device is available.
type MockBackend struct {
	frameBytes int
	sequence   [][]byte
	next       int
}

// NewMockBackend returns a backend that fills frameBytes-sized buffers
// from sequence in order, cycling once exhausted. An empty sequence
// zero-fills every frame.
func NewMockBackend(frameBytes int, sequence ...[]byte) *MockBackend {
	return &MockBackend{frameBytes: frameBytes, sequence: sequence}
}

func (m *MockBackend) Capture(_ context.Context, dst []byte) ([]byte, error) {
	if len(dst) < m.frameBytes {
		dst = make([]byte, m.frameBytes)
	}
	dst = dst[:m.frameBytes]

	if len(m.sequence) == 0 {
		for i := range dst {
			dst[i] = 0
		}
		return dst, nil
	}

	src := m.sequence[m.next%len(m.sequence)]
	m.next++
	copy(dst, src)
	return dst, nil
}

func (m *MockBackend) FrameBytes() int {
	return m.frameBytes
}

var _ Backend = (*MockBackend)(nil)
