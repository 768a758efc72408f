package processors

import (
	"context"
	"errors"
	"testing"

	"github.com/aegroto/remotia/pkg/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type identityCodec struct{}

func (identityCodec) Encode(src, _ []byte) ([]byte, error) { return src, nil }
func (identityCodec) Decode(src, _ []byte) ([]byte, error) { return src, nil }

type failingCodec struct{}

func (failingCodec) Encode(_, _ []byte) ([]byte, error) { return nil, errors.New("boom") }
func (failingCodec) Decode(_, _ []byte) ([]byte, error) { return nil, errors.New("boom") }

func TestEncoderMovesBufferAndSetsEncodedSize(t *testing.T) {
	enc := NewEncoder(identityCodec{}, frame.RawFrameBuffer, frame.EncodedFrameBuffer)

	fd := frame.New()
	fd.InsertWritableBuffer(frame.RawFrameBuffer, []byte{1, 2, 3, 4})
	fd, ok := enc.Process(context.Background(), fd)

	require.True(t, ok)
	out := fd.ExtractWritableBuffer(frame.EncodedFrameBuffer)
	assert.Equal(t, []byte{1, 2, 3, 4}, out)
	assert.Equal(t, uint64(4), fd.Get(frame.StatEncodedSize))
}

func TestEncoderDropsOnCodecError(t *testing.T) {
	enc := NewEncoder(failingCodec{}, frame.RawFrameBuffer, frame.EncodedFrameBuffer)

	fd := frame.New()
	fd.InsertWritableBuffer(frame.RawFrameBuffer, []byte{1})
	fd, ok := enc.Process(context.Background(), fd)

	assert.True(t, ok, "a dropped frame must still survive to reach the stage's OnErrorSwitch")
	reason, _ := fd.DropReason()
	assert.Equal(t, frame.DropCodecError, reason)
}

func TestDecoderRoundTripsThroughEncoder(t *testing.T) {
	enc := NewEncoder(identityCodec{}, frame.RawFrameBuffer, frame.EncodedFrameBuffer)
	dec := NewDecoder(identityCodec{}, frame.EncodedFrameBuffer, frame.RawFrameBuffer)

	fd := frame.New()
	fd.InsertWritableBuffer(frame.RawFrameBuffer, []byte("payload"))

	fd, ok := enc.Process(context.Background(), fd)
	require.True(t, ok)

	fd, ok = dec.Process(context.Background(), fd)
	require.True(t, ok)

	assert.Equal(t, []byte("payload"), fd.ExtractWritableBuffer(frame.RawFrameBuffer))
}
