package processors

import (
	"context"

	"github.com/aegroto/remotia/pkg/codec"
	"github.com/aegroto/remotia/pkg/frame"
)

// Encoder adapts a codec.Encoder into a Processor: it reads srcKey,
// compresses it into dstKey and drops the frame on codec error.
type Encoder struct {
	codec  codec.Encoder
	srcKey string
	dstKey string
}

func NewEncoder(c codec.Encoder, srcKey, dstKey string) *Encoder {
	return &Encoder{codec: c, srcKey: srcKey, dstKey: dstKey}
}

func (e *Encoder) Process(_ context.Context, fd *frame.Data) (*frame.Data, bool) {
	src, ok := fd.WritableBufferRef(e.srcKey)
	if !ok {
		fd.SetDropReason(frame.DropNoEncodedFrames)
		return fd, true
	}

	dst, _ := fd.TryExtractWritableBuffer(e.dstKey)
	encoded, err := e.codec.Encode(src, dst)
	if err != nil {
		fd.SetDropReason(frame.DropCodecError)
		return fd, true
	}

	fd.InsertWritableBuffer(e.dstKey, encoded)
	fd.Set(frame.StatEncodedSize, uint64(len(encoded)))
	return fd, true
}

// Decoder adapts a codec.Decoder into a Processor: it reads srcKey,
// decompresses it into dstKey and drops the frame on codec error.
type Decoder struct {
	codec  codec.Decoder
	srcKey string
	dstKey string
}

func NewDecoder(c codec.Decoder, srcKey, dstKey string) *Decoder {
	return &Decoder{codec: c, srcKey: srcKey, dstKey: dstKey}
}

func (d *Decoder) Process(_ context.Context, fd *frame.Data) (*frame.Data, bool) {
	src, ok := fd.WritableBufferRef(d.srcKey)
	if !ok {
		fd.SetDropReason(frame.DropNoDecodedFrames)
		return fd, true
	}

	dst, _ := fd.TryExtractWritableBuffer(d.dstKey)
	decoded, err := d.codec.Decode(src, dst)
	if err != nil {
		fd.SetDropReason(frame.DropCodecError)
		return fd, true
	}

	fd.InsertWritableBuffer(d.dstKey, decoded)
	return fd, true
}
