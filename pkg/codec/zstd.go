package codec

import (
	"github.com/klauspost/compress/zstd"
)

// ZstdCodec encodes and decodes frame buffers with zstd, the general-
// purpose compressor the rest of the retrieval pack already pulls in
// transitively through its NATS transport; using it here for actual
// frame compression gives it a concrete home instead of leaving it an
// unexercised indirect dependency.
type ZstdCodec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewZstdCodec builds an encoder/decoder pair at a fixed compression
// level, SpeedFastest, which favors the low, predictable per-frame latency a
// real-time streaming path needs over maximum ratio.
func NewZstdCodec() (*ZstdCodec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, err
	}
	return &ZstdCodec{encoder: enc, decoder: dec}, nil
}

func (c *ZstdCodec) Encode(src []byte, dst []byte) ([]byte, error) {
	return c.encoder.EncodeAll(src, dst[:0]), nil
}

func (c *ZstdCodec) Decode(src []byte, dst []byte) ([]byte, error) {
	return c.decoder.DecodeAll(src, dst[:0])
}

// Close releases the encoder's background goroutines.
func (c *ZstdCodec) Close() {
	c.encoder.Close()
	c.decoder.Close()
}

var (
	_ Encoder = (*ZstdCodec)(nil)
	_ Decoder = (*ZstdCodec)(nil)
)
