// Package codec defines the collaborator boundary between the pipeline
// core and whatever compresses/decompresses frame bytes. The pipeline
// never encodes or decodes itself; it wraps a Codec in a Processor
// (spec §4.8 expansion).
package codec

// Encoder compresses a raw frame buffer into an encoded one. It may
// reuse dst's backing array when large enough; callers must use the
// returned slice instead of assuming dst was appended in place.
type Encoder interface {
	Encode(src []byte, dst []byte) ([]byte, error)
}

// Decoder is the inverse of Encoder.
type Decoder interface {
	Decode(src []byte, dst []byte) ([]byte, error)
}
