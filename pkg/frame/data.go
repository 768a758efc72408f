// Package frame defines the per-frame data envelope that flows through
// the pipeline, and the bounded buffer pool frames borrow buffers from.
package frame

import "github.com/pkg/errors"

// Conventional writable buffer keys used across the pipeline.
const (
	RawFrameBuffer     = "raw_frame_buffer"
	EncodedFrameBuffer = "encoded_frame_buffer"
	YChannelBuffer     = "y_channel_buffer"
	CbChannelBuffer    = "cb_channel_buffer"
	CrChannelBuffer    = "cr_channel_buffer"
)

// Conventional stat keys.
const (
	StatCaptureTimestamp = "capture_timestamp"
	StatFrameID          = "frame_id"
	StatEncodedSize      = "encoded_size"
	StatReceptionDelay   = "reception_delay"
)

// Data is the envelope carried end-to-end through a Pipeline: stats,
// buffers and an optional drop reason. A Data value is owned by exactly
// one goroutine at a time; ownership passes across Stage boundaries
// through a channel, never shared.
type Data struct {
	stats      map[string]uint64
	localStats map[string]uint64

	readonlyBuffers map[string][]byte
	writableBuffers map[string][]byte

	dropReason DropReason
	hasDrop    bool
}

// New returns an empty envelope, ready to be populated by the head Stage
// of a Pipeline.
func New() *Data {
	return &Data{
		stats:           make(map[string]uint64),
		localStats:      make(map[string]uint64),
		readonlyBuffers: make(map[string][]byte),
		writableBuffers: make(map[string][]byte),
	}
}

// Set stores a globally-significant stat, propagated across Stage
// boundaries for the lifetime of the frame.
func (d *Data) Set(key string, value uint64) {
	d.stats[key] = value
}

// Get returns a previously-set stat. A missing key is a programming
// error and panics, matching the envelope's documented contract.
func (d *Data) Get(key string) uint64 {
	v, ok := d.stats[key]
	if !ok {
		panic(errors.Errorf("frame: missing stat %q", key))
	}
	return v
}

// TryGet returns a stat and whether it was present, without panicking.
func (d *Data) TryGet(key string) (uint64, bool) {
	v, ok := d.stats[key]
	return v, ok
}

// SetLocal stores a Stage-local stat. Conventionally written once per
// Stage and not relied upon by later Stages.
func (d *Data) SetLocal(key string, value uint64) {
	d.localStats[key] = value
}

// GetLocal returns a previously-set local stat, panicking if absent.
func (d *Data) GetLocal(key string) uint64 {
	v, ok := d.localStats[key]
	if !ok {
		panic(errors.Errorf("frame: missing local stat %q", key))
	}
	return v
}

// TryGetLocal mirrors TryGet for local stats.
func (d *Data) TryGetLocal(key string) (uint64, bool) {
	v, ok := d.localStats[key]
	return v, ok
}

// InsertReadonlyBuffer inserts an immutable owned byte sequence under key.
// Buffer keys must be unique across the readonly and writable maps.
func (d *Data) InsertReadonlyBuffer(key string, buf []byte) {
	d.readonlyBuffers[key] = buf
}

// ExtractReadonlyBuffer removes and returns the readonly buffer at key.
// Panics if absent: extracting an unregistered buffer is a programming
// error.
func (d *Data) ExtractReadonlyBuffer(key string) []byte {
	buf, ok := d.readonlyBuffers[key]
	if !ok {
		panic(errors.Errorf("frame: missing readonly buffer %q", key))
	}
	delete(d.readonlyBuffers, key)
	return buf
}

// InsertWritableBuffer inserts a mutable owned buffer under key. Once
// extracted, a writable buffer must be reinserted (possibly into a
// different Data) or returned to its pool before leaving scope.
func (d *Data) InsertWritableBuffer(key string, buf []byte) {
	d.writableBuffers[key] = buf
}

// ExtractWritableBuffer removes and returns the writable buffer at key.
func (d *Data) ExtractWritableBuffer(key string) []byte {
	buf, ok := d.writableBuffers[key]
	if !ok {
		panic(errors.Errorf("frame: missing writable buffer %q", key))
	}
	delete(d.writableBuffers, key)
	return buf
}

// TryExtractWritableBuffer mirrors ExtractWritableBuffer but reports
// absence instead of panicking, for soft redeemers.
func (d *Data) TryExtractWritableBuffer(key string) ([]byte, bool) {
	buf, ok := d.writableBuffers[key]
	if ok {
		delete(d.writableBuffers, key)
	}
	return buf, ok
}

// WritableBufferRef returns a reference to the writable buffer at key
// without removing it from the envelope, for processors that mutate a
// buffer in place without taking ownership of it.
func (d *Data) WritableBufferRef(key string) ([]byte, bool) {
	buf, ok := d.writableBuffers[key]
	return buf, ok
}

// SetDropReason marks the frame as failed. DropReason is monotonic
// within a Stage traversal: once set it must not be cleared.
func (d *Data) SetDropReason(reason DropReason) {
	d.dropReason = reason
	d.hasDrop = true
}

// DropReason returns the current drop reason and whether one is set.
func (d *Data) DropReason() (DropReason, bool) {
	return d.dropReason, d.hasDrop
}

// IsDropped reports whether a drop reason has been set.
func (d *Data) IsDropped() bool {
	return d.hasDrop
}
