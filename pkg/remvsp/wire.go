// Package remvsp implements the RemVSP datagram fragmentation and
// reassembly protocol (spec §4.5, §6): a custom UDP-based protocol that
// splits an encoded frame into fixed-size fragments on the wire and
// reconstructs it on the receiving side, tolerating loss and
// reordering but never blocking on retransmission.
package remvsp

import (
	"encoding/binary"
	"fmt"
)

// MaxFragmentPayload is the recommended upper bound on fragment payload
// size to stay under typical path MTU (spec §6).
const MaxFragmentPayload = 1400

// frameHeaderSize is the fixed, bit-exact size in bytes of FrameHeader
// on the wire: frame_id(8) + frame_fragments_count(2) + fragment_size(2)
// + capture_timestamp(8).
const frameHeaderSize = 8 + 2 + 2 + 8

// fragmentPrefixSize is frameHeaderSize + fragment_id(2) + data_length(8).
const fragmentPrefixSize = frameHeaderSize + 2 + 8

// FrameHeader is shared by every fragment of one frame.
type FrameHeader struct {
	FrameID             uint64
	FrameFragmentsCount uint16
	FragmentSize        uint16
	CaptureTimestamp    uint64
}

// FrameFragment is one datagram's worth of a fragmented frame.
type FrameFragment struct {
	Header     FrameHeader
	FragmentID uint16
	Data       []byte
}

// Encode serializes f using a fixed, little-endian, length-prefixed
// layout: frame_id, frame_fragments_count, fragment_size,
// capture_timestamp, fragment_id, data_length, data. The layout is
// bit-exact and stable across sender/receiver builds (spec §6); it is
// hand-written with encoding/binary rather than a reflection-based
// codec because the spec fixes the field order and widths exactly,
// leaving no room for a general-purpose serializer to add value.
func Encode(f FrameFragment) []byte {
	out := make([]byte, fragmentPrefixSize+len(f.Data))

	binary.LittleEndian.PutUint64(out[0:8], f.Header.FrameID)
	binary.LittleEndian.PutUint16(out[8:10], f.Header.FrameFragmentsCount)
	binary.LittleEndian.PutUint16(out[10:12], f.Header.FragmentSize)
	binary.LittleEndian.PutUint64(out[12:20], f.Header.CaptureTimestamp)
	binary.LittleEndian.PutUint16(out[20:22], f.FragmentID)
	binary.LittleEndian.PutUint64(out[22:30], uint64(len(f.Data)))
	copy(out[30:], f.Data)

	return out
}

// Decode parses a FrameFragment from a single datagram payload. Parse
// failures (too short, declared length mismatch) return an error and
// never panic: a malformed datagram must be dropped silently by the
// caller, not poison the reconstruction state machine (spec §4.5, §7).
func Decode(buf []byte) (FrameFragment, error) {
	if len(buf) < fragmentPrefixSize {
		return FrameFragment{}, fmt.Errorf("remvsp: fragment too short: %d bytes", len(buf))
	}

	header := FrameHeader{
		FrameID:             binary.LittleEndian.Uint64(buf[0:8]),
		FrameFragmentsCount: binary.LittleEndian.Uint16(buf[8:10]),
		FragmentSize:        binary.LittleEndian.Uint16(buf[10:12]),
		CaptureTimestamp:    binary.LittleEndian.Uint64(buf[12:20]),
	}
	fragmentID := binary.LittleEndian.Uint16(buf[20:22])
	dataLength := binary.LittleEndian.Uint64(buf[22:30])

	if dataLength > uint64(len(buf)-fragmentPrefixSize) {
		return FrameFragment{}, fmt.Errorf("remvsp: declared data length %d exceeds datagram size", dataLength)
	}

	data := make([]byte, dataLength)
	copy(data, buf[fragmentPrefixSize:fragmentPrefixSize+int(dataLength)])

	return FrameFragment{Header: header, FragmentID: fragmentID, Data: data}, nil
}

// HelloSize is the size in bytes of the session-initiation hello
// datagram: 16 zero bytes (spec §6).
const HelloSize = 16

// Hello returns the all-zero session-initiation datagram.
func Hello() []byte {
	return make([]byte, HelloSize)
}
