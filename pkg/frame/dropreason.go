package frame

// DropReason enumerates why a FrameData was abandoned mid-pipeline.
// Once set on a FrameData it is monotonic: processors may surface it
// or act on it, but never clear it.
type DropReason int

const (
	// DropReasonNone is the zero value; no drop reason has been set.
	DropReasonNone DropReason = iota

	DropInvalidWholeFrameHeader
	DropInvalidPacketHeader
	DropInvalidPacket
	DropEmptyFrame
	DropNoCompleteFrames
	DropNoDecodedFrames
	DropStaleFrame
	DropConnectionError
	DropCodecError
	DropFFMpegSendPacketError
	DropTimeout
	DropNoEncodedFrames
	DropNoAvailableBuffers
)

func (d DropReason) String() string {
	switch d {
	case DropReasonNone:
		return "none"
	case DropInvalidWholeFrameHeader:
		return "invalid_whole_frame_header"
	case DropInvalidPacketHeader:
		return "invalid_packet_header"
	case DropInvalidPacket:
		return "invalid_packet"
	case DropEmptyFrame:
		return "empty_frame"
	case DropNoCompleteFrames:
		return "no_complete_frames"
	case DropNoDecodedFrames:
		return "no_decoded_frames"
	case DropStaleFrame:
		return "stale_frame"
	case DropConnectionError:
		return "connection_error"
	case DropCodecError:
		return "codec_error"
	case DropFFMpegSendPacketError:
		return "ffmpeg_send_packet_error"
	case DropTimeout:
		return "timeout"
	case DropNoEncodedFrames:
		return "no_encoded_frames"
	case DropNoAvailableBuffers:
		return "no_available_buffers"
	default:
		return "unknown"
	}
}
