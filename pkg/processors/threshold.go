package processors

import (
	"context"

	"github.com/aegroto/remotia/pkg/frame"
)

// ThresholdBasedFrameDropper drops a frame when its local stat at Key
// strictly exceeds Threshold. It checks local_stats first (the
// conventional home for a just-computed delay) and falls back to
// stats, so it can sit directly after either a TimestampDiffCalculator
// or a collaborator that reports delay as a propagated stat.
type ThresholdBasedFrameDropper struct {
	Key       string
	Threshold uint64
}

func NewThresholdBasedFrameDropper(key string, threshold uint64) ThresholdBasedFrameDropper {
	return ThresholdBasedFrameDropper{Key: key, Threshold: threshold}
}

func (t ThresholdBasedFrameDropper) Process(_ context.Context, fd *frame.Data) (*frame.Data, bool) {
	value, ok := fd.TryGetLocal(t.Key)
	if !ok {
		value, ok = fd.TryGet(t.Key)
	}
	if ok && value > t.Threshold {
		fd.SetDropReason(frame.DropStaleFrame)
	}
	return fd, true
}

// KeyChecker passes the frame through only if stats[Key] is present;
// otherwise it drops the frame with DropInvalidPacket.
type KeyChecker struct {
	Key string
}

func NewKeyChecker(key string) KeyChecker {
	return KeyChecker{Key: key}
}

func (k KeyChecker) Process(_ context.Context, fd *frame.Data) (*frame.Data, bool) {
	if _, ok := fd.TryGet(k.Key); !ok {
		fd.SetDropReason(frame.DropInvalidPacket)
	}
	return fd, true
}
