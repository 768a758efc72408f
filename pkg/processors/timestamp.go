// Package processors provides the standard library of Processor
// implementations described in spec §4.1: timestamping, threshold
// drops, key presence checks, buffer pool borrow/redeem, and the
// error switch.
package processors

import (
	"context"
	"time"

	"github.com/aegroto/remotia/pkg/frame"
)

func nowMillis() uint64 {
	return uint64(time.Now().UnixMilli())
}

// TimestampAdder sets stats[key] to the current wall-clock millisecond
// timestamp.
type TimestampAdder struct {
	Key string
}

func NewTimestampAdder(key string) TimestampAdder {
	return TimestampAdder{Key: key}
}

func (t TimestampAdder) Process(_ context.Context, fd *frame.Data) (*frame.Data, bool) {
	fd.Set(t.Key, nowMillis())
	return fd, true
}

// TimestampDiffCalculator sets local_stats[OutKey] to now - stats[StartKey].
// A missing StartKey is a programming error and panics via frame.Data.Get.
type TimestampDiffCalculator struct {
	StartKey string
	OutKey   string
}

func NewTimestampDiffCalculator(startKey, outKey string) TimestampDiffCalculator {
	return TimestampDiffCalculator{StartKey: startKey, OutKey: outKey}
}

func (t TimestampDiffCalculator) Process(_ context.Context, fd *frame.Data) (*frame.Data, bool) {
	start := fd.Get(t.StartKey)
	now := nowMillis()
	var diff uint64
	if now > start {
		diff = now - start
	}
	fd.SetLocal(t.OutKey, diff)
	return fd, true
}
