package processors

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/aegroto/remotia/pkg/frame"
	"github.com/rs/zerolog/log"
)

// DropReasonLogger logs the frame's drop reason and capture timestamp
// at debug level and passes the frame through unchanged. It belongs on
// an error pipeline, never on a latency-sensitive path (spec §4.6,
// §7): logging is I/O-bound work that must stay off the critical path.
type DropReasonLogger struct{}

func NewDropReasonLogger() DropReasonLogger {
	return DropReasonLogger{}
}

func (DropReasonLogger) Process(_ context.Context, fd *frame.Data) (*frame.Data, bool) {
	reason, _ := fd.DropReason()
	captureTimestamp, _ := fd.TryGet(frame.StatCaptureTimestamp)

	log.Debug().
		Str("drop_reason", reason.String()).
		Uint64("capture_timestamp", captureTimestamp).
		Msg("frame dropped")

	return fd, true
}

// CSVProfiler appends one row per frame it sees — capture_timestamp and
// drop_reason (empty when the frame was not dropped) — to an
// io.Writer. It is intended for the error pipeline's tail, opposite
// the DropReasonLogger; cmd/remotia-server adds it when
// CSV_PROFILING_PATH is set. Construction writes a header row.
type CSVProfiler struct {
	w *csv.Writer
}

// NewCSVProfiler wraps w in a csv.Writer and writes the header row.
func NewCSVProfiler(w io.Writer) (*CSVProfiler, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"capture_timestamp", "drop_reason"}); err != nil {
		return nil, err
	}
	cw.Flush()
	return &CSVProfiler{w: cw}, nil
}

func (p *CSVProfiler) Process(_ context.Context, fd *frame.Data) (*frame.Data, bool) {
	captureTimestamp, _ := fd.TryGet(frame.StatCaptureTimestamp)
	reason, dropped := fd.DropReason()

	reasonStr := ""
	if dropped {
		reasonStr = reason.String()
	}

	_ = p.w.Write([]string{strconv.FormatUint(captureTimestamp, 10), reasonStr})
	p.w.Flush()

	return fd, true
}
