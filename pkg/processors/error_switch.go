package processors

import (
	"context"

	"github.com/aegroto/remotia/pkg/frame"
	"github.com/aegroto/remotia/pkg/pipeline"
)

// OnErrorSwitch is the sole mechanism for removing a failed FrameData
// from the main path (spec §4.6). When the current frame carries a
// drop reason it is handed to the target pipeline's Feeder and the
// Stage stops processing it further; otherwise it passes through
// untouched.
type OnErrorSwitch struct {
	feeder pipeline.Feeder
}

// NewOnErrorSwitch binds an OnErrorSwitch to the feeder of the
// destination (error-handling) pipeline.
func NewOnErrorSwitch(destination *pipeline.Pipeline) OnErrorSwitch {
	return OnErrorSwitch{feeder: destination.GetFeeder()}
}

func (s OnErrorSwitch) Process(_ context.Context, fd *frame.Data) (*frame.Data, bool) {
	if fd.IsDropped() {
		s.feeder.Feed(fd)
		return nil, false
	}
	return fd, true
}
