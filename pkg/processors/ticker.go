package processors

import (
	"context"
	"time"

	"github.com/aegroto/remotia/pkg/frame"
)

// Ticker awaits a periodic tick before passing the frame through. It
// has no other effect; prefer Stage.WithTick for the head-of-pipeline
// pacing case, and use Ticker when a tick needs to sit between two
// other Processors within the same Stage.
type Ticker struct {
	ticker *time.Ticker
}

// NewTicker creates a Ticker firing every period.
func NewTicker(period time.Duration) *Ticker {
	return &Ticker{ticker: time.NewTicker(period)}
}

func (t *Ticker) Process(ctx context.Context, fd *frame.Data) (*frame.Data, bool) {
	select {
	case <-t.ticker.C:
		return fd, true
	case <-ctx.Done():
		return fd, false
	}
}

// Stop releases the underlying time.Ticker's resources.
func (t *Ticker) Stop() {
	t.ticker.Stop()
}
