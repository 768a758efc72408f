package pipeline

import (
	"context"
	"time"

	"github.com/aegroto/remotia/pkg/frame"
	"github.com/rs/zerolog/log"
)

// sink is satisfied by anything a Stage can hand a surviving FrameData
// to downstream. It is implemented by *unboundedQueue.
type sink interface {
	Send(fd *frame.Data)
}

// Stage hosts an ordered list of Processors behind one optional input
// channel and one optional output sink, run by one long-lived goroutine.
// Processors within a Stage run strictly sequentially; Stages run
// concurrently with each other (spec §4.2, §5).
type Stage struct {
	Name string

	processors []Processor
	in         <-chan *frame.Data
	out        sink
	tickPeriod time.Duration
}

// NewStage creates an empty, unbound Stage.
func NewStage(name string) *Stage {
	return &Stage{Name: name}
}

// WithTick configures a periodic tick: each iteration of Run awaits the
// next tick before doing anything else.
func (s *Stage) WithTick(period time.Duration) *Stage {
	s.tickPeriod = period
	return s
}

// Add appends a Processor to the Stage's ordered list.
func (s *Stage) Add(p Processor) *Stage {
	s.processors = append(s.processors, p)
	return s
}

// Run executes the Stage's contract until ctx is cancelled or the input
// channel is closed. It never returns a non-nil error except
// ctx.Err(); a closed input channel is normal termination.
func (s *Stage) Run(ctx context.Context) error {
	var ticker *time.Ticker
	if s.tickPeriod > 0 {
		ticker = time.NewTicker(s.tickPeriod)
		defer ticker.Stop()
	}

	for {
		if ticker != nil {
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		fd, ok, err := s.receive(ctx)
		if err != nil {
			return err
		}
		if !ok {
			log.Debug().Str("stage", s.Name).Msg("input channel closed, stopping stage")
			return nil
		}

		survived := true
		for _, p := range s.processors {
			fd, survived = p.Process(ctx, fd)
			if !survived {
				break
			}
		}

		if survived && s.out != nil {
			s.out.Send(fd)
		}
	}
}

func (s *Stage) receive(ctx context.Context) (*frame.Data, bool, error) {
	if s.in == nil {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		return frame.New(), true, nil
	}

	select {
	case fd, ok := <-s.in:
		return fd, ok, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}
