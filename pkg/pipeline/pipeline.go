package pipeline

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Pipeline owns a linear sequence of Stages wired by unbounded FIFO
// channels. A feedable Pipeline additionally exposes a Feeder so other
// pipelines' OnErrorSwitch processors can inject FrameData into its
// head Stage.
type Pipeline struct {
	Name string

	stages      []*Stage
	feedable    bool
	feederQueue *unboundedQueue

	bound bool
}

// New creates an empty Pipeline.
func New(name string) *Pipeline {
	return &Pipeline{Name: name}
}

// Link appends a Stage to the end of the Pipeline.
func (p *Pipeline) Link(s *Stage) *Pipeline {
	p.stages = append(p.stages, s)
	return p
}

// Feedable marks the Pipeline as accepting externally injected
// FrameData into its first Stage. Must be called before Bind/Run.
func (p *Pipeline) Feedable() *Pipeline {
	p.feedable = true
	return p
}

// Bind wires successive Stages together with unbounded channels and,
// if the Pipeline is feedable, creates the inbound feeder queue. Bind
// is idempotent and is also called implicitly by Run.
func (p *Pipeline) Bind() {
	if p.bound {
		return
	}
	p.bound = true

	if len(p.stages) == 0 {
		return
	}

	if p.feedable {
		p.feederQueue = newUnboundedQueue()
		p.stages[0].in = p.feederQueue.Out()
	}

	for i := 0; i < len(p.stages)-1; i++ {
		q := newUnboundedQueue()
		p.stages[i].out = q
		p.stages[i+1].in = q.Out()
	}
}

// GetFeeder returns a Feeder into this Pipeline's head Stage. Panics if
// the Pipeline was not marked Feedable.
func (p *Pipeline) GetFeeder() Feeder {
	if !p.feedable {
		panic("pipeline: GetFeeder called on a non-feedable pipeline")
	}
	p.Bind()
	return Feeder{queue: p.feederQueue}
}

// Run binds the Pipeline if needed, launches one goroutine per Stage,
// and blocks until every Stage has stopped or ctx is cancelled. It
// returns the first non-nil, non-context-cancellation error
// encountered.
func (p *Pipeline) Run(ctx context.Context) error {
	p.Bind()

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, s := range p.stages {
		wg.Add(1)
		go func(s *Stage) {
			defer wg.Done()
			if err := s.Run(ctx); err != nil && err != context.Canceled {
				log.Error().Err(err).Str("pipeline", p.Name).Str("stage", s.Name).Msg("stage exited with error")
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(s)
	}

	wg.Wait()
	return firstErr
}
