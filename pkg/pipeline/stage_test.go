package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/aegroto/remotia/pkg/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageSynthesizesEmptyFrameWhenUnbound(t *testing.T) {
	var seen int
	stage := NewStage("synth").Add(ProcessorFunc(func(_ context.Context, fd *frame.Data) (*frame.Data, bool) {
		seen++
		return fd, false // end each synthesized frame here; the context deadline stops Run
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := stage.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Greater(t, seen, 0)
}

func TestStageStopsWhenInputChannelCloses(t *testing.T) {
	in := make(chan *frame.Data)
	stage := &Stage{Name: "closer", in: in}

	done := make(chan error, 1)
	go func() { done <- stage.Run(context.Background()) }()

	close(in)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("stage did not stop on closed input channel")
	}
}

func TestStageBreaksOnFirstDroppedProcessor(t *testing.T) {
	var ranSecond bool
	in := make(chan *frame.Data, 1)
	out := make(chan *frame.Data, 1)

	stage := &Stage{
		Name: "break",
		in:   in,
		out:  chanSink{out},
		processors: []Processor{
			ProcessorFunc(func(_ context.Context, fd *frame.Data) (*frame.Data, bool) {
				return fd, false
			}),
			ProcessorFunc(func(_ context.Context, fd *frame.Data) (*frame.Data, bool) {
				ranSecond = true
				return fd, true
			}),
		},
	}

	in <- frame.New()
	close(in)

	_ = stage.Run(context.Background())

	assert.False(t, ranSecond, "processors after a stop must not run")
	assert.Empty(t, out, "a stopped frame must not reach the output sink")
}

type chanSink struct {
	ch chan *frame.Data
}

func (s chanSink) Send(fd *frame.Data) {
	s.ch <- fd
}
