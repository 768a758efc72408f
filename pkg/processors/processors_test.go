package processors

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/aegroto/remotia/pkg/feedback"
	"github.com/aegroto/remotia/pkg/frame"
	"github.com/aegroto/remotia/pkg/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingFeedbackPublisher struct {
	messages []feedback.Message
}

func (r *recordingFeedbackPublisher) Publish(_ context.Context, _ string, msg feedback.Message) error {
	r.messages = append(r.messages, msg)
	return nil
}

func TestFeedbackEmitterPublishesOnlyOnStaleDrop(t *testing.T) {
	pub := &recordingFeedbackPublisher{}
	emitter := NewFeedbackEmitter(pub, "feedback.session-1", "session-1", "delay_millis")

	fine := frame.New()
	_, _ = emitter.Process(context.Background(), fine)
	assert.Empty(t, pub.messages, "a non-dropped frame must not publish feedback")

	stale := frame.New()
	stale.Set("delay_millis", 250)
	stale.SetDropReason(frame.DropStaleFrame)
	_, _ = emitter.Process(context.Background(), stale)

	require.Len(t, pub.messages, 1)
	assert.Equal(t, feedback.HighFrameDelay, pub.messages[0].Kind)
	assert.Equal(t, uint64(250), pub.messages[0].ObservedDelayMillis)

	otherDrop := frame.New()
	otherDrop.SetDropReason(frame.DropTimeout)
	_, _ = emitter.Process(context.Background(), otherDrop)
	assert.Len(t, pub.messages, 1, "a non-staleness drop must not publish feedback")
}

func TestThresholdDropperStrictInequality(t *testing.T) {
	dropper := NewThresholdBasedFrameDropper("delay", 100)

	fd := frame.New()
	fd.SetLocal("delay", 100)
	fd, _ = dropper.Process(context.Background(), fd)
	assert.False(t, fd.IsDropped(), "equal to threshold must not drop")

	fd2 := frame.New()
	fd2.SetLocal("delay", 101)
	fd2, _ = dropper.Process(context.Background(), fd2)
	assert.True(t, fd2.IsDropped())
	reason, _ := fd2.DropReason()
	assert.Equal(t, frame.DropStaleFrame, reason)
}

func TestKeyCheckerDropsOnMissingKey(t *testing.T) {
	checker := NewKeyChecker("frame_id")

	present := frame.New()
	present.Set("frame_id", 1)
	present, ok := checker.Process(context.Background(), present)
	assert.True(t, ok)
	assert.False(t, present.IsDropped())

	missing := frame.New()
	missing, ok = checker.Process(context.Background(), missing)
	assert.True(t, ok)
	assert.True(t, missing.IsDropped())
}

func TestBufferBorrowerAndRedeemerConserveBuffers(t *testing.T) {
	pool := frame.NewPool("pool", 1, 32)
	borrower := NewBufferBorrower(pool)
	redeemer := NewBufferRedeemer(pool)

	fd := frame.New()
	fd, _ = borrower.Process(context.Background(), fd)
	require.False(t, fd.IsDropped())
	assert.Equal(t, 0, pool.Available())

	fd, _ = redeemer.Process(context.Background(), fd)
	assert.Equal(t, 1, pool.Available())
}

func TestBufferBorrowerDropsWhenPoolEmpty(t *testing.T) {
	pool := frame.NewPool("empty-pool", 0, 32)
	borrower := NewBufferBorrower(pool)

	fd := frame.New()
	fd, _ = borrower.Process(context.Background(), fd)
	assert.True(t, fd.IsDropped())
	reason, _ := fd.DropReason()
	assert.Equal(t, frame.DropNoAvailableBuffers, reason)
}

func TestSoftBufferRedeemerTreatsAbsenceAsPassThrough(t *testing.T) {
	pool := frame.NewPool("soft-pool", 1, 32)
	redeemer := NewSoftBufferRedeemer(pool)

	fd := frame.New()
	fd, ok := redeemer.Process(context.Background(), fd)
	assert.True(t, ok)
	assert.Equal(t, 1, pool.Available(), "soft redeemer must not touch the pool when buffer is absent")
}

// TestOnErrorSwitchDivertsFrame covers seed scenario S4.
func TestOnErrorSwitchDivertsFrame(t *testing.T) {
	errPipeline := pipeline.New("errors").Feedable()
	errSink := make(chan *frame.Data, 4)
	errPipeline.Link(pipeline.NewStage("sink").Add(pipeline.ProcessorFunc(func(_ context.Context, fd *frame.Data) (*frame.Data, bool) {
		errSink <- fd
		return fd, true
	})))

	sentinelCalled := false
	sentinel := pipeline.NewStage("sentinel").Add(pipeline.ProcessorFunc(func(_ context.Context, fd *frame.Data) (*frame.Data, bool) {
		sentinelCalled = true
		return fd, true
	}))

	mainPipeline := pipeline.New("main").Feedable()
	onError := NewOnErrorSwitch(errPipeline)
	mainPipeline.Link(pipeline.NewStage("t0").
		Add(NewTimestampAdder("t0")).
		Add(pipeline.ProcessorFunc(func(_ context.Context, fd *frame.Data) (*frame.Data, bool) {
			time.Sleep(120 * time.Millisecond)
			return fd, true
		})))
	mainPipeline.Link(pipeline.NewStage("drop").
		Add(NewTimestampDiffCalculator("t0", "d")).
		Add(NewThresholdBasedFrameDropper("d", 100)).
		Add(onError))
	mainPipeline.Link(sentinel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go errPipeline.Run(ctx)
	go mainPipeline.Run(ctx)

	feeder := mainPipeline.GetFeeder()

	t0 := frame.New()
	feeder.Feed(t0)

	select {
	case fd := <-errSink:
		reason, ok := fd.DropReason()
		require.True(t, ok)
		assert.Equal(t, frame.DropStaleFrame, reason)
	case <-time.After(2 * time.Second):
		t.Fatal("frame never reached the error pipeline")
	}

	assert.False(t, sentinelCalled, "sentinel stage must see zero frames")
}

func TestCSVProfilerWritesHeaderAndRow(t *testing.T) {
	var buf bytes.Buffer
	profiler, err := NewCSVProfiler(&buf)
	require.NoError(t, err)

	fd := frame.New()
	fd.Set(frame.StatCaptureTimestamp, 42)
	fd.SetDropReason(frame.DropTimeout)

	profiler.Process(context.Background(), fd)

	out := buf.String()
	assert.Contains(t, out, "capture_timestamp,drop_reason")
	assert.Contains(t, out, "42,timeout")
}
