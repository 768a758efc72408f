package processors

import (
	"context"

	"github.com/aegroto/remotia/pkg/feedback"
	"github.com/aegroto/remotia/pkg/frame"
)

// FeedbackEmitter belongs on an error pipeline fed by an OnErrorSwitch:
// whenever a frame arrives dropped for staleness, it publishes a
// HighFrameDelay feedback message and passes the frame through
// unchanged. Publication happens off the latency-sensitive path, same
// rationale as DropReasonLogger.
type FeedbackEmitter struct {
	publisher feedback.Publisher
	topic     string
	sessionID string
	delayStat string
}

// NewFeedbackEmitter reports delayStat (a key holding the observed delay
// in milliseconds, looked up in local_stats first and then in stats, as
// ThresholdBasedFrameDropper does) to publisher under topic whenever the
// frame carries DropStaleFrame.
func NewFeedbackEmitter(publisher feedback.Publisher, topic, sessionID, delayStat string) *FeedbackEmitter {
	return &FeedbackEmitter{
		publisher: publisher,
		topic:     topic,
		sessionID: sessionID,
		delayStat: delayStat,
	}
}

func (e *FeedbackEmitter) Process(ctx context.Context, fd *frame.Data) (*frame.Data, bool) {
	reason, dropped := fd.DropReason()
	if !dropped || reason != frame.DropStaleFrame {
		return fd, true
	}

	delay, ok := fd.TryGetLocal(e.delayStat)
	if !ok {
		delay, _ = fd.TryGet(e.delayStat)
	}
	_ = e.publisher.Publish(ctx, e.topic, feedback.Message{
		SessionID:           e.sessionID,
		Kind:                feedback.HighFrameDelay,
		ObservedDelayMillis: delay,
	})

	return fd, true
}
