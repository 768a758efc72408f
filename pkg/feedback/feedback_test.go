package feedback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingPublisher struct {
	topics   []string
	messages []Message
}

func (r *recordingPublisher) Publish(_ context.Context, topic string, msg Message) error {
	r.topics = append(r.topics, topic)
	r.messages = append(r.messages, msg)
	return nil
}

func TestNoopPublisherDiscardsMessages(t *testing.T) {
	pub := NoopPublisher{}
	err := pub.Publish(context.Background(), "any.topic", Message{Kind: HighFrameDelay})
	assert.NoError(t, err)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "high_frame_delay", HighFrameDelay.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestPublisherInterfaceIsSatisfiedByRecorder(t *testing.T) {
	var pub Publisher = &recordingPublisher{}
	msg := Message{SessionID: "s1", Kind: HighFrameDelay, ObservedDelayMillis: 250}
	require := assert.New(t)

	err := pub.Publish(context.Background(), "feedback.s1", msg)
	require.NoError(err)

	rec := pub.(*recordingPublisher)
	require.Equal([]string{"feedback.s1"}, rec.topics)
	require.Equal([]Message{msg}, rec.messages)
}
