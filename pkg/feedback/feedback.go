// Package feedback carries latency-driven signals from a receiving
// pipeline back to the sending side — the channel that lets a client's
// observed frame delay influence what the server encodes next (spec
// §4.7, §9). It is deliberately thin: the pipeline core never blocks
// on a feedback round-trip, it only publishes observations.
package feedback

import "context"

// Kind enumerates the feedback messages a client can emit.
type Kind int

const (
	// HighFrameDelay reports that locally observed end-to-end frame
	// delay crossed the configured drop threshold.
	HighFrameDelay Kind = iota
)

func (k Kind) String() string {
	switch k {
	case HighFrameDelay:
		return "high_frame_delay"
	default:
		return "unknown"
	}
}

// Message is one feedback observation, keyed by the session it concerns.
type Message struct {
	SessionID string
	Kind      Kind
	ObservedDelayMillis uint64
}

// Publisher mirrors the teacher's pubsub.Publisher contract, narrowed
// to the one operation the pipeline needs: fire-and-forget publication
// of a feedback Message onto a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, msg Message) error
}
