package feedback

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// NATSPublisher publishes feedback messages over a NATS connection, as
// JSON payloads. It mirrors the teacher's connection-status handling
// around a *nats.Conn, scaled down to plain core NATS since feedback
// publication needs no JetStream durability: a missed delay warning is
// harmless, it will be superseded by the next one.
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to url and returns a ready Publisher.
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("feedback: nats connection lost")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Info().Msg("feedback: nats reconnected")
		}),
	)
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(_ context.Context, topic string, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.conn.Publish(topic, payload)
}

// Close closes the underlying connection without draining it.
func (p *NATSPublisher) Close() {
	p.conn.Close()
}

var _ Publisher = (*NATSPublisher)(nil)
