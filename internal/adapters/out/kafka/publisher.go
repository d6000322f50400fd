// Package kafka publishes outbox messages to a Kafka topic.
package kafka

import (
	"context"
	"fmt"
	"strings"

	"tendering/internal/core/ports"

	kafkago "github.com/segmentio/kafka-go"
)

const (
	HeaderEventType = "event-type"
	HeaderMessageID = "message-id"
)

// messageWriter is the subset of kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher implements ports.MessagePublisher. Messages are keyed by tender
// id, so the hash balancer keeps the events of one tender in order on a
// single partition.
type Publisher struct {
	writer messageWriter
}

// NewPublisher creates a synchronous writer that waits for all in-sync
// replicas. brokers is a comma-separated list of host:port.
func NewPublisher(brokers string, topic string) *Publisher {
	var addrs []string
	for _, a := range strings.Split(brokers, ",") {
		if a = strings.TrimSpace(a); a != "" {
			addrs = append(addrs, a)
		}
	}
	return &Publisher{writer: &kafkago.Writer{
		Addr:                   kafkago.TCP(addrs...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}}
}

func newPublisherWith(w messageWriter) *Publisher {
	return &Publisher{writer: w}
}

// Publish writes the batch in one request. On error none of the messages may
// be considered delivered; the relay retries the whole batch.
func (p *Publisher) Publish(ctx context.Context, messages []ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	batch := make([]kafkago.Message, 0, len(messages))
	for _, m := range messages {
		batch = append(batch, kafkago.Message{
			Key:   []byte(m.Key),
			Value: m.Payload,
			Time:  m.OccurredAt,
			Headers: []kafkago.Header{
				{Key: HeaderEventType, Value: []byte(m.EventType)},
				{Key: HeaderMessageID, Value: []byte(m.ID.String())},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, batch...); err != nil {
		return fmt.Errorf("publish %d messages: %w", len(batch), err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
