package ports

import (
	"context"
	"time"

	"tendering/internal/core/domain/model/kernel"
)

// Event types written to the outbox.
const (
	EventTenderOpened       = "tender.opened"
	EventQuotationCreated   = "quotation.created"
	EventQuotationFinalized = "quotation.finalized"
	EventAwardCreated       = "award.created"
	EventTenderStatusChange = "tender.status_changed"
)

// OutboxMessage is an integration event stored in the same transaction as the
// state change it describes. Key groups the messages of one tender.
type OutboxMessage struct {
	ID          kernel.UUID
	EventType   string
	Key         string
	Payload     []byte
	OccurredAt  time.Time
	PublishedAt *time.Time
}

// OutboxRepository stores integration events until the relay publishes them.
type OutboxRepository interface {
	Add(ctx context.Context, messages ...OutboxMessage) error

	// ListUnpublished returns at most limit unpublished messages, oldest first.
	ListUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	MarkPublished(ctx context.Context, ids []kernel.UUID, publishedAt time.Time) error
}

// MessagePublisher delivers outbox messages to the message broker.
type MessagePublisher interface {
	Publish(ctx context.Context, messages []OutboxMessage) error
}
