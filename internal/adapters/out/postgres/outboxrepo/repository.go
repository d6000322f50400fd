// Package outboxrepo stores integration events written in the same
// transaction as the state change they describe.
package outboxrepo

import (
	"context"
	"time"

	"tendering/internal/adapters/out/postgres/pgutil"
	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EventType   string     `gorm:"type:varchar(64);not null"`
	MessageKey  string     `gorm:"type:varchar(255);not null"`
	Payload     string     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null"`
	PublishedAt *time.Time
	Seq         int64 `gorm:"->;autoIncrement"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Add(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	dtos := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		dtos = append(dtos, MessageDTO{
			ID:          m.ID.Bytes(),
			EventType:   m.EventType,
			MessageKey:  m.Key,
			Payload:     string(m.Payload),
			OccurredAt:  m.OccurredAt.UTC(),
			PublishedAt: m.PublishedAt,
		})
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return pgutil.Wrap("add outbox messages", err)
	}
	return nil
}

func (r *GormOutboxRepository) ListUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []MessageDTO
	if err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("seq").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, pgutil.Wrap("list unpublished outbox messages", err)
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		messages = append(messages, ports.OutboxMessage{
			ID:          kernel.UUIDFromGoogle(dto.ID),
			EventType:   dto.EventType,
			Key:         dto.MessageKey,
			Payload:     []byte(dto.Payload),
			OccurredAt:  dto.OccurredAt.UTC(),
			PublishedAt: dto.PublishedAt,
		})
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, publishedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	if err := r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id IN ? AND published_at IS NULL", raw).
		Update("published_at", publishedAt.UTC()).Error; err != nil {
		return pgutil.Wrap("mark outbox messages published", err)
	}
	return nil
}
