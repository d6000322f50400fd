package pebblestore

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/ports"
	"tendering/internal/pkg/errs"

	"github.com/cockroachdb/pebble"
)

// OutboxRepository implements ports.OutboxRepository on Pebble. Unpublished
// messages are kept in a separate index so the relay never scans delivered
// ones.
type OutboxRepository struct {
	session
}

func (r *OutboxRepository) Add(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	return r.update(ctx, "add outbox messages", func(b *pebble.Batch) error {
		for _, m := range messages {
			seq, err := nextSeq(b)
			if err != nil {
				return errs.NewRepositoryError("add outbox messages", err)
			}

			rec := outboxRecord{
				ID:          m.ID,
				EventType:   m.EventType,
				Key:         m.Key,
				Payload:     m.Payload,
				OccurredAt:  m.OccurredAt.UTC(),
				PublishedAt: m.PublishedAt,
				Seq:         seq,
			}
			if err = r.put(b, rec); err != nil {
				return errs.NewRepositoryError("add outbox messages", err)
			}
		}
		return nil
	})
}

func (r *OutboxRepository) ListUnpublished(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	it, err := r.reader().NewIter(&pebble.IterOptions{
		LowerBound: unpublishedPrefix(),
		UpperBound: prefixEnd(unpublishedPrefix()),
	})
	if err != nil {
		return nil, errs.NewRepositoryError("list unpublished outbox messages", err)
	}
	defer func() { _ = it.Close() }()

	var messages []ports.OutboxMessage
	for it.First(); it.Valid() && len(messages) < limit; it.Next() {
		var rec outboxRecord
		found, err := getJSON(r.reader(), outboxKey(binary.BigEndian.Uint64(it.Value())), &rec)
		if err != nil {
			return nil, errs.NewRepositoryError("list unpublished outbox messages", err)
		}
		if found {
			messages = append(messages, rec.toPort())
		}
	}
	if err = it.Error(); err != nil {
		return nil, errs.NewRepositoryError("list unpublished outbox messages", err)
	}
	return messages, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, publishedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	return r.update(ctx, "mark outbox messages published", func(b *pebble.Batch) error {
		for _, id := range ids {
			raw, closer, err := b.Get(outboxIDKey(id))
			if errors.Is(err, pebble.ErrNotFound) {
				continue
			}
			if err != nil {
				return errs.NewRepositoryError("mark outbox messages published", err)
			}
			seq := binary.BigEndian.Uint64(raw)
			_ = closer.Close()

			var rec outboxRecord
			found, err := getJSON(b, outboxKey(seq), &rec)
			if err != nil {
				return errs.NewRepositoryError("mark outbox messages published", err)
			}
			if !found || rec.PublishedAt != nil {
				continue
			}

			at := publishedAt.UTC()
			rec.PublishedAt = &at
			if err = r.put(b, rec); err != nil {
				return errs.NewRepositoryError("mark outbox messages published", err)
			}
		}
		return nil
	})
}

func (r *OutboxRepository) put(b *pebble.Batch, rec outboxRecord) error {
	var seq [8]byte
	binary.BigEndian.PutUint64(seq[:], rec.Seq)

	if err := setJSON(b, outboxKey(rec.Seq), rec); err != nil {
		return err
	}
	if err := b.Set(outboxIDKey(rec.ID), seq[:], nil); err != nil {
		return err
	}
	if rec.PublishedAt != nil {
		return b.Delete(unpublishedKey(rec.Seq), nil)
	}
	if err := b.Set(unpublishedKey(rec.Seq), seq[:], nil); err != nil {
		return fmt.Errorf("index unpublished message %s: %w", rec.ID, err)
	}
	return nil
}
