package pebblestore

import (
	"context"
	"fmt"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/tender"
	"tendering/internal/pkg/errs"

	"github.com/cockroachdb/pebble"
)

// TenderRepository implements ports.TenderRepository on Pebble.
type TenderRepository struct {
	session
	tracker aggregateTracker
}

func (r *TenderRepository) Add(ctx context.Context, aggregate *tender.Tender) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	err := r.update(ctx, "add tender", func(b *pebble.Batch) error {
		found, err := exists(b, tenderKey(aggregate.ID()))
		if err != nil {
			return errs.NewRepositoryError("add tender", err)
		}
		if found {
			return errs.NewRepositoryError("add tender", fmt.Errorf("tender %s already exists", aggregate.ID()))
		}

		seq, err := nextSeq(b)
		if err != nil {
			return errs.NewRepositoryError("add tender", err)
		}
		if err = setJSON(b, tenderKey(aggregate.ID()), tenderToRecord(aggregate, seq)); err != nil {
			return errs.NewRepositoryError("add tender", err)
		}
		return errs.WrapRepository("add tender", b.Set(tenderOrderKey(seq), []byte(aggregate.ID().String()), nil))
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update rewrites the derived status only.
func (r *TenderRepository) Update(ctx context.Context, aggregate *tender.Tender) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	err := r.update(ctx, "update tender", func(b *pebble.Batch) error {
		var rec tenderRecord
		found, err := getJSON(b, tenderKey(aggregate.ID()), &rec)
		if err != nil {
			return errs.NewRepositoryError("update tender", err)
		}
		if !found {
			return errs.NewObjectNotFoundError("tender", aggregate.ID().String())
		}

		rec.Status = int(aggregate.Status())
		return errs.WrapRepository("update tender", setJSON(b, tenderKey(aggregate.ID()), rec))
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *TenderRepository) Get(_ context.Context, id kernel.UUID) (*tender.Tender, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var rec tenderRecord
	found, err := getJSON(r.reader(), tenderKey(id), &rec)
	if err != nil {
		return nil, errs.NewRepositoryError("get tender", err)
	}
	if !found {
		return nil, errs.NewObjectNotFoundError("tender", id.String())
	}
	return rec.toDomain()
}

func (r *TenderRepository) ListIDs(_ context.Context) ([]kernel.UUID, error) {
	values, err := scanValues(r.reader(), tenderOrderPrefix())
	if err != nil {
		return nil, errs.NewRepositoryError("list tender ids", err)
	}
	return parseIDs(values)
}

func parseIDs(values [][]byte) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(values))
	for _, v := range values {
		id, err := kernel.UUIDFromString(string(v))
		if err != nil {
			return nil, errs.NewRepositoryError("decode index entry", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
