package pebblestore

import (
	"context"
	"fmt"

	"tendering/internal/core/domain/model/award"
	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/pkg/errs"

	"github.com/cockroachdb/pebble"
)

// AwardRepository implements ports.AwardRepository on Pebble.
type AwardRepository struct {
	session
	tracker aggregateTracker
}

func (r *AwardRepository) Add(ctx context.Context, aggregate *award.Award) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	err := r.update(ctx, "add award", func(b *pebble.Batch) error {
		found, err := exists(b, awardKey(aggregate.ID()))
		if err != nil {
			return errs.NewRepositoryError("add award", err)
		}
		if found {
			return errs.NewRepositoryError("add award", fmt.Errorf("award %s already exists", aggregate.ID()))
		}

		seq, err := nextSeq(b)
		if err != nil {
			return errs.NewRepositoryError("add award", err)
		}

		id := []byte(aggregate.ID().String())
		suffix := awardOrderSuffix(aggregate.AdjudicationDate(), seq)
		if err = setJSON(b, awardKey(aggregate.ID()), awardToRecord(aggregate)); err != nil {
			return errs.NewRepositoryError("add award", err)
		}
		if err = b.Set(awardsByTenderKey(aggregate.TenderID(), suffix), id, nil); err != nil {
			return errs.NewRepositoryError("add award", err)
		}
		return errs.WrapRepository("add award", b.Set(awardsByQuotationKey(aggregate.QuotationID(), suffix), id, nil))
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *AwardRepository) Get(_ context.Context, id kernel.UUID) (*award.Award, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var rec awardRecord
	found, err := getJSON(r.reader(), awardKey(id), &rec)
	if err != nil {
		return nil, errs.NewRepositoryError("get award", err)
	}
	if !found {
		return nil, errs.NewObjectNotFoundError("award", id.String())
	}
	return rec.toDomain()
}

func (r *AwardRepository) ListByTender(ctx context.Context, tenderID kernel.UUID) ([]*award.Award, error) {
	if err := tenderID.Validate(); err != nil {
		return nil, err
	}
	return r.list(ctx, awardsByTenderPrefix(tenderID))
}

func (r *AwardRepository) ListByQuotation(ctx context.Context, quotationID kernel.UUID) ([]*award.Award, error) {
	if err := quotationID.Validate(); err != nil {
		return nil, err
	}
	return r.list(ctx, awardsByQuotationPrefix(quotationID))
}

func (r *AwardRepository) list(ctx context.Context, prefix []byte) ([]*award.Award, error) {
	values, err := scanValues(r.reader(), prefix)
	if err != nil {
		return nil, errs.NewRepositoryError("list awards", err)
	}
	ids, err := parseIDs(values)
	if err != nil {
		return nil, err
	}

	awards := make([]*award.Award, 0, len(ids))
	for _, id := range ids {
		a, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		awards = append(awards, a)
	}
	return awards, nil
}
