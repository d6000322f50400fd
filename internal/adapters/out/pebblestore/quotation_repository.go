package pebblestore

import (
	"context"
	"errors"
	"fmt"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/quotation"
	"tendering/internal/pkg/errs"

	"github.com/cockroachdb/pebble"
)

// QuotationRepository implements ports.QuotationRepository on Pebble. The
// open-quotation index key enforces one open quotation per tender.
type QuotationRepository struct {
	session
	tracker aggregateTracker
}

func (r *QuotationRepository) Add(ctx context.Context, aggregate *quotation.Quotation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	err := r.update(ctx, "add quotation", func(b *pebble.Batch) error {
		found, err := exists(b, quotationKey(aggregate.ID()))
		if err != nil {
			return errs.NewRepositoryError("add quotation", err)
		}
		if found {
			return errs.NewRepositoryError("add quotation", fmt.Errorf("quotation %s already exists", aggregate.ID()))
		}

		if aggregate.IsOpen() {
			openID, err := r.openQuotationID(b, aggregate.TenderID())
			if err != nil {
				return err
			}
			if openID != nil {
				return errs.NewDuplicateOpenQuotationError(aggregate.TenderID().String(), openID.String())
			}
		}

		seq, err := nextSeq(b)
		if err != nil {
			return errs.NewRepositoryError("add quotation", err)
		}
		return errs.WrapRepository("add quotation", r.write(b, quotationToRecord(aggregate, seq)))
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update rewrites the quotation when the stored version matches and then
// advances the aggregate version.
func (r *QuotationRepository) Update(ctx context.Context, aggregate *quotation.Quotation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	err := r.update(ctx, "update quotation", func(b *pebble.Batch) error {
		var stored quotationRecord
		found, err := getJSON(b, quotationKey(aggregate.ID()), &stored)
		if err != nil {
			return errs.NewRepositoryError("update quotation", err)
		}
		if !found {
			return errs.NewObjectNotFoundError("quotation", aggregate.ID().String())
		}
		if stored.Version != aggregate.Version() {
			return errs.NewRepositoryError("update quotation", fmt.Errorf("%w: version %d of quotation %s is stale",
				errs.ErrConcurrentModification, aggregate.Version(), aggregate.ID()))
		}

		rec := quotationToRecord(aggregate, stored.Seq)
		rec.Version++
		return errs.WrapRepository("update quotation", r.write(b, rec))
	})
	if err != nil {
		return err
	}

	aggregate.IncrementVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *QuotationRepository) Get(_ context.Context, id kernel.UUID) (*quotation.Quotation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.load(id, id.String())
}

func (r *QuotationRepository) GetOpenByTender(_ context.Context, tenderID kernel.UUID) (*quotation.Quotation, error) {
	if err := tenderID.Validate(); err != nil {
		return nil, err
	}

	openID, err := r.openQuotationID(r.reader(), tenderID)
	if err != nil {
		return nil, err
	}
	if openID == nil {
		return nil, errs.NewObjectNotFoundError("quotation", "open for tender "+tenderID.String())
	}
	return r.load(*openID, openID.String())
}

func (r *QuotationRepository) GetLatestByTender(_ context.Context, tenderID kernel.UUID) (*quotation.Quotation, error) {
	if err := tenderID.Validate(); err != nil {
		return nil, err
	}

	values, err := scanValues(r.reader(), quotationsByTenderPrefix(tenderID))
	if err != nil {
		return nil, errs.NewRepositoryError("get latest quotation", err)
	}
	if len(values) == 0 {
		return nil, errs.NewObjectNotFoundError("quotation", "latest for tender "+tenderID.String())
	}

	ids, err := parseIDs(values[len(values)-1:])
	if err != nil {
		return nil, err
	}
	return r.load(ids[0], ids[0].String())
}

func (r *QuotationRepository) load(id kernel.UUID, notFoundID string) (*quotation.Quotation, error) {
	var rec quotationRecord
	found, err := getJSON(r.reader(), quotationKey(id), &rec)
	if err != nil {
		return nil, errs.NewRepositoryError("get quotation", err)
	}
	if !found {
		return nil, errs.NewObjectNotFoundError("quotation", notFoundID)
	}
	return rec.toDomain()
}

// write stores the record and keeps the tender indexes in step with its state.
func (r *QuotationRepository) write(b *pebble.Batch, rec quotationRecord) error {
	if err := setJSON(b, quotationKey(rec.ID), rec); err != nil {
		return err
	}
	if err := b.Set(quotationsByTenderKey(rec.TenderID, rec.Seq), []byte(rec.ID.String()), nil); err != nil {
		return err
	}

	openKey := openQuotationKey(rec.TenderID)
	if quotation.State(rec.State) == quotation.Open {
		return b.Set(openKey, []byte(rec.ID.String()), nil)
	}

	openID, err := r.openQuotationID(b, rec.TenderID)
	if err != nil {
		return err
	}
	if openID != nil && openID.IsEqual(rec.ID) {
		return b.Delete(openKey, nil)
	}
	return nil
}

func (r *QuotationRepository) openQuotationID(reader pebble.Reader, tenderID kernel.UUID) (*kernel.UUID, error) {
	raw, closer, err := reader.Get(openQuotationKey(tenderID))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, nil
		}
		return nil, errs.NewRepositoryError("get open quotation", err)
	}
	defer func() { _ = closer.Close() }()

	id, err := kernel.UUIDFromString(string(raw))
	if err != nil {
		return nil, errs.NewRepositoryError("decode open quotation index", err)
	}
	return &id, nil
}
