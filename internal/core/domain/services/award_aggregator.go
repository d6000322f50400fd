package services

import (
	"time"

	"tendering/internal/core/domain/model/award"
	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/quotation"
)

// AwardAggregator builds immutable Award records from resolved quotation lines.
//
// Classification rule:
//   - Total when the batch has at least one awarded item, every awarded item
//     covers its whole line, and the batch has no non-awarded items
//   - Partial otherwise
//
// A single AwardFull decision therefore yields a Total award, and a single
// AwardPartial or Reject decision yields a Partial one.
//
// Example usage:
//
//	res, err := q.ResolveLine(lineID, quotation.AwardFull{})
//	if err != nil {
//	    return err
//	}
//	a, err := aggregator.FromResolution(kernel.NewUUID(), q, res, time.Now())
type AwardAggregator struct{}

func NewAwardAggregator() AwardAggregator {
	return AwardAggregator{}
}

// CreateAward classifies the batch and builds the award. Totals are computed
// exactly over the awarded items, applying the tax of each item separately.
// An empty batch fails with errs.ErrEmptyAward.
func (a AwardAggregator) CreateAward(
	id kernel.UUID,
	quotationID kernel.UUID,
	tenderID kernel.UUID,
	awardedItems []award.AwardedItem,
	nonAwardedItems []award.NonAwardedItem,
	adjudicationDate time.Time,
) (*award.Award, error) {
	return award.NewAward(
		id,
		quotationID,
		tenderID,
		a.Classify(awardedItems, nonAwardedItems),
		awardedItems,
		nonAwardedItems,
		adjudicationDate,
	)
}

// FromResolution builds the award for a single line resolution of q.
func (a AwardAggregator) FromResolution(
	id kernel.UUID,
	q *quotation.Quotation,
	res quotation.Resolution,
	adjudicationDate time.Time,
) (*award.Award, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return a.CreateAward(id, q.ID(), q.TenderID(), res.AwardedItems(), res.NonAwardedItems(), adjudicationDate)
}

// Classify returns the status an award built from the batch would have.
func (a AwardAggregator) Classify(awardedItems []award.AwardedItem, nonAwardedItems []award.NonAwardedItem) award.Status {
	if len(awardedItems) == 0 || len(nonAwardedItems) > 0 {
		return award.Partial
	}
	for _, item := range awardedItems {
		if !item.IsFull() {
			return award.Partial
		}
	}
	return award.Total
}
