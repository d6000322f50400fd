package award

import (
	"errors"
	"time"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/pkg/errs"
	"tendering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAwardIsNotConstructed = errors.New("Award must be created via NewAward constructor")

// Award is an immutable adjudication record. It has no mutating methods.
type Award struct {
	id               kernel.UUID
	quotationID      kernel.UUID
	tenderID         kernel.UUID
	status           Status
	awardedItems     []AwardedItem
	nonAwardedItems  []NonAwardedItem
	adjudicationDate time.Time

	totalQuantity        decimal.Decimal
	totalPriceWithoutTax decimal.Decimal
	totalPriceWithTax    decimal.Decimal

	guard guard.ConstructorGuard
}

// NewAward validates the record and computes its totals from the awarded
// items. Status classification belongs to the award aggregator service;
// NewAward only checks that the supplied status is a valid one. An award with
// neither awarded nor non-awarded items fails with errs.ErrEmptyAward.
func NewAward(
	id kernel.UUID,
	quotationID kernel.UUID,
	tenderID kernel.UUID,
	status Status,
	awardedItems []AwardedItem,
	nonAwardedItems []NonAwardedItem,
	adjudicationDate time.Time,
) (*Award, error) {
	if len(awardedItems) == 0 && len(nonAwardedItems) == 0 {
		return nil, errs.ErrEmptyAward
	}

	var dateErr error
	if adjudicationDate.IsZero() {
		dateErr = errs.NewValueIsRequiredError("adjudication date")
	}
	if err := errors.Join(
		id.Validate(),
		quotationID.Validate(),
		tenderID.Validate(),
		status.Validate(),
		dateErr,
	); err != nil {
		return nil, err
	}

	a := &Award{
		id:                   id,
		quotationID:          quotationID,
		tenderID:             tenderID,
		status:               status,
		awardedItems:         append([]AwardedItem(nil), awardedItems...),
		nonAwardedItems:      append([]NonAwardedItem(nil), nonAwardedItems...),
		adjudicationDate:     adjudicationDate,
		totalQuantity:        decimal.Zero,
		totalPriceWithoutTax: decimal.Zero,
		totalPriceWithTax:    decimal.Zero,
		guard:                guard.NewConstructorGuard(),
	}
	for _, item := range a.awardedItems {
		a.totalQuantity = a.totalQuantity.Add(item.Quantity())
		a.totalPriceWithoutTax = a.totalPriceWithoutTax.Add(item.TotalWithoutTax())
		a.totalPriceWithTax = a.totalPriceWithTax.Add(item.TotalWithTax())
	}

	return a, nil
}

func (a *Award) Validate() error {
	if a == nil {
		return ErrAwardIsNotConstructed
	}
	return a.guard.Validate(ErrAwardIsNotConstructed)
}

func (a *Award) ID() kernel.UUID             { return a.id }
func (a *Award) QuotationID() kernel.UUID    { return a.quotationID }
func (a *Award) TenderID() kernel.UUID       { return a.tenderID }
func (a *Award) Status() Status              { return a.status }
func (a *Award) AdjudicationDate() time.Time { return a.adjudicationDate }

func (a *Award) AwardedItems() []AwardedItem {
	return append([]AwardedItem(nil), a.awardedItems...)
}

func (a *Award) NonAwardedItems() []NonAwardedItem {
	return append([]NonAwardedItem(nil), a.nonAwardedItems...)
}

func (a *Award) TotalQuantity() decimal.Decimal        { return a.totalQuantity }
func (a *Award) TotalPriceWithoutTax() decimal.Decimal { return a.totalPriceWithoutTax }
func (a *Award) TotalPriceWithTax() decimal.Decimal    { return a.totalPriceWithTax }

// AwardedQuantityFor sums the awarded quantity of a given line in this award.
func (a *Award) AwardedQuantityFor(lineID kernel.UUID) decimal.Decimal {
	total := decimal.Zero
	for _, item := range a.awardedItems {
		if item.LineID().IsEqual(lineID) {
			total = total.Add(item.Quantity())
		}
	}
	return total
}
