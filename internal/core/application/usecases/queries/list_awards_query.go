package queries

import (
	"errors"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/pkg/errs"
	"tendering/internal/pkg/guard"
)

var ErrListAwardsQueryIsNotConstructed = errors.New(
	"ListAwardsQuery must be created via NewListAwardsByTenderQuery or NewListAwardsByQuotationQuery constructor",
)

// ListAwardsQuery lists the awards of either a tender or a quotation, in
// adjudication order.
type ListAwardsQuery struct {
	tenderID    *kernel.UUID
	quotationID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewListAwardsByTenderQuery(tenderID kernel.UUID) (ListAwardsQuery, error) {
	if err := tenderID.Validate(); err != nil {
		return ListAwardsQuery{}, err
	}
	return ListAwardsQuery{tenderID: &tenderID, guard: guard.NewConstructorGuard()}, nil
}

func NewListAwardsByQuotationQuery(quotationID kernel.UUID) (ListAwardsQuery, error) {
	if err := quotationID.Validate(); err != nil {
		return ListAwardsQuery{}, err
	}
	return ListAwardsQuery{quotationID: &quotationID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListAwardsQuery) Validate() error {
	if err := q.guard.Validate(ErrListAwardsQueryIsNotConstructed); err != nil {
		return err
	}
	if (q.tenderID == nil) == (q.quotationID == nil) {
		return errs.NewValueIsRequiredError("tender id or quotation id")
	}
	return nil
}

// TenderID returns the tender filter, or nil when listing by quotation.
func (q ListAwardsQuery) TenderID() *kernel.UUID    { return q.tenderID }
func (q ListAwardsQuery) QuotationID() *kernel.UUID { return q.quotationID }
