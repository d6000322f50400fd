package queries

import (
	"errors"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/pkg/guard"
)

var ErrGetQuotationQueryIsNotConstructed = errors.New(
	"GetQuotationQuery must be created via NewGetQuotationQuery constructor",
)

// GetQuotationQuery loads a quotation with its lines, totals and the IVA
// split by tax rate.
//
// Example:
//
//	query, err := NewGetQuotationQuery(quotationID)
//	view, err := handler.Handle(ctx, query)
//	fmt.Println(view.TotalWithTax, view.Currency)
type GetQuotationQuery struct {
	quotationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetQuotationQuery(quotationID kernel.UUID) (GetQuotationQuery, error) {
	if err := quotationID.Validate(); err != nil {
		return GetQuotationQuery{}, err
	}
	return GetQuotationQuery{quotationID: quotationID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetQuotationQuery) Validate() error {
	return q.guard.Validate(ErrGetQuotationQueryIsNotConstructed)
}

func (q GetQuotationQuery) QuotationID() kernel.UUID {
	return q.quotationID
}
