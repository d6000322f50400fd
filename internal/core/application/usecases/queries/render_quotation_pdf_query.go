package queries

import (
	"errors"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/pkg/guard"
)

var ErrRenderQuotationPdfQueryIsNotConstructed = errors.New(
	"RenderQuotationPdfQuery must be created via NewRenderQuotationPdfQuery constructor",
)

// RenderQuotationPdfQuery exports a quotation, in any state, as a document.
type RenderQuotationPdfQuery struct {
	quotationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRenderQuotationPdfQuery(quotationID kernel.UUID) (RenderQuotationPdfQuery, error) {
	if err := quotationID.Validate(); err != nil {
		return RenderQuotationPdfQuery{}, err
	}
	return RenderQuotationPdfQuery{quotationID: quotationID, guard: guard.NewConstructorGuard()}, nil
}

func (q RenderQuotationPdfQuery) Validate() error {
	return q.guard.Validate(ErrRenderQuotationPdfQueryIsNotConstructed)
}

func (q RenderQuotationPdfQuery) QuotationID() kernel.UUID {
	return q.quotationID
}
