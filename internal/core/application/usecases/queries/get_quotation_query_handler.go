package queries

import (
	"context"
)

type GetQuotationQueryHandler struct {
	readerFactory ReaderFactory
}

func NewGetQuotationQueryHandler(readerFactory ReaderFactory) GetQuotationQueryHandler {
	return GetQuotationQueryHandler{readerFactory: readerFactory}
}

func (h GetQuotationQueryHandler) Handle(ctx context.Context, query GetQuotationQuery) (QuotationView, error) {
	if err := query.Validate(); err != nil {
		return QuotationView{}, err
	}

	q, err := h.readerFactory.Create().QuotationRepository().Get(ctx, query.QuotationID())
	if err != nil {
		return QuotationView{}, err
	}

	return NewQuotationView(q), nil
}
