package queries

import (
	"context"
)

// GetTenderQueryHandler returns a tender with its requested items and
// derived status.
type GetTenderQueryHandler struct {
	readerFactory ReaderFactory
}

func NewGetTenderQueryHandler(readerFactory ReaderFactory) GetTenderQueryHandler {
	return GetTenderQueryHandler{readerFactory: readerFactory}
}

func (h GetTenderQueryHandler) Handle(ctx context.Context, query GetTenderQuery) (TenderView, error) {
	if err := query.Validate(); err != nil {
		return TenderView{}, err
	}

	t, err := h.readerFactory.Create().TenderRepository().Get(ctx, query.TenderID())
	if err != nil {
		return TenderView{}, err
	}

	return NewTenderView(t), nil
}
