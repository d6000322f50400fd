package queries

import (
	"context"

	"tendering/internal/core/domain/model/award"
)

type ListAwardsQueryHandler struct {
	readerFactory ReaderFactory
}

func NewListAwardsQueryHandler(readerFactory ReaderFactory) ListAwardsQueryHandler {
	return ListAwardsQueryHandler{readerFactory: readerFactory}
}

// Handle returns an empty slice, not an error, when nothing was awarded yet.
// The tender or quotation must exist.
func (h ListAwardsQueryHandler) Handle(ctx context.Context, query ListAwardsQuery) ([]AwardView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	reader := h.readerFactory.Create()
	var (
		awards []*award.Award
		err    error
	)
	if id := query.TenderID(); id != nil {
		if _, err = reader.TenderRepository().Get(ctx, *id); err != nil {
			return nil, err
		}
		awards, err = reader.AwardRepository().ListByTender(ctx, *id)
	} else {
		id = query.QuotationID()
		if _, err = reader.QuotationRepository().Get(ctx, *id); err != nil {
			return nil, err
		}
		awards, err = reader.AwardRepository().ListByQuotation(ctx, *id)
	}
	if err != nil {
		return nil, err
	}

	views := make([]AwardView, 0, len(awards))
	for _, a := range awards {
		views = append(views, NewAwardView(a))
	}
	return views, nil
}
