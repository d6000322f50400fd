package commands

import (
	"context"

	"tendering/internal/core/domain/model/quotation"
)

// RemoveLineCommandHandler deletes a line from an open quotation.
type RemoveLineCommandHandler struct {
	uowFactory QuotationUoWFactory
}

func NewRemoveLineCommandHandler(uowFactory QuotationUoWFactory) RemoveLineCommandHandler {
	return RemoveLineCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RemoveLineCommandHandler) Handle(ctx context.Context, command RemoveLineCommand) (*quotation.Quotation, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return editQuotation(ctx, h.uowFactory, command.QuotationID(), func(q *quotation.Quotation) error {
		return q.RemoveLine(command.LineID())
	})
}
