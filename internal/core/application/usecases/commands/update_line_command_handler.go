package commands

import (
	"context"

	"tendering/internal/core/domain/model/quotation"
)

// UpdateLineCommandHandler edits a line of an open quotation. Price and tax
// changes recompute the price with tax and clear the provisional flag.
type UpdateLineCommandHandler struct {
	uowFactory QuotationUoWFactory
}

func NewUpdateLineCommandHandler(uowFactory QuotationUoWFactory) UpdateLineCommandHandler {
	return UpdateLineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the patch atomically: a rejected field leaves the line and
// the stored quotation untouched.
func (h UpdateLineCommandHandler) Handle(ctx context.Context, command UpdateLineCommand) (*quotation.Quotation, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return editQuotation(ctx, h.uowFactory, command.QuotationID(), func(q *quotation.Quotation) error {
		_, err := q.UpdateLine(command.LineID(), command.Patch())
		return err
	})
}
