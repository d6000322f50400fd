package commands

import (
	"context"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/quotation"
)

// AddLineCommandHandler adds a line to an open quotation. A finalized
// quotation fails with errs.ErrQuotationLocked.
type AddLineCommandHandler struct {
	uowFactory QuotationUoWFactory
}

func NewAddLineCommandHandler(uowFactory QuotationUoWFactory) AddLineCommandHandler {
	return AddLineCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AddLineCommandHandler) Handle(ctx context.Context, command AddLineCommand) (*quotation.Quotation, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return editQuotation(ctx, h.uowFactory, command.QuotationID(), func(q *quotation.Quotation) error {
		_, err := q.AddLine(command.Spec())
		return err
	})
}

// editQuotation runs edit against a quotation inside its own transaction and
// persists the result. Edits never change award states, so the tender status
// is left untouched.
func editQuotation(
	ctx context.Context,
	uowFactory QuotationUoWFactory,
	quotationID kernel.UUID,
	edit func(q *quotation.Quotation) error,
) (*quotation.Quotation, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	quotationRepo := uow.QuotationRepository()

	q, err := quotationRepo.Get(ctx, quotationID)
	if err != nil {
		return nil, err
	}

	if err = edit(q); err != nil {
		return nil, err
	}

	if err = quotationRepo.Update(ctx, q); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return q, nil
}
