package commands

import (
	"context"
	"errors"
	"time"

	"tendering/internal/core/domain/model/quotation"
	"tendering/internal/core/ports"
	"tendering/internal/pkg/errs"
)

// CreateQuotationCommandHandler opens a quotation for a tender.
//
// A tender may have at most one open quotation; a second one fails with
// errs.DuplicateOpenQuotationError. Once any line of the tender has been
// resolved the tender no longer accepts quotations and the command fails with
// an errs.InvalidTransitionError. The new quotation holds only Pending lines,
// so the tender status is left as is.
//
// Example:
//
//	cmd, _ := NewCreateQuotationCommand(kernel.NewUUID(), tenderID, "COT-9/2024", "USD", "30 days")
//	q, err := handler.Handle(ctx, cmd)
type CreateQuotationCommandHandler struct {
	uowFactory QuotationUoWFactory
	now        func() time.Time
}

func NewCreateQuotationCommandHandler(uowFactory QuotationUoWFactory) CreateQuotationCommandHandler {
	return CreateQuotationCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle seeds one provisional line per requested item and records a
// quotation.created message in the same transaction.
func (h CreateQuotationCommandHandler) Handle(
	ctx context.Context,
	command CreateQuotationCommand,
) (*quotation.Quotation, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tenderRepo := uow.TenderRepository()
	quotationRepo := uow.QuotationRepository()
	outboxRepo := uow.OutboxRepository()

	t, err := tenderRepo.Get(ctx, command.TenderID())
	if err != nil {
		return nil, err
	}

	if err = t.AcceptsQuotations(); err != nil {
		return nil, err
	}

	existing, err := quotationRepo.GetOpenByTender(ctx, command.TenderID())
	switch {
	case err == nil:
		return nil, errs.NewDuplicateOpenQuotationError(t.ID().String(), existing.ID().String())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	now := h.now().UTC()
	q, err := quotation.NewQuotation(
		command.QuotationID(),
		t,
		command.Identifier(),
		command.Currency(),
		command.PaymentTerms(),
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = quotationRepo.Add(ctx, q); err != nil {
		return nil, err
	}

	msg, err := quotationMessage(ports.EventQuotationCreated, q, now)
	if err != nil {
		return nil, err
	}

	if err = outboxRepo.Add(ctx, msg); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return q, nil
}
