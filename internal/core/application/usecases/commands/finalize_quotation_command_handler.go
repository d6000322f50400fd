package commands

import (
	"context"
	"time"

	"tendering/internal/core/domain/model/quotation"
	"tendering/internal/core/ports"
)

// FinalizeQuotationCommandHandler moves a quotation from Open to Finalized
// and records a quotation.finalized event.
//
// Example:
//
//	cmd, _ := NewFinalizeQuotationCommand(quotationID)
//	q, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    log.Println("quotation is already finalized")
//	case errors.Is(err, quotation.ErrLinesAreRequired):
//	    log.Println("quotation has no lines")
//	case err != nil:
//	    log.Printf("finalize failed: %v", err)
//	default:
//	    log.Printf("quotation %s is %s", q.ID(), q.State())
//	}
type FinalizeQuotationCommandHandler struct {
	uowFactory QuotationUoWFactory
	now        func() time.Time
}

func NewFinalizeQuotationCommandHandler(uowFactory QuotationUoWFactory) FinalizeQuotationCommandHandler {
	return FinalizeQuotationCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle locks the quotation, finalizes it and stores it together with the
// outbox message. Provisional lines may be finalized as they are.
func (h FinalizeQuotationCommandHandler) Handle(
	ctx context.Context,
	command FinalizeQuotationCommand,
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

	quotationRepo := uow.QuotationRepository()
	outboxRepo := uow.OutboxRepository()

	q, err := quotationRepo.Get(ctx, command.QuotationID())
	if err != nil {
		return nil, err
	}

	if err = q.Finalize(); err != nil {
		return nil, err
	}

	if err = quotationRepo.Update(ctx, q); err != nil {
		return nil, err
	}

	msg, err := quotationMessage(ports.EventQuotationFinalized, q, h.now().UTC())
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
