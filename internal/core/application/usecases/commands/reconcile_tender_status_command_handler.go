package commands

import (
	"context"
	"errors"
	"time"

	"tendering/internal/core/domain/services"
	"tendering/internal/pkg/errs"
)

// ReconcileTenderStatusCommandHandler re-derives a tender status. It reports
// whether the stored status had to be corrected.
//
// Example:
//
//	cmd, _ := NewReconcileTenderStatusCommand(tenderID)
//	changed, err := handler.Handle(ctx, cmd)
//	if err == nil && changed {
//	    log.Printf("tender %s status repaired", tenderID)
//	}
type ReconcileTenderStatusCommandHandler struct {
	uowFactory QuotationUoWFactory
	deriver    services.TenderStatusDeriver
	now        func() time.Time
}

func NewReconcileTenderStatusCommandHandler(uowFactory QuotationUoWFactory) ReconcileTenderStatusCommandHandler {
	return ReconcileTenderStatusCommandHandler{
		uowFactory: uowFactory,
		deriver:    services.NewTenderStatusDeriver(),
		now:        time.Now,
	}
}

// Handle derives the status from the latest quotation of the tender, which is
// the only one whose lines can be resolved. A tender without quotations is
// Pending. The tender is written, with a tender.status_changed message, only
// when the status differs.
func (h ReconcileTenderStatusCommandHandler) Handle(ctx context.Context, command ReconcileTenderStatusCommand) (bool, error) {
	if err := command.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tenderRepo := uow.TenderRepository()
	quotationRepo := uow.QuotationRepository()
	outboxRepo := uow.OutboxRepository()

	t, err := tenderRepo.Get(ctx, command.TenderID())
	if err != nil {
		return false, err
	}

	q, err := quotationRepo.GetLatestByTender(ctx, t.ID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		q = nil
	case err != nil:
		return false, err
	}

	changed, err := h.deriver.Refresh(t, q)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}

	if err = tenderRepo.Update(ctx, t); err != nil {
		return false, err
	}

	msg, err := tenderStatusChangedMessage(t, h.now().UTC())
	if err != nil {
		return false, err
	}

	if err = outboxRepo.Add(ctx, msg); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
