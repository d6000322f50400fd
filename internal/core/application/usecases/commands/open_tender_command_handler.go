package commands

import (
	"context"
	"time"

	"tendering/internal/core/domain/model/tender"
)

// OpenTenderCommandHandler creates tenders in Pending status and records a
// tender.opened event.
type OpenTenderCommandHandler struct {
	uowFactory TenderUoWFactory
	now        func() time.Time
}

func NewOpenTenderCommandHandler(uowFactory TenderUoWFactory) OpenTenderCommandHandler {
	return OpenTenderCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

func (h OpenTenderCommandHandler) Handle(ctx context.Context, command OpenTenderCommand) (*tender.Tender, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	t, err := tender.NewTender(
		command.TenderID(),
		command.CallReference(),
		command.InternalReference(),
		command.StartsAt(),
		command.Deadline(),
		command.RequesterID(),
		command.Items(),
	)
	if err != nil {
		return nil, err
	}

	msg, err := tenderOpenedMessage(t, h.now().UTC())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.TenderRepository().Add(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.OutboxRepository().Add(ctx, msg); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return t, nil
}
