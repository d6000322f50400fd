package commands_test

import (
	"testing"

	"tendering/internal/core/application/usecases/commands"
	"tendering/internal/core/domain/model/quotation"
	"tendering/internal/core/domain/model/tender"
	"tendering/internal/core/ports"
	"tendering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReconcileTenderStatusCommandHandler_Handle_RepairsDrift(t *testing.T) {
	ctx := t.Context()
	tn := newTender(t, 10)
	q := finalizedQuotation(t, tn)
	_, err := q.ResolveLine(q.Lines()[0].ID(), quotation.AwardFull{})
	require.NoError(t, err)
	cmd, err := commands.NewReconcileTenderStatusCommand(tn.ID())
	require.NoError(t, err)

	tenderRepo := new(MockTenderRepository)
	quotationRepo := new(MockQuotationRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TenderRepository").Return(tenderRepo).Once(),
		uow.On("QuotationRepository").Return(quotationRepo).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		tenderRepo.On("Get", ctx, tn.ID()).Return(tn, nil).Once(),
		quotationRepo.On("GetLatestByTender", ctx, tn.ID()).Return(q, nil).Once(),
		tenderRepo.On("Update", ctx, tn).Return(nil).Once(),
		outboxRepo.On("Add", ctx, eventTypes(ports.EventTenderStatusChange)).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockQuotationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcileTenderStatusCommandHandler(factory)
	changed, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, tender.TotalAward, tn.Status())
	tenderRepo.AssertExpectations(t)
	quotationRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReconcileTenderStatusCommandHandler_Handle_NoQuotationKeepsPending(t *testing.T) {
	ctx := t.Context()
	tn := newTender(t, 10)
	cmd, err := commands.NewReconcileTenderStatusCommand(tn.ID())
	require.NoError(t, err)

	tenderRepo := new(MockTenderRepository)
	quotationRepo := new(MockQuotationRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TenderRepository").Return(tenderRepo).Once(),
		uow.On("QuotationRepository").Return(quotationRepo).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		tenderRepo.On("Get", ctx, tn.ID()).Return(tn, nil).Once(),
		quotationRepo.On("GetLatestByTender", ctx, tn.ID()).Return(nil, errs.NewObjectNotFoundError("tenderID", tn.ID())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockQuotationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcileTenderStatusCommandHandler(factory)
	changed, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, tender.Pending, tn.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
	tenderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
