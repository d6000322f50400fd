package commands

import (
	"context"
	"time"

	"tendering/internal/core/domain/model/award"
	"tendering/internal/core/domain/model/quotation"
	"tendering/internal/core/domain/model/tender"
	"tendering/internal/core/ports"
)

// Observer is notified after each command. It must not block.
type Observer interface {
	ObserveCommand(command string, duration time.Duration, err error)
	ObserveAward(a *award.Award)
}

type nopObserver struct{}

func (nopObserver) ObserveCommand(string, time.Duration, error) {}
func (nopObserver) ObserveAward(*award.Award)                   {}

// Workflow bundles the command handlers behind one entry point for inbound
// adapters and reports every command to an Observer.
type Workflow struct {
	openTender      OpenTenderCommandHandler
	createQuotation CreateQuotationCommandHandler
	addLine         AddLineCommandHandler
	updateLine      UpdateLineCommandHandler
	removeLine      RemoveLineCommandHandler
	finalize        FinalizeQuotationCommandHandler
	awardLine       AwardLineCommandHandler
	rejectLine      RejectLineCommandHandler
	reconcile       ReconcileTenderStatusCommandHandler
	observer        Observer
}

// NewWorkflow wires every handler. A nil observer disables observation.
func NewWorkflow(
	tenderUoWFactory TenderUoWFactory,
	quotationUoWFactory QuotationUoWFactory,
	uowFactory UoWFactory,
	observer Observer,
) *Workflow {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Workflow{
		openTender:      NewOpenTenderCommandHandler(tenderUoWFactory),
		createQuotation: NewCreateQuotationCommandHandler(quotationUoWFactory),
		addLine:         NewAddLineCommandHandler(quotationUoWFactory),
		updateLine:      NewUpdateLineCommandHandler(quotationUoWFactory),
		removeLine:      NewRemoveLineCommandHandler(quotationUoWFactory),
		finalize:        NewFinalizeQuotationCommandHandler(quotationUoWFactory),
		awardLine:       NewAwardLineCommandHandler(uowFactory),
		rejectLine:      NewRejectLineCommandHandler(uowFactory),
		reconcile:       NewReconcileTenderStatusCommandHandler(quotationUoWFactory),
		observer:        observer,
	}
}

// NewUnitOfWorkWorkflow wires every handler to units of work created by factory.
func NewUnitOfWorkWorkflow(factory ports.UnitOfWorkFactory, observer Observer) *Workflow {
	return NewWorkflow(
		FuncTenderUoWFactory(func() TenderUoW { return factory.Create() }),
		FuncQuotationUoWFactory(func() QuotationUoW { return factory.Create() }),
		FuncUoWFactory(func() UoW { return factory.Create() }),
		observer,
	)
}

func (w *Workflow) OpenTender(ctx context.Context, cmd OpenTenderCommand) (t *tender.Tender, err error) {
	defer w.observe("OpenTender", time.Now(), &err)
	return w.openTender.Handle(ctx, cmd)
}

func (w *Workflow) CreateQuotation(ctx context.Context, cmd CreateQuotationCommand) (q *quotation.Quotation, err error) {
	defer w.observe("CreateQuotation", time.Now(), &err)
	return w.createQuotation.Handle(ctx, cmd)
}

func (w *Workflow) AddLine(ctx context.Context, cmd AddLineCommand) (q *quotation.Quotation, err error) {
	defer w.observe("AddLine", time.Now(), &err)
	return w.addLine.Handle(ctx, cmd)
}

func (w *Workflow) UpdateLine(ctx context.Context, cmd UpdateLineCommand) (q *quotation.Quotation, err error) {
	defer w.observe("UpdateLine", time.Now(), &err)
	return w.updateLine.Handle(ctx, cmd)
}

func (w *Workflow) RemoveLine(ctx context.Context, cmd RemoveLineCommand) (q *quotation.Quotation, err error) {
	defer w.observe("RemoveLine", time.Now(), &err)
	return w.removeLine.Handle(ctx, cmd)
}

func (w *Workflow) FinalizeQuotation(ctx context.Context, cmd FinalizeQuotationCommand) (q *quotation.Quotation, err error) {
	defer w.observe("FinalizeQuotation", time.Now(), &err)
	return w.finalize.Handle(ctx, cmd)
}

func (w *Workflow) AwardLine(ctx context.Context, cmd AwardLineCommand) (res ResolutionResult, err error) {
	defer w.observe("AwardLine", time.Now(), &err)
	res, err = w.awardLine.Handle(ctx, cmd)
	if err == nil {
		w.observer.ObserveAward(res.Award)
	}
	return res, err
}

func (w *Workflow) RejectLine(ctx context.Context, cmd RejectLineCommand) (res ResolutionResult, err error) {
	defer w.observe("RejectLine", time.Now(), &err)
	res, err = w.rejectLine.Handle(ctx, cmd)
	if err == nil {
		w.observer.ObserveAward(res.Award)
	}
	return res, err
}

func (w *Workflow) ReconcileTenderStatus(ctx context.Context, cmd ReconcileTenderStatusCommand) (changed bool, err error) {
	defer w.observe("ReconcileTenderStatus", time.Now(), &err)
	return w.reconcile.Handle(ctx, cmd)
}

func (w *Workflow) observe(command string, started time.Time, err *error) {
	w.observer.ObserveCommand(command, time.Since(started), *err)
}
