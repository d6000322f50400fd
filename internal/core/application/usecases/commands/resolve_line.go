package commands

import (
	"context"
	"time"

	"tendering/internal/core/domain/model/award"
	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/quotation"
	"tendering/internal/core/domain/model/tender"
	"tendering/internal/core/domain/services"
	"tendering/internal/core/ports"
	"tendering/internal/pkg/errs"
)

// ResolutionResult is returned by the award and reject handlers.
type ResolutionResult struct {
	Quotation *quotation.Quotation
	Line      *quotation.Line
	Award     *award.Award
	Tender    *tender.Tender
}

// lineResolver runs the shared part of AwardLine and RejectLine: resolve the
// line, build the award, derive the tender status, and persist the quotation,
// award, tender and outbox messages in one transaction.
//
// Only the latest quotation of a tender can be resolved. A superseded
// quotation fails with an errs.InvalidTransitionError, so the tender status
// is always derived from the quotation that holds its resolved lines.
type lineResolver struct {
	uowFactory UoWFactory
	aggregator services.AwardAggregator
	deriver    services.TenderStatusDeriver
	now        func() time.Time
}

func newLineResolver(uowFactory UoWFactory) lineResolver {
	return lineResolver{
		uowFactory: uowFactory,
		aggregator: services.NewAwardAggregator(),
		deriver:    services.NewTenderStatusDeriver(),
		now:        time.Now,
	}
}

func (r lineResolver) resolve(
	ctx context.Context,
	quotationID kernel.UUID,
	lineID kernel.UUID,
	decision quotation.Decision,
	adjudicationDate time.Time,
) (ResolutionResult, error) {
	uow := r.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ResolutionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tenderRepo := uow.TenderRepository()
	quotationRepo := uow.QuotationRepository()
	awardRepo := uow.AwardRepository()
	outboxRepo := uow.OutboxRepository()

	q, err := quotationRepo.Get(ctx, quotationID)
	if err != nil {
		return ResolutionResult{}, err
	}

	t, err := tenderRepo.Get(ctx, q.TenderID())
	if err != nil {
		return ResolutionResult{}, err
	}

	latest, err := quotationRepo.GetLatestByTender(ctx, t.ID())
	if err != nil {
		return ResolutionResult{}, err
	}
	if !latest.ID().IsEqual(q.ID()) {
		return ResolutionResult{}, errs.NewInvalidTransitionError("quotation", "Superseded", "resolve a line of")
	}

	res, err := q.ResolveLine(lineID, decision)
	if err != nil {
		return ResolutionResult{}, err
	}

	a, err := r.aggregator.FromResolution(kernel.NewUUID(), q, res, adjudicationDate)
	if err != nil {
		return ResolutionResult{}, err
	}

	changed, err := r.deriver.Refresh(t, q)
	if err != nil {
		return ResolutionResult{}, err
	}

	if err = quotationRepo.Update(ctx, q); err != nil {
		return ResolutionResult{}, err
	}

	if err = awardRepo.Add(ctx, a); err != nil {
		return ResolutionResult{}, err
	}

	now := r.now().UTC()
	messages := make([]ports.OutboxMessage, 0, 2)
	msg, err := awardCreatedMessage(a, now)
	if err != nil {
		return ResolutionResult{}, err
	}
	messages = append(messages, msg)

	if changed {
		if err = tenderRepo.Update(ctx, t); err != nil {
			return ResolutionResult{}, err
		}
		if msg, err = tenderStatusChangedMessage(t, now); err != nil {
			return ResolutionResult{}, err
		}
		messages = append(messages, msg)
	}

	if err = outboxRepo.Add(ctx, messages...); err != nil {
		return ResolutionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ResolutionResult{}, err
	}

	line, err := q.Line(lineID)
	if err != nil {
		return ResolutionResult{}, err
	}

	return ResolutionResult{
		Quotation: q,
		Line:      line,
		Award:     a,
		Tender:    t,
	}, nil
}
