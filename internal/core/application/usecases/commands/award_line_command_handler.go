package commands

import (
	"context"
)

// AwardLineCommandHandler awards a line and appends the resulting award.
// A line that is no longer Pending fails with errs.ErrInvalidTransition, so
// the loser of two concurrent decisions on the same line never overwrites
// the winner.
//
// Example:
//
//	handler := NewAwardLineCommandHandler(uowFactory)
//	cmd, _ := NewAwardLinePartiallyCommand(quotationID, lineID, decimal.NewFromInt(4), time.Now())
//	res, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    log.Println("line already resolved or quotation not finalized")
//	case errors.Is(err, errs.ErrValueIsOutOfRange):
//	    log.Println("awarded quantity exceeds the line")
//	case err != nil:
//	    log.Printf("award failed: %v", err)
//	default:
//	    log.Printf("award %s is %s", res.Award.ID(), res.Award.Status())
//	}
type AwardLineCommandHandler struct {
	resolver lineResolver
}

// NewAwardLineCommandHandler creates a handler that resolves lines through a
// full unit of work (quotation, tender, award and outbox repositories).
func NewAwardLineCommandHandler(uowFactory UoWFactory) AwardLineCommandHandler {
	return AwardLineCommandHandler{
		resolver: newLineResolver(uowFactory),
	}
}

// Handle resolves the line with AwardFull or AwardPartial, builds a one-line
// award, re-derives the tender status and commits everything together.
// Nothing is persisted when any step fails.
func (h AwardLineCommandHandler) Handle(ctx context.Context, command AwardLineCommand) (ResolutionResult, error) {
	if err := command.Validate(); err != nil {
		return ResolutionResult{}, err
	}

	return h.resolver.resolve(ctx, command.QuotationID(), command.LineID(), command.Decision(), command.AdjudicationDate())
}
