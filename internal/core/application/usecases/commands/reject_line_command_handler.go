package commands

import (
	"context"

	"tendering/internal/core/domain/model/quotation"
)

// RejectLineCommandHandler records a lost line. The competitor data lands on
// a non-awarded item of a new award, never on the line itself.
//
// Example:
//
//	handler := NewRejectLineCommandHandler(uowFactory)
//	competitor := quotation.Competitor{Name: "Droguería Central", TaxID: "21-555-1", Price: decimal.NewFromInt(95)}
//	cmd, _ := NewRejectLineCommand(quotationID, lineID, competitor, time.Now())
//	res, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	log.Printf("tender is now %s", res.Tender.Status())
type RejectLineCommandHandler struct {
	resolver lineResolver
}

// NewRejectLineCommandHandler creates a handler sharing the award flow of
// AwardLineCommandHandler.
func NewRejectLineCommandHandler(uowFactory UoWFactory) RejectLineCommandHandler {
	return RejectLineCommandHandler{
		resolver: newLineResolver(uowFactory),
	}
}

// Handle marks the line NotAwarded and appends a Partial award carrying the
// competitor as its only non-awarded item.
func (h RejectLineCommandHandler) Handle(ctx context.Context, command RejectLineCommand) (ResolutionResult, error) {
	if err := command.Validate(); err != nil {
		return ResolutionResult{}, err
	}

	decision := quotation.Reject{Competitor: command.Competitor()}
	return h.resolver.resolve(ctx, command.QuotationID(), command.LineID(), decision, command.AdjudicationDate())
}
