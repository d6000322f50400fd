package commands

import (
	"errors"
	"strings"
	"time"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/quotation"
	"tendering/internal/pkg/errs"
	"tendering/internal/pkg/guard"
)

var ErrRejectLineCommandIsNotConstructed = errors.New(
	"RejectLineCommand must be created via NewRejectLineCommand constructor",
)

// RejectLineCommand records a line of a finalized quotation as lost to a
// competitor. An empty competitor tax id is stored as "N/A".
type RejectLineCommand struct {
	quotationID      kernel.UUID
	lineID           kernel.UUID
	competitor       quotation.Competitor
	adjudicationDate time.Time

	guard guard.ConstructorGuard
}

func NewRejectLineCommand(
	quotationID kernel.UUID,
	lineID kernel.UUID,
	competitor quotation.Competitor,
	adjudicationDate time.Time,
) (RejectLineCommand, error) {
	var nameErr error
	if strings.TrimSpace(competitor.Name) == "" {
		nameErr = errs.NewValueIsRequiredError("competitor name")
	}

	if err := errors.Join(
		quotationID.Validate(),
		lineID.Validate(),
		nameErr,
		kernel.ValidateMoney("competitor price", competitor.Price),
		validateAdjudicationDate(adjudicationDate),
	); err != nil {
		return RejectLineCommand{}, err
	}

	return RejectLineCommand{
		quotationID:      quotationID,
		lineID:           lineID,
		competitor:       competitor,
		adjudicationDate: adjudicationDate,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c RejectLineCommand) Validate() error {
	return c.guard.Validate(ErrRejectLineCommandIsNotConstructed)
}

func (c RejectLineCommand) QuotationID() kernel.UUID         { return c.quotationID }
func (c RejectLineCommand) LineID() kernel.UUID              { return c.lineID }
func (c RejectLineCommand) Competitor() quotation.Competitor { return c.competitor }
func (c RejectLineCommand) AdjudicationDate() time.Time      { return c.adjudicationDate }
