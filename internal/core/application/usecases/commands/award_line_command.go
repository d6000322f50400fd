package commands

import (
	"errors"
	"time"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/quotation"
	"tendering/internal/pkg/errs"
	"tendering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAwardLineCommandIsNotConstructed = errors.New(
	"AwardLineCommand must be created via NewAwardLineCommand or NewAwardLinePartiallyCommand constructor",
)

// AwardLineCommand awards a line of a finalized quotation, in full or
// partially.
//
// Example:
//
//	full, _ := NewAwardLineCommand(quotationID, lineID, time.Now())
//	partial, _ := NewAwardLinePartiallyCommand(quotationID, lineID, decimal.NewFromInt(4), time.Now())
type AwardLineCommand struct {
	quotationID      kernel.UUID
	lineID           kernel.UUID
	decision         quotation.Decision
	adjudicationDate time.Time

	guard guard.ConstructorGuard
}

func NewAwardLineCommand(quotationID, lineID kernel.UUID, adjudicationDate time.Time) (AwardLineCommand, error) {
	return newAwardLineCommand(quotationID, lineID, quotation.AwardFull{}, adjudicationDate)
}

// NewAwardLinePartiallyCommand requires a positive quantity. Whether the
// quantity fits the line is checked when the line is resolved.
func NewAwardLinePartiallyCommand(
	quotationID kernel.UUID,
	lineID kernel.UUID,
	quantity decimal.Decimal,
	adjudicationDate time.Time,
) (AwardLineCommand, error) {
	if err := kernel.ValidateQuantity("awarded quantity", quantity); err != nil {
		return AwardLineCommand{}, err
	}
	return newAwardLineCommand(quotationID, lineID, quotation.AwardPartial{Quantity: quantity}, adjudicationDate)
}

func newAwardLineCommand(
	quotationID kernel.UUID,
	lineID kernel.UUID,
	decision quotation.Decision,
	adjudicationDate time.Time,
) (AwardLineCommand, error) {
	if err := errors.Join(
		quotationID.Validate(),
		lineID.Validate(),
		validateAdjudicationDate(adjudicationDate),
	); err != nil {
		return AwardLineCommand{}, err
	}

	return AwardLineCommand{
		quotationID:      quotationID,
		lineID:           lineID,
		decision:         decision,
		adjudicationDate: adjudicationDate,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c AwardLineCommand) Validate() error {
	return c.guard.Validate(ErrAwardLineCommandIsNotConstructed)
}

func (c AwardLineCommand) QuotationID() kernel.UUID     { return c.quotationID }
func (c AwardLineCommand) LineID() kernel.UUID          { return c.lineID }
func (c AwardLineCommand) Decision() quotation.Decision { return c.decision }
func (c AwardLineCommand) AdjudicationDate() time.Time  { return c.adjudicationDate }

func validateAdjudicationDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("adjudication date")
	}
	return nil
}
