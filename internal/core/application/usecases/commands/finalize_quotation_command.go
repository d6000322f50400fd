package commands

import (
	"errors"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/pkg/guard"
)

var ErrFinalizeQuotationCommandIsNotConstructed = errors.New(
	"FinalizeQuotationCommand must be created via NewFinalizeQuotationCommand constructor",
)

// FinalizeQuotationCommand locks the pricing of a quotation. There is no
// command to reopen it.
type FinalizeQuotationCommand struct {
	quotationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewFinalizeQuotationCommand(quotationID kernel.UUID) (FinalizeQuotationCommand, error) {
	if err := quotationID.Validate(); err != nil {
		return FinalizeQuotationCommand{}, err
	}

	return FinalizeQuotationCommand{
		quotationID: quotationID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c FinalizeQuotationCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeQuotationCommandIsNotConstructed)
}

func (c FinalizeQuotationCommand) QuotationID() kernel.UUID {
	return c.quotationID
}
