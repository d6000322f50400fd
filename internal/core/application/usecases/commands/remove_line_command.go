package commands

import (
	"errors"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/pkg/guard"
)

var ErrRemoveLineCommandIsNotConstructed = errors.New(
	"RemoveLineCommand must be created via NewRemoveLineCommand constructor",
)

type RemoveLineCommand struct {
	quotationID kernel.UUID
	lineID      kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveLineCommand(quotationID, lineID kernel.UUID) (RemoveLineCommand, error) {
	if err := errors.Join(quotationID.Validate(), lineID.Validate()); err != nil {
		return RemoveLineCommand{}, err
	}

	return RemoveLineCommand{
		quotationID: quotationID,
		lineID:      lineID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveLineCommand) Validate() error {
	return c.guard.Validate(ErrRemoveLineCommandIsNotConstructed)
}

func (c RemoveLineCommand) QuotationID() kernel.UUID { return c.quotationID }
func (c RemoveLineCommand) LineID() kernel.UUID      { return c.lineID }
