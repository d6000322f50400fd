package commands

import (
	"errors"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/pkg/guard"
)

var ErrReconcileTenderStatusCommandIsNotConstructed = errors.New(
	"ReconcileTenderStatusCommand must be created via NewReconcileTenderStatusCommand constructor",
)

// ReconcileTenderStatusCommand recomputes the status of a tender from its
// latest quotation, repairing a status that drifted from the line states.
type ReconcileTenderStatusCommand struct {
	tenderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewReconcileTenderStatusCommand(tenderID kernel.UUID) (ReconcileTenderStatusCommand, error) {
	if err := tenderID.Validate(); err != nil {
		return ReconcileTenderStatusCommand{}, err
	}

	return ReconcileTenderStatusCommand{
		tenderID: tenderID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ReconcileTenderStatusCommand) Validate() error {
	return c.guard.Validate(ErrReconcileTenderStatusCommandIsNotConstructed)
}

func (c ReconcileTenderStatusCommand) TenderID() kernel.UUID {
	return c.tenderID
}
