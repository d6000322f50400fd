package commands

import (
	"errors"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/quotation"
	"tendering/internal/pkg/errs"
	"tendering/internal/pkg/guard"
)

var ErrUpdateLineCommandIsNotConstructed = errors.New(
	"UpdateLineCommand must be created via NewUpdateLineCommand constructor",
)

// UpdateLineCommand changes fields of a line of an open quotation. Only the
// non-nil fields of the patch are changed.
type UpdateLineCommand struct {
	quotationID kernel.UUID
	lineID      kernel.UUID
	patch       quotation.LinePatch

	guard guard.ConstructorGuard
}

func NewUpdateLineCommand(
	quotationID kernel.UUID,
	lineID kernel.UUID,
	patch quotation.LinePatch,
) (UpdateLineCommand, error) {
	var patchErr error
	if patch.IsEmpty() {
		patchErr = errs.NewValueIsRequiredError("line patch")
	}

	if err := errors.Join(
		quotationID.Validate(),
		lineID.Validate(),
		patchErr,
	); err != nil {
		return UpdateLineCommand{}, err
	}

	return UpdateLineCommand{
		quotationID: quotationID,
		lineID:      lineID,
		patch:       patch,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateLineCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLineCommandIsNotConstructed)
}

func (c UpdateLineCommand) QuotationID() kernel.UUID   { return c.quotationID }
func (c UpdateLineCommand) LineID() kernel.UUID        { return c.lineID }
func (c UpdateLineCommand) Patch() quotation.LinePatch { return c.patch }
