package commands

import (
	"errors"
	"strings"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/quotation"
	"tendering/internal/pkg/errs"
	"tendering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAddLineCommandIsNotConstructed = errors.New(
	"AddLineCommand must be created via NewAddLineCommand constructor",
)

// AddLineCommand appends a priced line to an open quotation. A nil product
// id adds an ad-hoc line.
type AddLineCommand struct {
	quotationID kernel.UUID
	spec        quotation.LineSpec

	guard guard.ConstructorGuard
}

func NewAddLineCommand(
	quotationID kernel.UUID,
	lineID kernel.UUID,
	productID *kernel.UUID,
	description string,
	quantity decimal.Decimal,
	unitPriceWithoutTax decimal.Decimal,
	taxPercentage decimal.Decimal,
	deliveryDays int,
) (AddLineCommand, error) {
	var descriptionErr error
	if strings.TrimSpace(description) == "" {
		descriptionErr = errs.NewValueIsRequiredError("description")
	}

	if err := errors.Join(
		quotationID.Validate(),
		lineID.Validate(),
		descriptionErr,
		kernel.ValidateQuantity("quantity", quantity),
		kernel.ValidateMoney("unit price without tax", unitPriceWithoutTax),
		kernel.ValidateTaxPercentage("tax percentage", taxPercentage),
	); err != nil {
		return AddLineCommand{}, err
	}

	return AddLineCommand{
		quotationID: quotationID,
		spec: quotation.LineSpec{
			ID:                  lineID,
			ProductID:           productID,
			Description:         description,
			Quantity:            quantity,
			UnitPriceWithoutTax: unitPriceWithoutTax,
			TaxPercentage:       taxPercentage,
			DeliveryDays:        deliveryDays,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c AddLineCommand) Validate() error {
	return c.guard.Validate(ErrAddLineCommandIsNotConstructed)
}

func (c AddLineCommand) QuotationID() kernel.UUID { return c.quotationID }
func (c AddLineCommand) Spec() quotation.LineSpec { return c.spec }
