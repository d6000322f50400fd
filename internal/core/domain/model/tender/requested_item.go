package tender

import (
	"errors"
	"strings"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/pkg/errs"
	"tendering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrRequestedItemIsNotConstructed = errors.New("RequestedItem must be created via NewRequestedItem constructor")

// RequestedItem is one product requested by a tender. It is a value object:
// once the tender is opened its items never change.
type RequestedItem struct {
	id          kernel.UUID
	productID   kernel.UUID
	description string
	quantity    decimal.Decimal
	guard       guard.ConstructorGuard
}

// NewRequestedItem validates and creates a requested item. The quantity must
// be strictly positive.
func NewRequestedItem(
	id kernel.UUID,
	productID kernel.UUID,
	description string,
	quantity decimal.Decimal,
) (RequestedItem, error) {
	item := RequestedItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setDescription(description),
		item.setQuantity(quantity),
	); err != nil {
		return RequestedItem{}, err
	}

	return item, nil
}

func (i RequestedItem) Validate() error {
	return i.guard.Validate(ErrRequestedItemIsNotConstructed)
}

func (i RequestedItem) ID() kernel.UUID {
	return i.id
}

func (i RequestedItem) ProductID() kernel.UUID {
	return i.productID
}

func (i RequestedItem) Description() string {
	return i.description
}

func (i RequestedItem) Quantity() decimal.Decimal {
	return i.quantity
}

func (i *RequestedItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("requested item id", err)
	}
	i.id = id
	return nil
}

func (i *RequestedItem) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("product id", err)
	}
	i.productID = productID
	return nil
}

func (i *RequestedItem) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	i.description = description
	return nil
}

func (i *RequestedItem) setQuantity(quantity decimal.Decimal) error {
	if err := kernel.ValidateQuantity("requested quantity", quantity); err != nil {
		return err
	}
	i.quantity = quantity
	return nil
}
