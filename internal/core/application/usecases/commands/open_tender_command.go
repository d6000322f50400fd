package commands

import (
	"errors"
	"time"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/core/domain/model/tender"
	"tendering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrOpenTenderCommandIsNotConstructed = errors.New(
	"OpenTenderCommand must be created via NewOpenTenderCommand constructor",
)

// RequestedItemInput is one requested product of a tender to open.
type RequestedItemInput struct {
	ProductID   kernel.UUID
	Description string
	Quantity    decimal.Decimal
}

// OpenTenderCommand registers a new call for bids.
//
// Example:
//
//	cmd, err := NewOpenTenderCommand(kernel.NewUUID(), "LIC-2024-001", "INT-7",
//	    startsAt, deadline, requesterID,
//	    []RequestedItemInput{{ProductID: productID, Description: "Gauze", Quantity: decimal.NewFromInt(10)}})
type OpenTenderCommand struct {
	tenderID          kernel.UUID
	callReference     string
	internalReference string
	startsAt          time.Time
	deadline          time.Time
	requesterID       kernel.UUID
	items             []tender.RequestedItem

	guard guard.ConstructorGuard
}

// NewOpenTenderCommand validates the input by building the requested items
// up front; tender-level rules are checked again by the aggregate.
func NewOpenTenderCommand(
	tenderID kernel.UUID,
	callReference string,
	internalReference string,
	startsAt time.Time,
	deadline time.Time,
	requesterID kernel.UUID,
	items []RequestedItemInput,
) (OpenTenderCommand, error) {
	cmd := OpenTenderCommand{
		callReference:     callReference,
		internalReference: internalReference,
		startsAt:          startsAt,
		deadline:          deadline,
		guard:             guard.NewConstructorGuard(),
	}

	errList := []error{
		cmd.setTenderID(tenderID),
		cmd.setRequesterID(requesterID),
	}
	for _, input := range items {
		item, err := tender.NewRequestedItem(kernel.NewUUID(), input.ProductID, input.Description, input.Quantity)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		cmd.items = append(cmd.items, item)
	}
	if len(items) == 0 {
		errList = append(errList, tender.ErrItemsAreRequired)
	}

	if err := errors.Join(errList...); err != nil {
		return OpenTenderCommand{}, err
	}
	return cmd, nil
}

func (c OpenTenderCommand) Validate() error {
	return c.guard.Validate(ErrOpenTenderCommandIsNotConstructed)
}

func (c OpenTenderCommand) TenderID() kernel.UUID         { return c.tenderID }
func (c OpenTenderCommand) CallReference() string         { return c.callReference }
func (c OpenTenderCommand) InternalReference() string     { return c.internalReference }
func (c OpenTenderCommand) StartsAt() time.Time           { return c.startsAt }
func (c OpenTenderCommand) Deadline() time.Time           { return c.deadline }
func (c OpenTenderCommand) RequesterID() kernel.UUID      { return c.requesterID }
func (c OpenTenderCommand) Items() []tender.RequestedItem { return c.items }

func (c *OpenTenderCommand) setTenderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.tenderID = id
	return nil
}

func (c *OpenTenderCommand) setRequesterID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.requesterID = id
	return nil
}
