package commands

import (
	"errors"
	"strings"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/pkg/errs"
	"tendering/internal/pkg/guard"
)

var ErrCreateQuotationCommandIsNotConstructed = errors.New(
	"CreateQuotationCommand must be created via NewCreateQuotationCommand constructor",
)

// CreateQuotationCommand opens a quotation for a tender, seeding one
// provisional line per requested item.
type CreateQuotationCommand struct {
	quotationID  kernel.UUID
	tenderID     kernel.UUID
	identifier   string
	currency     string
	paymentTerms string

	guard guard.ConstructorGuard
}

func NewCreateQuotationCommand(
	quotationID kernel.UUID,
	tenderID kernel.UUID,
	identifier string,
	currency string,
	paymentTerms string,
) (CreateQuotationCommand, error) {
	cmd := CreateQuotationCommand{
		paymentTerms: paymentTerms,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setQuotationID(quotationID),
		cmd.setTenderID(tenderID),
		cmd.setIdentifier(identifier),
		cmd.setCurrency(currency),
	); err != nil {
		return CreateQuotationCommand{}, err
	}

	return cmd, nil
}

func (c CreateQuotationCommand) Validate() error {
	return c.guard.Validate(ErrCreateQuotationCommandIsNotConstructed)
}

func (c CreateQuotationCommand) QuotationID() kernel.UUID { return c.quotationID }
func (c CreateQuotationCommand) TenderID() kernel.UUID    { return c.tenderID }
func (c CreateQuotationCommand) Identifier() string       { return c.identifier }
func (c CreateQuotationCommand) Currency() string         { return c.currency }
func (c CreateQuotationCommand) PaymentTerms() string     { return c.paymentTerms }

func (c *CreateQuotationCommand) setQuotationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.quotationID = id
	return nil
}

func (c *CreateQuotationCommand) setTenderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.tenderID = id
	return nil
}

func (c *CreateQuotationCommand) setIdentifier(identifier string) error {
	if strings.TrimSpace(identifier) == "" {
		return errs.NewValueIsRequiredError("identifier")
	}
	c.identifier = identifier
	return nil
}

func (c *CreateQuotationCommand) setCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if err := kernel.ValidateCurrency(currency); err != nil {
		return err
	}
	c.currency = currency
	return nil
}
