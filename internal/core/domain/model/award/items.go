package award

import (
	"errors"
	"fmt"
	"strings"

	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DefaultCompetitorTaxID is recorded when a lost line names no competitor tax id.
const DefaultCompetitorTaxID = "N/A"

// AwardedItem is the awarded part of one quotation line.
type AwardedItem struct {
	lineID              kernel.UUID
	productID           *kernel.UUID
	description         string
	quantity            decimal.Decimal
	lineQuantity        decimal.Decimal
	unitPriceWithoutTax decimal.Decimal
	taxPercentage       decimal.Decimal
}

// NewAwardedItem requires 0 < quantity <= lineQuantity.
func NewAwardedItem(
	lineID kernel.UUID,
	productID *kernel.UUID,
	description string,
	quantity decimal.Decimal,
	lineQuantity decimal.Decimal,
	unitPriceWithoutTax decimal.Decimal,
	taxPercentage decimal.Decimal,
) (AwardedItem, error) {
	if err := errors.Join(
		lineID.Validate(),
		kernel.ValidateQuantity("awarded quantity", quantity),
		kernel.ValidateQuantity("line quantity", lineQuantity),
		kernel.ValidateMoney("unit price without tax", unitPriceWithoutTax),
		kernel.ValidateTaxPercentage("tax percentage", taxPercentage),
	); err != nil {
		return AwardedItem{}, err
	}
	if quantity.GreaterThan(lineQuantity) {
		return AwardedItem{}, errs.NewValueIsOutOfRangeError("awarded quantity", quantity, "0 (exclusive)", lineQuantity)
	}

	return AwardedItem{
		lineID:              lineID,
		productID:           productID,
		description:         description,
		quantity:            quantity,
		lineQuantity:        lineQuantity,
		unitPriceWithoutTax: unitPriceWithoutTax,
		taxPercentage:       taxPercentage,
	}, nil
}

func (i AwardedItem) LineID() kernel.UUID                  { return i.lineID }
func (i AwardedItem) ProductID() *kernel.UUID              { return i.productID }
func (i AwardedItem) Description() string                  { return i.description }
func (i AwardedItem) Quantity() decimal.Decimal            { return i.quantity }
func (i AwardedItem) LineQuantity() decimal.Decimal        { return i.lineQuantity }
func (i AwardedItem) UnitPriceWithoutTax() decimal.Decimal { return i.unitPriceWithoutTax }
func (i AwardedItem) TaxPercentage() decimal.Decimal       { return i.taxPercentage }

// IsFull reports whether the item covers its whole line.
func (i AwardedItem) IsFull() bool {
	return i.quantity.Equal(i.lineQuantity)
}

func (i AwardedItem) TotalWithoutTax() decimal.Decimal {
	return kernel.LineTotal(i.unitPriceWithoutTax, i.quantity)
}

func (i AwardedItem) TotalWithTax() decimal.Decimal {
	return kernel.LineTotal(kernel.PriceWithTax(i.unitPriceWithoutTax, i.taxPercentage), i.quantity)
}

// NonAwardedItem records a line lost to a competitor.
type NonAwardedItem struct {
	lineID          kernel.UUID
	productID       *kernel.UUID
	description     string
	competitorName  string
	competitorTaxID string
	competitorPrice decimal.Decimal
}

// NewNonAwardedItem requires a competitor name and a non-negative competitor
// price. An empty tax id becomes DefaultCompetitorTaxID.
func NewNonAwardedItem(
	lineID kernel.UUID,
	productID *kernel.UUID,
	description string,
	competitorName string,
	competitorTaxID string,
	competitorPrice decimal.Decimal,
) (NonAwardedItem, error) {
	competitorName = strings.TrimSpace(competitorName)
	competitorTaxID = strings.TrimSpace(competitorTaxID)

	var nameErr error
	if competitorName == "" {
		nameErr = errs.NewValueIsRequiredError("competitor name")
	}
	if err := errors.Join(
		lineID.Validate(),
		nameErr,
		kernel.ValidateMoney("competitor price", competitorPrice),
	); err != nil {
		return NonAwardedItem{}, err
	}
	if competitorTaxID == "" {
		competitorTaxID = DefaultCompetitorTaxID
	}

	return NonAwardedItem{
		lineID:          lineID,
		productID:       productID,
		description:     description,
		competitorName:  competitorName,
		competitorTaxID: competitorTaxID,
		competitorPrice: competitorPrice,
	}, nil
}

func (i NonAwardedItem) LineID() kernel.UUID              { return i.lineID }
func (i NonAwardedItem) ProductID() *kernel.UUID          { return i.productID }
func (i NonAwardedItem) Description() string              { return i.description }
func (i NonAwardedItem) CompetitorName() string           { return i.competitorName }
func (i NonAwardedItem) CompetitorTaxID() string          { return i.competitorTaxID }
func (i NonAwardedItem) CompetitorPrice() decimal.Decimal { return i.competitorPrice }

func (i NonAwardedItem) String() string {
	return fmt.Sprintf("line %s lost to %s (%s) at %s", i.lineID, i.competitorName, i.competitorTaxID, i.competitorPrice)
}
