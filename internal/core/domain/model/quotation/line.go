package quotation

import (
	"errors"
	"fmt"
	"strings"

	"tendering/internal/core/domain/model/award"
	"tendering/internal/core/domain/model/kernel"
	"tendering/internal/pkg/errs"
	"tendering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrLineIsNotConstructed = errors.New("Line must be created via Quotation.AddLine or RestoreLine")

// LineSpec describes a line to add to an open quotation. The currency is
// inherited from the quotation.
type LineSpec struct {
	ID                  kernel.UUID
	ProductID           *kernel.UUID
	Description         string
	Quantity            decimal.Decimal
	UnitPriceWithoutTax decimal.Decimal
	TaxPercentage       decimal.Decimal
	DeliveryDays        int
}

// LinePatch lists the fields to change on a line. Nil fields are left as is.
type LinePatch struct {
	Description         *string
	Quantity            *decimal.Decimal
	UnitPriceWithoutTax *decimal.Decimal
	TaxPercentage       *decimal.Decimal
	DeliveryDays        *int
}

func (p LinePatch) IsEmpty() bool {
	return p.Description == nil && p.Quantity == nil && p.UnitPriceWithoutTax == nil &&
		p.TaxPercentage == nil && p.DeliveryDays == nil
}

// Line is one priced entry of a quotation, together with its award sub-state.
//
// Invariants:
//   - quantity > 0, unit price >= 0, tax percentage in [0, 100], delivery days >= 0
//   - unitPriceWithTax is derived from unitPriceWithoutTax and taxPercentage
//   - awardedQuantity equals quantity when Awarded, lies strictly between 0
//     and quantity when PartiallyAwarded, and is zero otherwise
type Line struct {
	id                  kernel.UUID
	productID           *kernel.UUID
	description         string
	quantity            decimal.Decimal
	unitPriceWithoutTax decimal.Decimal
	taxPercentage       decimal.Decimal
	unitPriceWithTax    decimal.Decimal
	currency            string
	deliveryDays        int
	provisional         bool
	awardState          AwardState
	awardedQuantity     decimal.Decimal
	guard               guard.ConstructorGuard
}

func newLine(spec LineSpec, currency string, provisional bool) (*Line, error) {
	l := &Line{
		currency:        currency,
		provisional:     provisional,
		awardState:      Pending,
		awardedQuantity: decimal.Zero,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		l.setID(spec.ID),
		l.setProductID(spec.ProductID),
		l.setDescription(spec.Description),
		l.setQuantity(spec.Quantity),
		l.setUnitPriceWithoutTax(spec.UnitPriceWithoutTax),
		l.setTaxPercentage(spec.TaxPercentage),
		l.setDeliveryDays(spec.DeliveryDays),
	); err != nil {
		return nil, err
	}
	l.reprice()

	return l, nil
}

// RestoreLine reconstructs a line from persistent storage and checks that the
// stored award state and awarded quantity agree.
func RestoreLine(
	spec LineSpec,
	currency string,
	provisional bool,
	awardState AwardState,
	awardedQuantity decimal.Decimal,
) (*Line, error) {
	l, err := newLine(spec, currency, provisional)
	if err != nil {
		return nil, err
	}
	if err := awardState.Validate(); err != nil {
		return nil, err
	}
	if err := validateAwardedQuantity(awardState, awardedQuantity, l.quantity); err != nil {
		return nil, err
	}
	l.awardState = awardState
	l.awardedQuantity = awardedQuantity
	return l, nil
}

func (l *Line) Validate() error {
	if l == nil {
		return ErrLineIsNotConstructed
	}
	return l.guard.Validate(ErrLineIsNotConstructed)
}

func (l *Line) ID() kernel.UUID                      { return l.id }
func (l *Line) ProductID() *kernel.UUID              { return l.productID }
func (l *Line) Description() string                  { return l.description }
func (l *Line) Quantity() decimal.Decimal            { return l.quantity }
func (l *Line) UnitPriceWithoutTax() decimal.Decimal { return l.unitPriceWithoutTax }
func (l *Line) TaxPercentage() decimal.Decimal       { return l.taxPercentage }
func (l *Line) UnitPriceWithTax() decimal.Decimal    { return l.unitPriceWithTax }
func (l *Line) Currency() string                     { return l.currency }
func (l *Line) DeliveryDays() int                    { return l.deliveryDays }
func (l *Line) AwardState() AwardState               { return l.awardState }
func (l *Line) AwardedQuantity() decimal.Decimal     { return l.awardedQuantity }

// IsProvisional reports whether the line still carries the placeholder price
// it was seeded with.
func (l *Line) IsProvisional() bool {
	return l.provisional
}

func (l *Line) TotalWithoutTax() decimal.Decimal {
	return kernel.LineTotal(l.unitPriceWithoutTax, l.quantity)
}

func (l *Line) TotalWithTax() decimal.Decimal {
	return kernel.LineTotal(l.unitPriceWithTax, l.quantity)
}

func (l *Line) TaxTotal() decimal.Decimal {
	return kernel.LineTotal(kernel.TaxAmount(l.unitPriceWithoutTax, l.taxPercentage), l.quantity)
}

func (l *Line) spec() LineSpec {
	return LineSpec{
		ID:                  l.id,
		ProductID:           l.productID,
		Description:         l.description,
		Quantity:            l.quantity,
		UnitPriceWithoutTax: l.unitPriceWithoutTax,
		TaxPercentage:       l.taxPercentage,
		DeliveryDays:        l.deliveryDays,
	}
}

// apply validates the whole patch on a copy before touching the line, so a
// rejected patch leaves the line unchanged.
func (l *Line) apply(patch LinePatch) error {
	next := *l
	var errList []error
	if patch.Description != nil {
		errList = append(errList, next.setDescription(*patch.Description))
	}
	if patch.Quantity != nil {
		errList = append(errList, next.setQuantity(*patch.Quantity))
	}
	if patch.UnitPriceWithoutTax != nil {
		errList = append(errList, next.setUnitPriceWithoutTax(*patch.UnitPriceWithoutTax))
	}
	if patch.TaxPercentage != nil {
		errList = append(errList, next.setTaxPercentage(*patch.TaxPercentage))
	}
	if patch.DeliveryDays != nil {
		errList = append(errList, next.setDeliveryDays(*patch.DeliveryDays))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	if patch.UnitPriceWithoutTax != nil || patch.TaxPercentage != nil {
		next.provisional = false
	}
	next.reprice()
	*l = next
	return nil
}

func (l *Line) resolve(decision Decision) (Resolution, error) {
	if l.awardState != Pending {
		return Resolution{}, errs.NewInvalidTransitionError("quotation line", l.awardState.String(), actionOf(decision))
	}

	switch d := decision.(type) {
	case AwardFull:
		return l.awardFull()
	case AwardPartial:
		return l.awardPartial(d.Quantity)
	case Reject:
		return l.reject(d.Competitor)
	default:
		return Resolution{}, errs.NewValueIsRequiredError("decision")
	}
}

func (l *Line) awardFull() (Resolution, error) {
	item, err := award.NewAwardedItem(l.id, l.productID, l.description,
		l.quantity, l.quantity, l.unitPriceWithoutTax, l.taxPercentage)
	if err != nil {
		return Resolution{}, err
	}

	l.awardState = Awarded
	l.awardedQuantity = l.quantity
	return Resolution{State: Awarded, Awarded: &item}, nil
}

func (l *Line) awardPartial(quantity decimal.Decimal) (Resolution, error) {
	if err := kernel.ValidateQuantity("awarded quantity", quantity); err != nil {
		return Resolution{}, err
	}
	if quantity.GreaterThan(l.quantity) {
		return Resolution{}, errs.NewValueIsOutOfRangeError("awarded quantity", quantity, "0 (exclusive)", l.quantity)
	}
	if quantity.Equal(l.quantity) {
		return l.awardFull()
	}

	item, err := award.NewAwardedItem(l.id, l.productID, l.description,
		quantity, l.quantity, l.unitPriceWithoutTax, l.taxPercentage)
	if err != nil {
		return Resolution{}, err
	}

	l.awardState = PartiallyAwarded
	l.awardedQuantity = quantity
	return Resolution{State: PartiallyAwarded, Awarded: &item}, nil
}

func (l *Line) reject(competitor Competitor) (Resolution, error) {
	item, err := award.NewNonAwardedItem(l.id, l.productID, l.description,
		competitor.Name, competitor.TaxID, competitor.Price)
	if err != nil {
		return Resolution{}, err
	}

	l.awardState = NotAwarded
	l.awardedQuantity = decimal.Zero
	return Resolution{State: NotAwarded, NonAwarded: &item}, nil
}

func (l *Line) reprice() {
	l.unitPriceWithTax = kernel.PriceWithTax(l.unitPriceWithoutTax, l.taxPercentage)
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("line id", err)
	}
	l.id = id
	return nil
}

func (l *Line) setProductID(productID *kernel.UUID) error {
	if productID != nil {
		if err := productID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("product id", err)
		}
		id := *productID
		productID = &id
	}
	l.productID = productID
	return nil
}

func (l *Line) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	l.description = description
	return nil
}

func (l *Line) setQuantity(quantity decimal.Decimal) error {
	if err := kernel.ValidateQuantity("quantity", quantity); err != nil {
		return err
	}
	l.quantity = quantity
	return nil
}

func (l *Line) setUnitPriceWithoutTax(price decimal.Decimal) error {
	if err := kernel.ValidateMoney("unit price without tax", price); err != nil {
		return err
	}
	l.unitPriceWithoutTax = price
	return nil
}

func (l *Line) setTaxPercentage(taxPercentage decimal.Decimal) error {
	if err := kernel.ValidateTaxPercentage("tax percentage", taxPercentage); err != nil {
		return err
	}
	l.taxPercentage = taxPercentage
	return nil
}

func (l *Line) setDeliveryDays(days int) error {
	if days < 0 {
		return errs.NewValueIsOutOfRangeError("delivery days", days, 0, "unbounded")
	}
	l.deliveryDays = days
	return nil
}

func validateAwardedQuantity(state AwardState, awarded, quantity decimal.Decimal) error {
	var ok bool
	switch state {
	case Awarded:
		ok = awarded.Equal(quantity)
	case PartiallyAwarded:
		ok = awarded.IsPositive() && awarded.LessThan(quantity)
	default:
		ok = awarded.IsZero()
	}
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause("awarded quantity",
			fmt.Errorf("%s does not match state %s for line quantity %s", awarded, state, quantity))
	}
	return nil
}

func actionOf(decision Decision) string {
	switch decision.(type) {
	case AwardFull:
		return "award"
	case AwardPartial:
		return "partially award"
	case Reject:
		return "reject"
	default:
		return "resolve"
	}
}
