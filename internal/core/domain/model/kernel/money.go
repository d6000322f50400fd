package kernel

import (
	"fmt"
	"regexp"

	"tendering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Scale is the number of decimal places quantities, prices and tax
// percentages are stored with. Values needing more places are rejected rather
// than rounded.
const Scale = 4

var (
	hundred       = decimal.NewFromInt(100)
	currencyCodeR = regexp.MustCompile(`^[A-Z]{3}$`)
)

// PriceWithTax returns priceWithoutTax * (1 + taxPercentage/100). It is always
// computed from the base values so repeated edits cannot accumulate drift.
func PriceWithTax(priceWithoutTax, taxPercentage decimal.Decimal) decimal.Decimal {
	return priceWithoutTax.Add(TaxAmount(priceWithoutTax, taxPercentage))
}

// TaxAmount returns the tax (IVA) part of a price.
func TaxAmount(priceWithoutTax, taxPercentage decimal.Decimal) decimal.Decimal {
	return priceWithoutTax.Mul(taxPercentage).Div(hundred)
}

func LineTotal(unitPrice, quantity decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(quantity)
}

// ValidateQuantity requires a strictly positive quantity of at most Scale
// decimal places.
func ValidateQuantity(paramName string, quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return errs.NewValueIsOutOfRangeError(paramName, quantity, "0 (exclusive)", "unbounded")
	}
	return validateScale(paramName, quantity)
}

// ValidateMoney requires a non-negative amount of at most Scale decimal places.
func ValidateMoney(paramName string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsOutOfRangeError(paramName, amount, 0, "unbounded")
	}
	return validateScale(paramName, amount)
}

// ValidateTaxPercentage requires a percentage within [0, 100].
func ValidateTaxPercentage(paramName string, taxPercentage decimal.Decimal) error {
	if taxPercentage.IsNegative() || taxPercentage.GreaterThan(hundred) {
		return errs.NewValueIsOutOfRangeError(paramName, taxPercentage, 0, 100)
	}
	return validateScale(paramName, taxPercentage)
}

// validateScale accepts trailing zeros beyond Scale ("1.50000") but no
// significant digit past it.
func validateScale(paramName string, value decimal.Decimal) error {
	if !value.Round(Scale).Equal(value) {
		return errs.NewValueIsInvalidErrorWithCause(paramName,
			fmt.Errorf("%s has more than %d decimal places", value, Scale))
	}
	return nil
}

// ValidateCurrency requires an upper-case ISO-4217 alphabetic code.
func ValidateCurrency(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	if !currencyCodeR.MatchString(code) {
		return errs.NewValueIsInvalidError("currency")
	}
	return nil
}
