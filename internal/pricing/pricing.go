// Package pricing computes line and sale totals in exact decimal arithmetic.
//
// Every line total is rounded half-up to the currency minor unit (two
// decimal places) before it is summed, so a sale total always equals the
// sum of the totals printed on its lines.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MinorUnitPlaces is the number of decimal places of the currency minor unit.
const MinorUnitPlaces int32 = 2

var (
	ErrNegativePrice      = errors.New("unit price must not be negative")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrDiscountOutOfRange = errors.New("discount must be between 0 and 100")
)

var hundred = decimal.NewFromInt(100)

// Line is the pricing input of a single line item.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
	Discount  decimal.Decimal
}

// CheckLine validates the preconditions of LineTotal without computing it.
func CheckLine(unitPrice decimal.Decimal, quantity int, discountPercent decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativePrice, unitPrice)
	}
	if quantity < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(hundred) {
		return fmt.Errorf("%w: %s", ErrDiscountOutOfRange, discountPercent)
	}
	return nil
}

// LineTotal returns unitPrice * quantity * (1 - discountPercent/100),
// rounded half-up to the minor unit.
func LineTotal(unitPrice decimal.Decimal, quantity int, discountPercent decimal.Decimal) (decimal.Decimal, error) {
	if err := CheckLine(unitPrice, quantity, discountPercent); err != nil {
		return decimal.Zero, err
	}

	gross := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	net := gross.Mul(hundred.Sub(discountPercent)).Shift(-2)
	return RoundMinor(net), nil
}

// SaleTotal sums the line totals of lines. An empty slice totals 0.
func SaleTotal(lines []Line) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, l := range lines {
		lt, err := LineTotal(l.UnitPrice, l.Quantity, l.Discount)
		if err != nil {
			return decimal.Zero, fmt.Errorf("line %d: %w", i, err)
		}
		total = total.Add(lt)
	}
	return total, nil
}

// RoundMinor rounds half-up (away from zero) to the currency minor unit.
func RoundMinor(d decimal.Decimal) decimal.Decimal {
	return d.Round(MinorUnitPlaces)
}
