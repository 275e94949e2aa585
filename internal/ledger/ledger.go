// Package ledger enforces customer credit limits for on-account sales.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"api_pos/internal/domain"
)

var (
	ErrCreditLimitExceeded = errors.New("credit limit exceeded")
	ErrNegativeAmount      = errors.New("charge amount must not be negative")
)

// CanChargeAccount reports whether amount fits under the customer's credit
// limit, i.e. CurrentDebt + amount <= MaxDebt.
func CanChargeAccount(customer domain.Customer, amount decimal.Decimal) bool {
	return customer.CurrentDebt.Add(amount).LessThanOrEqual(customer.MaxDebt)
}

// ApplyCharge returns a copy of customer with amount added to its debt.
// The input is never modified.
func ApplyCharge(customer domain.Customer, amount decimal.Decimal, now time.Time) (domain.Customer, error) {
	if amount.IsNegative() {
		return customer, fmt.Errorf("%w: %s", ErrNegativeAmount, amount)
	}
	if !CanChargeAccount(customer, amount) {
		return customer, fmt.Errorf("%w: customer %s owes %s, limit %s, charge %s",
			ErrCreditLimitExceeded, customer.ID, customer.CurrentDebt, customer.MaxDebt, amount)
	}

	customer.CurrentDebt = customer.CurrentDebt.Add(amount)
	customer.UpdatedAt = now
	return customer, nil
}

// AvailableCredit is how much more the customer may charge on account.
func AvailableCredit(customer domain.Customer) decimal.Decimal {
	left := customer.MaxDebt.Sub(customer.CurrentDebt)
	if left.IsNegative() {
		return decimal.Zero
	}
	return left
}
