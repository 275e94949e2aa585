package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a buyer that may carry debt up to MaxDebt when paying on account.
type Customer struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	CurrentDebt decimal.Decimal `json:"current_debt"`
	MaxDebt     decimal.Decimal `json:"max_debt"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (c Customer) Key() string { return c.ID }

// AtCreditLimit reports whether the customer has exhausted the credit limit.
func (c Customer) AtCreditLimit() bool {
	return c.CurrentDebt.GreaterThanOrEqual(c.MaxDebt)
}
