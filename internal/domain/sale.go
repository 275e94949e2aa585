package domain

import (
	"bytes"
	"encoding/json"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCredit   PaymentMethod = "credit"
	PaymentDebit    PaymentMethod = "debit"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentAccount  PaymentMethod = "account"
)

// Valid reports whether m is one of the accepted payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCredit, PaymentDebit, PaymentTransfer, PaymentAccount:
		return true
	}
	return false
}

type SaleStatus string

const (
	SaleCompleted SaleStatus = "completed"
	SaleReturned  SaleStatus = "returned"
	SaleModified  SaleStatus = "modified"
)

func (s SaleStatus) Valid() bool {
	switch s {
	case SaleCompleted, SaleReturned, SaleModified:
		return true
	}
	return false
}

// LineItem is one product entry of a committed sale. UnitPrice is the
// product price at the moment of the sale.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

// Sale represents a committed sales transaction.
type Sale struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id,omitempty"`
	Items         []LineItem      `json:"items"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Status        SaleStatus      `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (s Sale) Key() string { return s.ID }

// Clone returns a copy of s that shares no line items with it.
func (s Sale) Clone() Sale {
	s.Items = slices.Clone(s.Items)
	return s
}

// WalkIn reports whether the sale has no customer attached.
func (s Sale) WalkIn() bool { return s.CustomerID == "" }

type SaleChangeType string

const (
	ChangeReturn        SaleChangeType = "return"
	ChangeExchange      SaleChangeType = "exchange"
	ChangePaymentMethod SaleChangeType = "payment_method"
)

// SaleChange is an audit record of a later change to a sale (return,
// exchange or payment method correction).
type SaleChange struct {
	ID           string          `json:"id"`
	SaleID       string          `json:"sale_id"`
	Type         SaleChangeType  `json:"type"`
	PreviousData json.RawMessage `json:"previous_data"`
	NewData      json.RawMessage `json:"new_data"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (c SaleChange) Key() string { return c.ID }

func (c SaleChange) Clone() SaleChange {
	c.PreviousData = bytes.Clone(c.PreviousData)
	c.NewData = bytes.Clone(c.NewData)
	return c
}
