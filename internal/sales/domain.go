package sales

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"github.com/shopspring/decimal"

	"api_pos/internal/domain"
)

// SaleState is the position of a sale in the Draft -> Validated -> Committed
// lifecycle. Rejected is terminal.
type SaleState string

const (
	StateDraft     SaleState = "draft"
	StateValidated SaleState = "validated"
	StateCommitted SaleState = "committed"
	StateRejected  SaleState = "rejected"
)

// DraftLine is a requested line before prices are resolved.
type DraftLine struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Discount  decimal.Decimal `json:"discount"`
}

// Draft is a sale proposal collected by the UI. It has no effect on any
// entity until it is validated and committed.
type Draft struct {
	CustomerID    string               `json:"customer_id,omitempty"`
	Items         []DraftLine          `json:"items"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
}

// OnAccount reports whether the draft draws on the customer's credit.
func (d Draft) OnAccount() bool { return d.PaymentMethod == domain.PaymentAccount }

// ValidatedSale is the result of a successful validation: prices are
// resolved and the total is computed, but nothing has been written yet.
// Only Validate produces one, so Commit never sees a hand-built total.
type ValidatedSale struct {
	draft Draft
	items []domain.LineItem
	total decimal.Decimal
	state SaleState
}

// Draft returns the draft the sale was validated from.
func (v *ValidatedSale) Draft() Draft { return v.draft }

// Items returns a copy of the priced lines.
func (v *ValidatedSale) Items() []domain.LineItem { return slices.Clone(v.items) }

func (v *ValidatedSale) Total() decimal.Decimal { return v.total }

func (v *ValidatedSale) State() SaleState { return v.state }

func (v *ValidatedSale) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Draft Draft             `json:"draft"`
		Items []domain.LineItem `json:"items"`
		Total decimal.Decimal   `json:"total"`
		State SaleState         `json:"state"`
	}{v.draft, v.items, v.total, v.state})
}

// quantities returns the requested quantity per product, summed across
// lines, and the product IDs in first-seen order. A sum that does not fit
// in an int is an ErrInvalidLineItem.
func quantities(lines []domain.LineItem) (map[string]int, []string, error) {
	qty := make(map[string]int, len(lines))
	order := make([]string, 0, len(lines))
	for _, l := range lines {
		sum, seen := qty[l.ProductID]
		if !seen {
			order = append(order, l.ProductID)
		}
		if l.Quantity > math.MaxInt-sum {
			return nil, nil, fmt.Errorf("%w: total quantity of product %s overflows", ErrInvalidLineItem, l.ProductID)
		}
		qty[l.ProductID] = sum + l.Quantity
	}
	return qty, order, nil
}
