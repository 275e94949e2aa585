package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents an item that can be sold at the counter.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (p Product) Key() string { return p.ID }
