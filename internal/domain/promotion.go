package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type PromotionType string

const (
	PromotionPercentage PromotionType = "percentage"
	PromotionFixed      PromotionType = "fixed"
)

// Promotion describes a discount rule. ProductIDs and MinQuantity are
// optional restrictions; an empty ProductIDs applies to every product.
type Promotion struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        PromotionType   `json:"type"`
	Value       decimal.Decimal `json:"value"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	ProductIDs  []string        `json:"product_ids,omitempty"`
	MinQuantity int             `json:"min_quantity,omitempty"`
	Active      bool            `json:"active"`
}

func (p Promotion) Key() string { return p.ID }

func (p Promotion) Clone() Promotion {
	p.ProductIDs = slices.Clone(p.ProductIDs)
	return p
}
