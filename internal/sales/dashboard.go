package sales

import (
	"github.com/shopspring/decimal"

	"api_pos/internal/domain"
)

// Summary is the read-only projection shown on the dashboard.
type Summary struct {
	TotalProducts     int               `json:"total_products"`
	TotalStock        int               `json:"total_stock"`
	TotalCustomers    int               `json:"total_customers"`
	TotalSales        decimal.Decimal   `json:"total_sales"`
	LowStock          []domain.Product  `json:"low_stock"`
	CustomersWithDebt []domain.Customer `json:"customers_with_debt"`
}

// Dashboard aggregates the current store state.
func (s *Service) Dashboard() Summary {
	return Summarize(s.store, s.lowStockThreshold)
}

// Summarize builds a Summary from store. A product is low on stock when
// its stock is strictly below lowStockThreshold.
func Summarize(store *Store, lowStockThreshold int) Summary {
	products := store.Products().List()
	customers := store.Customers().List()

	sum := Summary{
		TotalProducts:     len(products),
		TotalCustomers:    len(customers),
		TotalSales:        decimal.Zero,
		LowStock:          make([]domain.Product, 0),
		CustomersWithDebt: make([]domain.Customer, 0),
	}

	for _, p := range products {
		sum.TotalStock += p.Stock
		if p.Stock < lowStockThreshold {
			sum.LowStock = append(sum.LowStock, p)
		}
	}
	for _, c := range customers {
		if c.CurrentDebt.IsPositive() {
			sum.CustomersWithDebt = append(sum.CustomersWithDebt, c)
		}
	}
	for _, sale := range store.Sales().List() {
		sum.TotalSales = sum.TotalSales.Add(sale.Total)
	}
	return sum
}
