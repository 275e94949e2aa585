package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"api_pos/internal/domain"
)

// Seed fills empty repositories with a small demo catalog. Repositories
// that already hold data are left alone.
func (s *Service) Seed() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	now := s.now()

	if s.products.Len() == 0 {
		for _, p := range []struct {
			name  string
			price string
			stock int
		}{
			{"Coffee beans 1kg", "18.90", 25},
			{"Whole milk 1L", "1.35", 60},
			{"Sourdough loaf", "4.20", 12},
			{"Sparkling water 500ml", "0.95", 80},
			{"Dark chocolate bar", "2.60", 4},
			{"Green tea 20 bags", "3.10", 3},
		} {
			if err := s.products.Insert(domain.Product{
				ID:        s.newID(),
				Name:      p.name,
				Price:     decimal.RequireFromString(p.price),
				Stock:     p.stock,
				CreatedAt: now,
				UpdatedAt: now,
			}); err != nil {
				return fmt.Errorf("seed product %s: %w", p.name, err)
			}
		}
	}

	if s.customers.Len() == 0 {
		for _, c := range []struct {
			name, email, phone string
			debt, maxDebt      string
		}{
			{"Ana Torres", "ana@example.com", "555-0101", "0", "500"},
			{"Bruno Lima", "bruno@example.com", "555-0102", "120.50", "300"},
			{"Carla Mendes", "carla@example.com", "555-0103", "300", "300"},
		} {
			if err := s.customers.Insert(domain.Customer{
				ID:          s.newID(),
				Name:        c.name,
				Email:       c.email,
				Phone:       c.phone,
				CurrentDebt: decimal.RequireFromString(c.debt),
				MaxDebt:     decimal.RequireFromString(c.maxDebt),
				CreatedAt:   now,
				UpdatedAt:   now,
			}); err != nil {
				return fmt.Errorf("seed customer %s: %w", c.name, err)
			}
		}
	}

	if s.promotions.Len() == 0 {
		if err := s.promotions.Insert(domain.Promotion{
			ID:        s.newID(),
			Name:      "Weekly 10% off",
			Type:      domain.PromotionPercentage,
			Value:     decimal.NewFromInt(10),
			StartDate: now.Truncate(24 * time.Hour),
			EndDate:   now.Truncate(24 * time.Hour).Add(7 * 24 * time.Hour),
			Active:    true,
		}); err != nil {
			return fmt.Errorf("seed promotion: %w", err)
		}
	}

	s.logger.Info("demo data seeded",
		zap.Int("products", s.products.Len()),
		zap.Int("customers", s.customers.Len()),
		zap.Int("promotions", s.promotions.Len()),
	)
	return nil
}
