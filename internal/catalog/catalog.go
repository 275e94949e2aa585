// Package catalog manages products, customers and promotions. These are
// plain CRUD operations; sales never go through here.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"api_pos/internal/domain"
	"api_pos/internal/pricing"
	"api_pos/internal/storage"
)

// DefaultMaxDebt is the credit limit given to customers created without one.
var DefaultMaxDebt = decimal.NewFromInt(100000)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrStockWouldBeNegative = errors.New("stock would become negative")
)

// ProductInput carries the editable fields of a product.
type ProductInput struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// CustomerInput carries the editable fields of a customer. A nil MaxDebt
// means the configured default on create and no change on update.
type CustomerInput struct {
	Name    string           `json:"name"`
	Email   string           `json:"email"`
	Phone   string           `json:"phone"`
	MaxDebt *decimal.Decimal `json:"max_debt,omitempty"`
}

// PromotionInput carries the editable fields of a promotion.
type PromotionInput struct {
	Name        string               `json:"name"`
	Type        domain.PromotionType `json:"type"`
	Value       decimal.Decimal      `json:"value"`
	StartDate   time.Time            `json:"start_date"`
	EndDate     time.Time            `json:"end_date"`
	ProductIDs  []string             `json:"product_ids,omitempty"`
	MinQuantity int                  `json:"min_quantity,omitempty"`
	Active      bool                 `json:"active"`
}

type Service struct {
	products   storage.Repository[domain.Product]
	customers  storage.Repository[domain.Customer]
	promotions storage.Repository[domain.Promotion]
	logger     *zap.Logger

	// writeMu is held by every write, shared with the sale coordinator.
	writeMu sync.Locker

	defaultMaxDebt decimal.Decimal
	now            func() time.Time
	newID          func() string
}

// NewService creates a catalog Service. writeLock must be the lock the sale
// coordinator commits under (sales.Store.WriteLock); nil gives the service
// a private lock. A zero defaultMaxDebt falls back to DefaultMaxDebt.
func NewService(
	products storage.Repository[domain.Product],
	customers storage.Repository[domain.Customer],
	promotions storage.Repository[domain.Promotion],
	writeLock sync.Locker,
	logger *zap.Logger,
	defaultMaxDebt decimal.Decimal,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if writeLock == nil {
		writeLock = &sync.Mutex{}
	}
	if defaultMaxDebt.IsZero() {
		defaultMaxDebt = DefaultMaxDebt
	}
	return &Service{
		products:       products,
		customers:      customers,
		promotions:     promotions,
		logger:         logger,
		writeMu:        writeLock,
		defaultMaxDebt: defaultMaxDebt,
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validateProduct(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name is required")
	}
	if in.Price.IsNegative() {
		return invalid("price must not be negative")
	}
	if in.Stock < 0 {
		return invalid("stock must not be negative")
	}
	return nil
}

func (s *Service) ListProducts() []domain.Product {
	return s.products.List()
}

func (s *Service) GetProduct(id string) (domain.Product, error) {
	return s.products.Get(id)
}

func (s *Service) CreateProduct(in ProductInput) (domain.Product, error) {
	if err := validateProduct(in); err != nil {
		return domain.Product{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	now := s.now()
	p := domain.Product{
		ID:        s.newID(),
		Name:      strings.TrimSpace(in.Name),
		Price:     pricing.RoundMinor(in.Price),
		Stock:     in.Stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.products.Insert(p); err != nil {
		s.logger.Error("failed to save product", zap.String("product_id", p.ID), zap.Error(err))
		return domain.Product{}, err
	}
	s.logger.Info("product created", zap.String("product_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

// UpdateProduct overwrites name, price and stock of an existing product.
func (s *Service) UpdateProduct(id string, in ProductInput) (domain.Product, error) {
	if err := validateProduct(in); err != nil {
		return domain.Product{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	p, err := s.products.Get(id)
	if err != nil {
		return domain.Product{}, err
	}
	p.Name = strings.TrimSpace(in.Name)
	p.Price = pricing.RoundMinor(in.Price)
	p.Stock = in.Stock
	p.UpdatedAt = s.now()
	if err := s.products.Update(p); err != nil {
		return domain.Product{}, err
	}
	s.logger.Info("product updated", zap.String("product_id", p.ID))
	return p, nil
}

// AdjustStock adds delta (which may be negative) to the stock of a product.
func (s *Service) AdjustStock(id string, delta int) (domain.Product, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	p, err := s.products.Get(id)
	if err != nil {
		return domain.Product{}, err
	}
	if (delta < 0 && p.Stock < -delta) || (delta > 0 && p.Stock > math.MaxInt-delta) {
		return domain.Product{}, fmt.Errorf("%w: product %s has %d, delta %d", ErrStockWouldBeNegative, id, p.Stock, delta)
	}
	p.Stock += delta
	p.UpdatedAt = s.now()
	if err := s.products.Update(p); err != nil {
		return domain.Product{}, err
	}
	s.logger.Info("product stock adjusted",
		zap.String("product_id", p.ID), zap.Int("delta", delta), zap.Int("stock", p.Stock))
	return p, nil
}

func (s *Service) DeleteProduct(id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.products.Delete(id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}

func validateCustomer(in CustomerInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name is required")
	}
	if in.MaxDebt != nil && in.MaxDebt.IsNegative() {
		return invalid("max_debt must not be negative")
	}
	return nil
}

func (s *Service) ListCustomers() []domain.Customer {
	return s.customers.List()
}

func (s *Service) GetCustomer(id string) (domain.Customer, error) {
	return s.customers.Get(id)
}

// CreateCustomer registers a customer with no debt.
func (s *Service) CreateCustomer(in CustomerInput) (domain.Customer, error) {
	if err := validateCustomer(in); err != nil {
		return domain.Customer{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	maxDebt := s.defaultMaxDebt
	if in.MaxDebt != nil {
		maxDebt = pricing.RoundMinor(*in.MaxDebt)
	}
	now := s.now()
	c := domain.Customer{
		ID:          s.newID(),
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Phone:       strings.TrimSpace(in.Phone),
		CurrentDebt: decimal.Zero,
		MaxDebt:     maxDebt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.customers.Insert(c); err != nil {
		s.logger.Error("failed to save customer", zap.String("customer_id", c.ID), zap.Error(err))
		return domain.Customer{}, err
	}
	s.logger.Info("customer created", zap.String("customer_id", c.ID))
	return c, nil
}

// UpdateCustomer changes contact details and optionally the credit limit.
// CurrentDebt is owned by the credit ledger and is never touched here.
func (s *Service) UpdateCustomer(id string, in CustomerInput) (domain.Customer, error) {
	if err := validateCustomer(in); err != nil {
		return domain.Customer{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	c, err := s.customers.Get(id)
	if err != nil {
		return domain.Customer{}, err
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Email = strings.TrimSpace(in.Email)
	c.Phone = strings.TrimSpace(in.Phone)
	if in.MaxDebt != nil {
		c.MaxDebt = pricing.RoundMinor(*in.MaxDebt)
	}
	c.UpdatedAt = s.now()
	if err := s.customers.Update(c); err != nil {
		return domain.Customer{}, err
	}
	if c.AtCreditLimit() {
		s.logger.Warn("customer at credit limit after update",
			zap.String("customer_id", c.ID),
			zap.String("current_debt", c.CurrentDebt.String()),
			zap.String("max_debt", c.MaxDebt.String()),
		)
	}
	return c, nil
}

func (s *Service) DeleteCustomer(id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.customers.Delete(id); err != nil {
		return err
	}
	s.logger.Info("customer deleted", zap.String("customer_id", id))
	return nil
}

func validatePromotion(in PromotionInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name is required")
	}
	switch in.Type {
	case domain.PromotionPercentage:
		if in.Value.IsNegative() || in.Value.GreaterThan(decimal.NewFromInt(100)) {
			return invalid("percentage value must be between 0 and 100")
		}
	case domain.PromotionFixed:
		if in.Value.IsNegative() {
			return invalid("fixed value must not be negative")
		}
	default:
		return invalid("unknown promotion type %q", in.Type)
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return invalid("start_date and end_date are required")
	}
	if in.EndDate.Before(in.StartDate) {
		return invalid("end_date is before start_date")
	}
	if in.MinQuantity < 0 {
		return invalid("min_quantity must not be negative")
	}
	return nil
}

func (s *Service) ListPromotions() []domain.Promotion {
	return s.promotions.List()
}

func (s *Service) GetPromotion(id string) (domain.Promotion, error) {
	return s.promotions.Get(id)
}

func (s *Service) CreatePromotion(in PromotionInput) (domain.Promotion, error) {
	if err := validatePromotion(in); err != nil {
		return domain.Promotion{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	p := promotionFromInput(s.newID(), in)
	if err := s.promotions.Insert(p); err != nil {
		s.logger.Error("failed to save promotion", zap.String("promotion_id", p.ID), zap.Error(err))
		return domain.Promotion{}, err
	}
	s.logger.Info("promotion created", zap.String("promotion_id", p.ID), zap.String("type", string(p.Type)))
	return p, nil
}

func (s *Service) UpdatePromotion(id string, in PromotionInput) (domain.Promotion, error) {
	if err := validatePromotion(in); err != nil {
		return domain.Promotion{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := s.promotions.Get(id); err != nil {
		return domain.Promotion{}, err
	}
	p := promotionFromInput(id, in)
	if err := s.promotions.Update(p); err != nil {
		return domain.Promotion{}, err
	}
	s.logger.Info("promotion updated", zap.String("promotion_id", p.ID), zap.Bool("active", p.Active))
	return p, nil
}

func (s *Service) DeletePromotion(id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.promotions.Delete(id); err != nil {
		return err
	}
	s.logger.Info("promotion deleted", zap.String("promotion_id", id))
	return nil
}

// ApplicablePromotions lists the promotions that would apply to quantity
// units of productID at the given time.
func (s *Service) ApplicablePromotions(productID string, quantity int, at time.Time) ([]domain.Promotion, error) {
	if productID == "" {
		return nil, invalid("product_id is required")
	}
	if quantity < 1 {
		return nil, invalid("quantity must be at least 1")
	}
	if _, err := s.products.Get(productID); err != nil {
		return nil, err
	}
	return pricing.ApplicablePromotions(s.promotions.List(), productID, quantity, at), nil
}

func promotionFromInput(id string, in PromotionInput) domain.Promotion {
	productIDs := make([]string, len(in.ProductIDs))
	copy(productIDs, in.ProductIDs)
	return domain.Promotion{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Type:        in.Type,
		Value:       in.Value,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		ProductIDs:  productIDs,
		MinQuantity: in.MinQuantity,
		Active:      in.Active,
	}
}
