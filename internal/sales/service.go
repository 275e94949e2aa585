package sales

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"api_pos/internal/domain"
	"api_pos/internal/ledger"
	"api_pos/internal/pricing"
	"api_pos/internal/storage"
)

// DefaultLowStockThreshold is the stock level below which a product is
// reported as low on the dashboard.
const DefaultLowStockThreshold = 5

// Service coordinates sale transactions over a Store. Every sale-related
// mutation goes through Commit; validation never writes.
type Service struct {
	store  *Store
	logger *zap.Logger

	lowStockThreshold int
	now               func() time.Time
	newID             func() string
}

// Option configures a Service.
type Option func(*Service)

// WithLowStockThreshold overrides DefaultLowStockThreshold.
func WithLowStockThreshold(n int) Option {
	return func(s *Service) { s.lowStockThreshold = n }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new Service.
func NewService(store *Store, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		store:             store,
		logger:            logger,
		lowStockThreshold: DefaultLowStockThreshold,
		now:               time.Now,
		newID:             uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the store the service operates on.
func (s *Service) Store() *Store { return s.store }

// SubmitSale validates and commits draft as one unit. On failure no
// product, customer or sale is changed.
func (s *Service) SubmitSale(draft Draft) (*domain.Sale, error) {
	mu := s.store.WriteLock()
	mu.Lock()
	defer mu.Unlock()

	v, err := s.validate(draft)
	if err != nil {
		s.logger.Warn("sale rejected at validation",
			zap.String("customer_id", draft.CustomerID),
			zap.String("payment_method", string(draft.PaymentMethod)),
			zap.Int("lines", len(draft.Items)),
			zap.Error(err),
		)
		return nil, err
	}
	return s.commit(v)
}

// Validate checks draft against the current store state and prices it.
func (s *Service) Validate(draft Draft) (*ValidatedSale, error) {
	mu := s.store.WriteLock()
	mu.Lock()
	defer mu.Unlock()
	return s.validate(draft)
}

// Commit writes a validated sale: stock is decremented, the customer is
// charged for on-account sales and the sale is inserted. Stock and credit
// are re-checked first; drift since validation yields
// ErrConcurrentModification.
func (s *Service) Commit(v *ValidatedSale) (*domain.Sale, error) {
	mu := s.store.WriteLock()
	mu.Lock()
	defer mu.Unlock()
	return s.commit(v)
}

func (s *Service) validate(draft Draft) (*ValidatedSale, error) {
	if !draft.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, draft.PaymentMethod)
	}
	items := make([]domain.LineItem, 0, len(draft.Items))
	for i, line := range draft.Items {
		if line.ProductID == "" {
			return nil, fmt.Errorf("%w: line %d: product_id is required", ErrInvalidLineItem, i)
		}
		if err := pricing.CheckLine(decimal.Zero, line.Quantity, line.Discount); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidLineItem, i, err)
		}
		items = append(items, domain.LineItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Discount:  line.Discount,
		})
	}
	requested, order, err := quantities(items)
	if err != nil {
		return nil, err
	}

	products := make(map[string]domain.Product, len(draft.Items))
	for _, line := range draft.Items {
		if _, ok := products[line.ProductID]; ok {
			continue
		}
		p, err := s.store.Products().Get(line.ProductID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
			}
			return nil, fmt.Errorf("failed to read product %s: %w", line.ProductID, err)
		}
		products[line.ProductID] = p
	}

	for _, id := range order {
		if p := products[id]; requested[id] > p.Stock {
			return nil, fmt.Errorf("%w: product %s requested %d, available %d",
				ErrInsufficientStock, id, requested[id], p.Stock)
		}
	}

	if len(draft.Items) == 0 {
		return nil, ErrEmptySale
	}

	if draft.OnAccount() && draft.CustomerID == "" {
		return nil, ErrCustomerRequired
	}
	var customer domain.Customer
	if draft.CustomerID != "" {
		c, err := s.store.Customers().Get(draft.CustomerID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, draft.CustomerID)
			}
			return nil, fmt.Errorf("failed to read customer %s: %w", draft.CustomerID, err)
		}
		customer = c
	}

	total := decimal.Zero
	for i := range items {
		price := products[items[i].ProductID].Price
		lineTotal, err := pricing.LineTotal(price, items[i].Quantity, items[i].Discount)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidLineItem, i, err)
		}
		items[i].UnitPrice = price
		items[i].Total = lineTotal
		total = total.Add(lineTotal)
	}

	if draft.OnAccount() && !ledger.CanChargeAccount(customer, total) {
		return nil, fmt.Errorf("%w: customer %s owes %s, limit %s, sale total %s",
			ErrCreditLimitExceeded, customer.ID, customer.CurrentDebt, customer.MaxDebt, total)
	}

	draft.Items = slices.Clone(draft.Items)
	return &ValidatedSale{
		draft: draft,
		items: items,
		total: total,
		state: StateValidated,
	}, nil
}

// pendingWrites holds every record a commit will write, together with the
// values they replace so a partial apply can be undone.
type pendingWrites struct {
	products         []domain.Product
	originalProducts []domain.Product
	customer         *domain.Customer
	originalCustomer domain.Customer
	sale             domain.Sale
}

func (s *Service) commit(v *ValidatedSale) (*domain.Sale, error) {
	if v == nil {
		return nil, ErrNotValidated
	}
	switch v.state {
	case StateValidated:
	case StateCommitted:
		return nil, ErrAlreadyCommitted
	default:
		return nil, fmt.Errorf("%w: state %q", ErrNotValidated, v.state)
	}

	writes, err := s.prepare(v)
	if err != nil {
		v.state = StateRejected
		s.logger.Warn("sale rejected at commit",
			zap.String("customer_id", v.draft.CustomerID),
			zap.String("total", v.total.String()),
			zap.Error(err),
		)
		return nil, err
	}

	if err := s.apply(writes); err != nil {
		v.state = StateRejected
		s.logger.Error("failed to apply sale", zap.String("sale_id", writes.sale.ID), zap.Error(err))
		return nil, err
	}

	v.state = StateCommitted
	sale := writes.sale
	s.logger.Info("sale committed",
		zap.String("sale_id", sale.ID),
		zap.String("customer_id", sale.CustomerID),
		zap.String("payment_method", string(sale.PaymentMethod)),
		zap.String("total", sale.Total.String()),
	)
	return &sale, nil
}

// prepare re-reads the store and builds the buffered writes. It does not
// mutate anything.
func (s *Service) prepare(v *ValidatedSale) (*pendingWrites, error) {
	now := s.now()
	w := &pendingWrites{}

	requested, order, err := quantities(v.items)
	if err != nil {
		return nil, err
	}
	for _, id := range order {
		p, err := s.store.Products().Get(id)
		if err != nil {
			return nil, fmt.Errorf("%w: product %s: %w", ErrConcurrentModification, id, err)
		}
		if p.Stock < requested[id] {
			return nil, fmt.Errorf("%w: product %s stock is %d, sale needs %d",
				ErrConcurrentModification, id, p.Stock, requested[id])
		}
		w.originalProducts = append(w.originalProducts, p)
		p.Stock -= requested[id]
		p.UpdatedAt = now
		w.products = append(w.products, p)
	}

	if v.draft.OnAccount() {
		c, err := s.store.Customers().Get(v.draft.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("%w: customer %s: %w", ErrConcurrentModification, v.draft.CustomerID, err)
		}
		charged, err := ledger.ApplyCharge(c, v.total, now)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConcurrentModification, err)
		}
		w.originalCustomer = c
		w.customer = &charged
	}

	w.sale = domain.Sale{
		ID:            s.newID(),
		CustomerID:    v.draft.CustomerID,
		Items:         slices.Clone(v.items),
		Total:         v.total,
		PaymentMethod: v.draft.PaymentMethod,
		Status:        domain.SaleCompleted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return w, nil
}

// apply writes the buffered records. If a write fails, the writes already
// made are restored before the error is returned.
func (s *Service) apply(w *pendingWrites) error {
	for i, p := range w.products {
		if err := s.store.Products().Update(p); err != nil {
			s.restoreProducts(w.originalProducts[:i])
			return fmt.Errorf("%w: update product %s: %w", ErrConcurrentModification, p.ID, err)
		}
	}

	if w.customer != nil {
		if err := s.store.Customers().Update(*w.customer); err != nil {
			s.restoreProducts(w.originalProducts)
			return fmt.Errorf("%w: update customer %s: %w", ErrConcurrentModification, w.customer.ID, err)
		}
	}

	if err := s.store.Sales().Insert(w.sale); err != nil {
		s.restoreProducts(w.originalProducts)
		if w.customer != nil {
			s.restoreCustomer(w.originalCustomer)
		}
		return fmt.Errorf("failed to save sale: %w", err)
	}
	return nil
}

func (s *Service) restoreProducts(products []domain.Product) {
	for _, p := range products {
		if err := s.store.Products().Update(p); err != nil {
			s.logger.Error("CRITICAL rollback failed for product",
				zap.String("product_id", p.ID), zap.Int("stock", p.Stock), zap.Error(err))
		}
	}
}

func (s *Service) restoreCustomer(c domain.Customer) {
	if err := s.store.Customers().Update(c); err != nil {
		s.logger.Error("CRITICAL rollback failed for customer",
			zap.String("customer_id", c.ID), zap.String("current_debt", c.CurrentDebt.String()), zap.Error(err))
	}
}

// GetSale returns a committed sale by ID.
func (s *Service) GetSale(id string) (*domain.Sale, error) {
	sale, err := s.store.Sales().Get(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &sale, nil
}
