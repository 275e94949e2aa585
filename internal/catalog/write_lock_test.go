package catalog

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"api_pos/internal/domain"
	"api_pos/internal/sales"
	"api_pos/internal/storage"
)

// hookedRepo runs onGet once, right after the first Get it serves.
type hookedRepo[T storage.Entity] struct {
	storage.Repository[T]
	once  sync.Once
	onGet func()
}

func (h *hookedRepo[T]) Get(id string) (T, error) {
	e, err := h.Repository.Get(id)
	if h.onGet != nil {
		h.once.Do(h.onGet)
	}
	return e, err
}

type sharedFixture struct {
	products  *hookedRepo[domain.Product]
	customers *hookedRepo[domain.Customer]
	sales     *sales.Service
	catalog   *Service
}

func newSharedFixture(t *testing.T) *sharedFixture {
	t.Helper()
	logger := zaptest.NewLogger(t)
	local := sales.NewLocalStore()
	f := &sharedFixture{
		products:  &hookedRepo[domain.Product]{Repository: local.Products()},
		customers: &hookedRepo[domain.Customer]{Repository: local.Customers()},
	}
	store := sales.NewStore(f.products, f.customers, local.Sales(), local.Promotions())
	f.sales = sales.NewService(store, logger)
	f.catalog = NewService(store.Products(), store.Customers(), store.Promotions(), store.WriteLock(), logger, decimal.Zero)
	return f
}

func TestAdjustStock_DuringSaleIsNotLost(t *testing.T) {
	f := newSharedFixture(t)
	p, err := f.catalog.CreateProduct(ProductInput{Name: "Coffee", Price: dec("100"), Stock: 10})
	require.NoError(t, err)

	restocked := make(chan error, 1)
	f.products.onGet = func() {
		go func() {
			_, err := f.catalog.AdjustStock(p.ID, 90)
			restocked <- err
		}()
	}

	_, err = f.sales.SubmitSale(sales.Draft{
		Items:         []sales.DraftLine{{ProductID: p.ID, Quantity: 3}},
		PaymentMethod: domain.PaymentCash,
	})
	require.NoError(t, err)
	require.NoError(t, <-restocked)

	got, err := f.catalog.GetProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 97, got.Stock)
}

func TestUpdateCustomer_DuringSaleIsNotLost(t *testing.T) {
	f := newSharedFixture(t)
	p, err := f.catalog.CreateProduct(ProductInput{Name: "Coffee", Price: dec("40"), Stock: 10})
	require.NoError(t, err)
	limit := dec("500")
	c, err := f.catalog.CreateCustomer(CustomerInput{Name: "Ana", MaxDebt: &limit})
	require.NoError(t, err)

	_, err = f.sales.SubmitSale(sales.Draft{
		CustomerID:    c.ID,
		Items:         []sales.DraftLine{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: domain.PaymentAccount,
	})
	require.NoError(t, err)

	raised := dec("1000")
	updated := make(chan error, 1)
	f.customers.onGet = func() {
		go func() {
			_, err := f.catalog.UpdateCustomer(c.ID, CustomerInput{Name: "Ana", MaxDebt: &raised})
			updated <- err
		}()
	}

	_, err = f.sales.SubmitSale(sales.Draft{
		CustomerID:    c.ID,
		Items:         []sales.DraftLine{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: domain.PaymentAccount,
	})
	require.NoError(t, err)
	require.NoError(t, <-updated)

	got, err := f.catalog.GetCustomer(c.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentDebt.Equal(dec("80")), "got %s", got.CurrentDebt)
	assert.True(t, got.MaxDebt.Equal(raised), "got %s", got.MaxDebt)
}

func TestAdjustStock_ConcurrentWithSales(t *testing.T) {
	f := newSharedFixture(t)
	p, err := f.catalog.CreateProduct(ProductInput{Name: "Tea", Price: dec("1"), Stock: 100})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := f.sales.SubmitSale(sales.Draft{
				Items:         []sales.DraftLine{{ProductID: p.ID, Quantity: 1}},
				PaymentMethod: domain.PaymentCash,
			})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := f.catalog.AdjustStock(p.ID, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := f.catalog.GetProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Stock)
}

func TestAdjustStock(t *testing.T) {
	svc := newTestService(t)
	p, err := svc.CreateProduct(ProductInput{Name: "Tea", Price: dec("1"), Stock: 4})
	require.NoError(t, err)

	got, err := svc.AdjustStock(p.ID, 6)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock)

	got, err = svc.AdjustStock(p.ID, -10)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)

	_, err = svc.AdjustStock(p.ID, -1)
	assert.ErrorIs(t, err, ErrStockWouldBeNegative)

	_, err = svc.AdjustStock("missing", 1)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	stored, err := svc.GetProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Stock)
}

func TestPromotionWrites_AreLogged(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	svc := newTestService(t)
	svc.logger = zap.New(core)

	p, err := svc.CreatePromotion(validPromotion())
	require.NoError(t, err)
	_, err = svc.UpdatePromotion(p.ID, validPromotion())
	require.NoError(t, err)
	require.NoError(t, svc.DeletePromotion(p.ID))

	for _, msg := range []string{"promotion created", "promotion updated", "promotion deleted"} {
		entries := logs.FilterMessage(msg).All()
		require.Len(t, entries, 1, msg)
		assert.Equal(t, p.ID, entries[0].ContextMap()["promotion_id"], msg)
	}
}
