package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"api_pos/internal/domain"
)

func seedSales(t *testing.T, store *Store) {
	t.Helper()
	addCustomer(t, store, "C1", "0", "1000")
	addCustomer(t, store, "C2", "0", "1000")
	for _, s := range []domain.Sale{
		{ID: "s1", CustomerID: "C1", Total: dec("10.50"), PaymentMethod: domain.PaymentCash, Status: domain.SaleCompleted},
		{ID: "s2", CustomerID: "C1", Total: dec("4.25"), PaymentMethod: domain.PaymentAccount, Status: domain.SaleReturned},
		{ID: "s3", CustomerID: "C2", Total: dec("100"), PaymentMethod: domain.PaymentDebit, Status: domain.SaleCompleted},
		{ID: "s4", Total: dec("1.10"), PaymentMethod: domain.PaymentCash, Status: domain.SaleModified},
	} {
		require.NoError(t, store.Sales().Insert(s))
	}
}

func TestSearchSales(t *testing.T) {
	tests := []struct {
		name       string
		customerID string
		status     string
		wantIDs    []string
		wantMeta   SalesMetadata
	}{
		{
			name:     "no filters",
			wantIDs:  []string{"s1", "s2", "s3", "s4"},
			wantMeta: SalesMetadata{Quantity: 4, Completed: 2, Returned: 1, Modified: 1, TotalAmount: dec("115.85")},
		},
		{
			name:       "by customer",
			customerID: "C1",
			wantIDs:    []string{"s1", "s2"},
			wantMeta:   SalesMetadata{Quantity: 2, Completed: 1, Returned: 1, TotalAmount: dec("14.75")},
		},
		{
			name:     "by status",
			status:   "completed",
			wantIDs:  []string{"s1", "s3"},
			wantMeta: SalesMetadata{Quantity: 2, Completed: 2, TotalAmount: dec("110.50")},
		},
		{
			name:       "by customer and status",
			customerID: "C2",
			status:     "returned",
			wantIDs:    []string{},
			wantMeta:   SalesMetadata{TotalAmount: dec("0")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService(t)
			seedSales(t, store)

			got, meta, err := svc.SearchSales(tt.customerID, tt.status)
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, s := range got {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantMeta.Quantity, meta.Quantity)
			assert.Equal(t, tt.wantMeta.Completed, meta.Completed)
			assert.Equal(t, tt.wantMeta.Returned, meta.Returned)
			assert.Equal(t, tt.wantMeta.Modified, meta.Modified)
			assert.True(t, tt.wantMeta.TotalAmount.Equal(meta.TotalAmount), "got total %s", meta.TotalAmount)
		})
	}
}

func TestSearchSales_Errors(t *testing.T) {
	svc, store := newTestService(t)
	seedSales(t, store)

	_, _, err := svc.SearchSales("ghost", "")
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	_, _, err = svc.SearchSales("", "pending")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
