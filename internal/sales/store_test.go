package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"api_pos/internal/domain"
	"api_pos/internal/storage"
)

func TestRepositoryOf(t *testing.T) {
	store := NewLocalStore()

	repo, err := store.RepositoryOf(KindProduct)
	require.NoError(t, err)
	products, ok := repo.(storage.Repository[domain.Product])
	require.True(t, ok)
	require.NoError(t, products.Insert(domain.Product{ID: "P1", Price: dec("1")}))
	assert.Equal(t, 1, store.Products().Len(), "RepositoryOf and Products share the collection")

	for kind, want := range map[EntityKind]any{
		KindCustomer:  store.Customers(),
		KindSale:      store.Sales(),
		KindPromotion: store.Promotions(),
	} {
		got, err := store.RepositoryOf(kind)
		require.NoError(t, err)
		assert.Equal(t, want, got, string(kind))
	}

	_, err = store.RepositoryOf("suppliers")
	assert.Error(t, err)
}
