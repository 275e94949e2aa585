package sales

import (
	"fmt"
	"sync"

	"api_pos/internal/domain"
	"api_pos/internal/storage"
)

// EntityKind names one of the collections held by a Store.
type EntityKind string

const (
	KindProduct   EntityKind = "products"
	KindCustomer  EntityKind = "customers"
	KindSale      EntityKind = "sales"
	KindPromotion EntityKind = "promotions"
)

// Store owns every entity collection. It is injected into the Service
// instead of living in package state, so tests can build their own.
//
// Each repository is safe on its own, but a sale reads and writes several
// records. Every writer that changes products or customers holds
// WriteLock, so a commit never writes back a stale copy.
type Store struct {
	mu sync.Mutex

	products   storage.Repository[domain.Product]
	customers  storage.Repository[domain.Customer]
	sales      storage.Repository[domain.Sale]
	promotions storage.Repository[domain.Promotion]
}

// NewStore builds a Store over the given repositories.
func NewStore(
	products storage.Repository[domain.Product],
	customers storage.Repository[domain.Customer],
	sales storage.Repository[domain.Sale],
	promotions storage.Repository[domain.Promotion],
) *Store {
	return &Store{
		products:   products,
		customers:  customers,
		sales:      sales,
		promotions: promotions,
	}
}

// NewLocalStore builds a Store backed by empty in-memory repositories.
func NewLocalStore() *Store {
	return NewStore(
		storage.NewLocalStorage[domain.Product](),
		storage.NewLocalStorage[domain.Customer](),
		storage.NewLocalStorage[domain.Sale](),
		storage.NewLocalStorage[domain.Promotion](),
	)
}

func (s *Store) Products() storage.Repository[domain.Product]     { return s.products }
func (s *Store) Customers() storage.Repository[domain.Customer]   { return s.customers }
func (s *Store) Sales() storage.Repository[domain.Sale]           { return s.sales }
func (s *Store) Promotions() storage.Repository[domain.Promotion] { return s.promotions }

// WriteLock returns the lock shared by the sale coordinator and every
// catalog write.
func (s *Store) WriteLock() sync.Locker { return &s.mu }

// RepositoryOf returns the repository for kind. The caller asserts it to
// the matching storage.Repository type; prefer the typed accessors.
func (s *Store) RepositoryOf(kind EntityKind) (any, error) {
	switch kind {
	case KindProduct:
		return s.products, nil
	case KindCustomer:
		return s.customers, nil
	case KindSale:
		return s.sales, nil
	case KindPromotion:
		return s.promotions, nil
	default:
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}
}
