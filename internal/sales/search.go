package sales

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"api_pos/internal/domain"
	"api_pos/internal/storage"
)

// SalesMetadata summarizes a sales search.
type SalesMetadata struct {
	Quantity    int             `json:"quantity"`
	Completed   int             `json:"completed"`
	Returned    int             `json:"returned"`
	Modified    int             `json:"modified"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// SearchSales returns the sales matching the optional customer and status
// filters, in commit order, with aggregate metadata.
func (s *Service) SearchSales(customerID, status string) ([]domain.Sale, SalesMetadata, error) {
	if customerID != "" {
		if _, err := s.store.Customers().Get(customerID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, SalesMetadata{}, fmt.Errorf("%w: %s", ErrCustomerNotFound, customerID)
			}
			return nil, SalesMetadata{}, err
		}
	}

	parsedStatus := domain.SaleStatus(status)
	if status != "" && !parsedStatus.Valid() {
		s.logger.Warn("invalid status filter provided", zap.String("status_filter", status))
		return nil, SalesMetadata{}, fmt.Errorf("%w: '%s'", ErrInvalidStatus, status)
	}

	filtered := make([]domain.Sale, 0)
	metadata := SalesMetadata{TotalAmount: decimal.Zero}

	for _, sale := range s.store.Sales().List() {
		if customerID != "" && sale.CustomerID != customerID {
			continue
		}
		if status != "" && sale.Status != parsedStatus {
			continue
		}

		filtered = append(filtered, sale)
		metadata.Quantity++
		metadata.TotalAmount = metadata.TotalAmount.Add(sale.Total)
		switch sale.Status {
		case domain.SaleCompleted:
			metadata.Completed++
		case domain.SaleReturned:
			metadata.Returned++
		case domain.SaleModified:
			metadata.Modified++
		}
	}

	s.logger.Debug("sales search completed",
		zap.String("customer_filter", customerID),
		zap.String("status_filter", status),
		zap.Int("results_count", len(filtered)),
		zap.Any("metadata", metadata),
	)
	return filtered, metadata, nil
}
