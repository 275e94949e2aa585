package sales

import (
	"errors"

	"api_pos/internal/ledger"
)

var (
	ErrProductNotFound        = errors.New("product not found")
	ErrCustomerNotFound       = errors.New("customer not found")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrEmptySale              = errors.New("sale has no line items")
	ErrCustomerRequired       = errors.New("customer is required for on-account sales")
	ErrCreditLimitExceeded    = ledger.ErrCreditLimitExceeded
	ErrConcurrentModification = errors.New("state changed between validation and commit")
	ErrInvalidLineItem        = errors.New("invalid line item")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrNotValidated           = errors.New("sale is not validated")
	ErrAlreadyCommitted       = errors.New("sale already committed")
	ErrNotFound               = errors.New("sale not found")
)

// ErrInvalidStatus is returned for an unknown sale status filter.
var ErrInvalidStatus = errors.New("invalid status value")
