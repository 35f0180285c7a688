// Package apperrors defines the sentinel errors the service layer
// returns and the HTTP layer maps onto status codes.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrValidation indicates the request failed input validation.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicate indicates a uniqueness conflict, e.g. a barcode or
	// email already in use.
	ErrDuplicate = errors.New("duplicate record")

	// ErrInvalidState indicates the request conflicts with the current
	// state of the record.
	ErrInvalidState = errors.New("invalid state")

	// ErrInsufficientStock indicates a sale line asked for more than is
	// on hand.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError carries the detail of a failed stock check so
// the response can tell the cashier what is actually available.
type InsufficientStockError struct {
	ProductName string
	Available   float64
	Requested   float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s. Available: %g", e.ProductName, e.Available)
}

// Is lets errors.Is match against the ErrInsufficientStock sentinel.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
